package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

var ErrInvalidStatus = errors.New("invalid order status")

type Service interface {
	PlaceOrder(ctx context.Context, customerID uuid.UUID, paymentMethod, shippingAddress string) (uuid.UUID, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)
	GetOrdersByCustomerID(ctx context.Context, customerID uuid.UUID) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus Status) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) PlaceOrder(ctx context.Context, customerID uuid.UUID, paymentMethod, shippingAddress string) (uuid.UUID, error) {
	if customerID == uuid.Nil {
		return uuid.Nil, errors.New("service: customer id is required")
	}
	if paymentMethod == "" {
		return uuid.Nil, errors.New("service: payment method is required")
	}
	if shippingAddress == "" {
		return uuid.Nil, errors.New("service: shipping address is required")
	}

	orderID, err := s.repo.PlaceOrder(ctx, customerID, paymentMethod, shippingAddress)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			log.Warn().Stringer("customer_id", customerID).Msg("service: attempt to checkout an empty cart")
			return uuid.Nil, ErrEmptyCart
		case errors.Is(err, ErrInsufficientStock):
			log.Warn().Err(err).Stringer("customer_id", customerID).Msg("service: checkout rejected, insufficient stock")
			return uuid.Nil, err
		}
		log.Error().Err(err).Stringer("customer_id", customerID).Msg("service: failed to place order")
		return uuid.Nil, fmt.Errorf("service: failed to place order: %w", err)
	}

	log.Info().Stringer("order_id", orderID).Stringer("customer_id", customerID).Msg("service: order placed successfully")
	return orderID, nil
}

func (s *service) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		log.Error().Err(err).Stringer("order_id", id).Msg("service: failed to fetch order by id")
		return nil, fmt.Errorf("service: failed to fetch order by id: %w", err)
	}
	return o, nil
}

func (s *service) GetOrdersByCustomerID(ctx context.Context, customerID uuid.UUID) ([]Order, error) {
	orders, err := s.repo.GetOrdersByCustomerID(ctx, customerID)
	if err != nil {
		log.Error().Err(err).Stringer("customer_id", customerID).Msg("service: failed to fetch customer orders")
		return nil, fmt.Errorf("service: failed to fetch customer orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus sets an order's status to any member of the enumeration.
// Transitions are not restricted beyond membership; staff may move an order
// backwards or cancel at any point.
func (s *service) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus Status) error {
	if !newStatus.Valid() {
		return fmt.Errorf("service: %w: %q", ErrInvalidStatus, newStatus)
	}

	err := s.repo.UpdateOrderStatus(ctx, orderID, newStatus)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		log.Error().Err(err).Stringer("order_id", orderID).Stringer("new_status", newStatus).Msg("service: failed to update order status")
		return fmt.Errorf("service: failed to update order status: %w", err)
	}

	log.Info().Stringer("order_id", orderID).Stringer("new_status", newStatus).Msg("service: order status updated")
	return nil
}
