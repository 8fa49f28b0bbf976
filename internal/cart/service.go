package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

type Service interface {
	AddItem(ctx context.Context, customerID, productID uuid.UUID, quantity int) (uuid.UUID, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	ListItems(ctx context.Context, customerID uuid.UUID) ([]Item, error)
	CartTotal(ctx context.Context, customerID uuid.UUID) (float64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddItem puts quantity units of a product into the customer's cart. Stock is
// deliberately not checked here; availability is enforced at checkout.
func (s *service) AddItem(ctx context.Context, customerID, productID uuid.UUID, quantity int) (uuid.UUID, error) {
	if customerID == uuid.Nil {
		return uuid.Nil, errors.New("service: customer id is required")
	}
	if productID == uuid.Nil {
		return uuid.Nil, errors.New("service: product id is required")
	}
	if quantity <= 0 {
		return uuid.Nil, fmt.Errorf("service: quantity must be greater than zero, got %d", quantity)
	}

	itemID, err := s.repo.AddItem(ctx, customerID, productID, quantity)
	if err != nil {
		log.Error().Err(err).Stringer("customer_id", customerID).Stringer("product_id", productID).Msg("service: failed to add cart item")
		return uuid.Nil, fmt.Errorf("service: failed to add cart item: %w", err)
	}

	log.Info().Stringer("customer_id", customerID).Stringer("product_id", productID).Int("quantity", quantity).Msg("service: item added to cart")
	return itemID, nil
}

func (s *service) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	err := s.repo.RemoveItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return ErrItemNotFound
		}
		log.Error().Err(err).Stringer("item_id", itemID).Msg("service: failed to remove cart item")
		return fmt.Errorf("service: failed to remove cart item: %w", err)
	}
	return nil
}

func (s *service) ListItems(ctx context.Context, customerID uuid.UUID) ([]Item, error) {
	items, err := s.repo.ListItems(ctx, customerID)
	if err != nil {
		log.Error().Err(err).Stringer("customer_id", customerID).Msg("service: failed to list cart items")
		return nil, fmt.Errorf("service: failed to list cart items: %w", err)
	}
	return items, nil
}

func (s *service) CartTotal(ctx context.Context, customerID uuid.UUID) (float64, error) {
	items, err := s.ListItems(ctx, customerID)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, item := range items {
		total += item.LineTotal()
	}
	return total, nil
}
