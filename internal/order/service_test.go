package order_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/vasiliy-maslov/storefront/internal/order"
)

type mockOrderRepository struct {
	placeOrderFunc            func(ctx context.Context, customerID uuid.UUID, paymentMethod, shippingAddress string) (uuid.UUID, error)
	getOrderByIDFunc          func(ctx context.Context, id uuid.UUID) (*order.Order, error)
	getOrdersByCustomerIDFunc func(ctx context.Context, customerID uuid.UUID) ([]order.Order, error)
	updateOrderStatusFunc     func(ctx context.Context, orderID uuid.UUID, newStatus order.Status) error
}

func (m *mockOrderRepository) PlaceOrder(ctx context.Context, customerID uuid.UUID, paymentMethod, shippingAddress string) (uuid.UUID, error) {
	return m.placeOrderFunc(ctx, customerID, paymentMethod, shippingAddress)
}

func (m *mockOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return m.getOrderByIDFunc(ctx, id)
}

func (m *mockOrderRepository) GetOrdersByCustomerID(ctx context.Context, customerID uuid.UUID) ([]order.Order, error) {
	return m.getOrdersByCustomerIDFunc(ctx, customerID)
}

func (m *mockOrderRepository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus order.Status) error {
	return m.updateOrderStatusFunc(ctx, orderID, newStatus)
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.FromString(s)
	if err != nil {
		t.Fatalf("invalid uuid literal %q: %v", s, err)
	}
	return id
}

func TestService_PlaceOrder(t *testing.T) {
	customerID := "123e4567-e89b-12d3-a456-426614174000"
	orderID := "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name            string
		customerID      string
		paymentMethod   string
		shippingAddress string
		placeOrder      func(ctx context.Context, customerID uuid.UUID, paymentMethod, shippingAddress string) (uuid.UUID, error)
		wantID          string
		wantErr         bool
		wantErrIs       error
	}{
		{
			name:            "success",
			customerID:      customerID,
			paymentMethod:   "Credit Card",
			shippingAddress: "1 Main St",
			placeOrder: func(ctx context.Context, cid uuid.UUID, method, addr string) (uuid.UUID, error) {
				return uuid.FromStringOrNil(orderID), nil
			},
			wantID: orderID,
		},
		{
			name:            "empty_cart",
			customerID:      customerID,
			paymentMethod:   "Credit Card",
			shippingAddress: "1 Main St",
			placeOrder: func(ctx context.Context, cid uuid.UUID, method, addr string) (uuid.UUID, error) {
				return uuid.Nil, order.ErrEmptyCart
			},
			wantErr:   true,
			wantErrIs: order.ErrEmptyCart,
		},
		{
			name:            "insufficient_stock",
			customerID:      customerID,
			paymentMethod:   "Credit Card",
			shippingAddress: "1 Main St",
			placeOrder: func(ctx context.Context, cid uuid.UUID, method, addr string) (uuid.UUID, error) {
				return uuid.Nil, fmt.Errorf("repository: product %s: %w", cid, order.ErrInsufficientStock)
			},
			wantErr:   true,
			wantErrIs: order.ErrInsufficientStock,
		},
		{
			name:            "missing_customer",
			customerID:      "",
			paymentMethod:   "Credit Card",
			shippingAddress: "1 Main St",
			placeOrder: func(ctx context.Context, cid uuid.UUID, method, addr string) (uuid.UUID, error) {
				t.Fatal("repository should not be called")
				return uuid.Nil, nil
			},
			wantErr: true,
		},
		{
			name:            "missing_payment_method",
			customerID:      customerID,
			paymentMethod:   "",
			shippingAddress: "1 Main St",
			placeOrder: func(ctx context.Context, cid uuid.UUID, method, addr string) (uuid.UUID, error) {
				t.Fatal("repository should not be called")
				return uuid.Nil, nil
			},
			wantErr: true,
		},
		{
			name:            "missing_shipping_address",
			customerID:      customerID,
			paymentMethod:   "Credit Card",
			shippingAddress: "",
			placeOrder: func(ctx context.Context, cid uuid.UUID, method, addr string) (uuid.UUID, error) {
				t.Fatal("repository should not be called")
				return uuid.Nil, nil
			},
			wantErr: true,
		},
		{
			name:            "storage_failure",
			customerID:      customerID,
			paymentMethod:   "Credit Card",
			shippingAddress: "1 Main St",
			placeOrder: func(ctx context.Context, cid uuid.UUID, method, addr string) (uuid.UUID, error) {
				return uuid.Nil, errors.New("connection reset")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockOrderRepository{placeOrderFunc: tt.placeOrder}
			svc := order.NewService(repo)

			id, err := svc.PlaceOrder(context.Background(), uuid.FromStringOrNil(tt.customerID), tt.paymentMethod, tt.shippingAddress)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrIs != nil {
					assert.True(t, errors.Is(err, tt.wantErrIs))
				}
				assert.Equal(t, uuid.Nil, id)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, id.String())
		})
	}
}

func TestService_UpdateOrderStatus(t *testing.T) {
	orderID := mustUUID(t, "550e8400-e29b-41d4-a716-446655440000")

	tests := []struct {
		name         string
		newStatus    order.Status
		updateStatus func(ctx context.Context, orderID uuid.UUID, newStatus order.Status) error
		wantErr      bool
		wantErrIs    error
	}{
		{
			name:      "forward_transition",
			newStatus: order.StatusShipped,
			updateStatus: func(ctx context.Context, id uuid.UUID, s order.Status) error {
				return nil
			},
		},
		{
			// No transition graph is enforced; staff may move an order
			// backwards.
			name:      "backward_transition",
			newStatus: order.StatusPending,
			updateStatus: func(ctx context.Context, id uuid.UUID, s order.Status) error {
				return nil
			},
		},
		{
			name:      "cancellation",
			newStatus: order.StatusCancelled,
			updateStatus: func(ctx context.Context, id uuid.UUID, s order.Status) error {
				return nil
			},
		},
		{
			name:      "unknown_status",
			newStatus: order.Status("Misplaced"),
			updateStatus: func(ctx context.Context, id uuid.UUID, s order.Status) error {
				t.Fatal("repository should not be called")
				return nil
			},
			wantErr:   true,
			wantErrIs: order.ErrInvalidStatus,
		},
		{
			name:      "not_found",
			newStatus: order.StatusDelivered,
			updateStatus: func(ctx context.Context, id uuid.UUID, s order.Status) error {
				return order.ErrOrderNotFound
			},
			wantErr:   true,
			wantErrIs: order.ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockOrderRepository{updateOrderStatusFunc: tt.updateStatus}
			svc := order.NewService(repo)

			err := svc.UpdateOrderStatus(context.Background(), orderID, tt.newStatus)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantErrIs != nil {
					assert.True(t, errors.Is(err, tt.wantErrIs))
				}
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_GetOrderByID(t *testing.T) {
	orderID := mustUUID(t, "550e8400-e29b-41d4-a716-446655440000")

	t.Run("not_found", func(t *testing.T) {
		repo := &mockOrderRepository{
			getOrderByIDFunc: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
				return nil, order.ErrOrderNotFound
			},
		}
		svc := order.NewService(repo)

		o, err := svc.GetOrderByID(context.Background(), orderID)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("success", func(t *testing.T) {
		want := &order.Order{ID: orderID, Status: order.StatusProcessing, TotalAmount: 59.70}
		repo := &mockOrderRepository{
			getOrderByIDFunc: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
				return want, nil
			},
		}
		svc := order.NewService(repo)

		o, err := svc.GetOrderByID(context.Background(), orderID)
		assert.NoError(t, err)
		assert.Equal(t, want, o)
	})
}
