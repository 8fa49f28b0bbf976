package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/vasiliy-maslov/storefront/internal/order"
)

type mockOrderService struct {
	placeOrderFunc            func(ctx context.Context, customerID uuid.UUID, paymentMethod, shippingAddress string) (uuid.UUID, error)
	getOrderByIDFunc          func(ctx context.Context, id uuid.UUID) (*order.Order, error)
	getOrdersByCustomerIDFunc func(ctx context.Context, customerID uuid.UUID) ([]order.Order, error)
	updateOrderStatusFunc     func(ctx context.Context, orderID uuid.UUID, newStatus order.Status) error
}

func (m *mockOrderService) PlaceOrder(ctx context.Context, customerID uuid.UUID, paymentMethod, shippingAddress string) (uuid.UUID, error) {
	return m.placeOrderFunc(ctx, customerID, paymentMethod, shippingAddress)
}

func (m *mockOrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return m.getOrderByIDFunc(ctx, id)
}

func (m *mockOrderService) GetOrdersByCustomerID(ctx context.Context, customerID uuid.UUID) ([]order.Order, error) {
	return m.getOrdersByCustomerIDFunc(ctx, customerID)
}

func (m *mockOrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus order.Status) error {
	return m.updateOrderStatusFunc(ctx, orderID, newStatus)
}

const (
	testCustomerID = "123e4567-e89b-12d3-a456-426614174000"
	testOrderID    = "550e8400-e29b-41d4-a716-446655440000"
)

func TestOrderHandler_PlaceOrder(t *testing.T) {
	tests := []struct {
		name           string
		customerID     string
		body           string
		placeOrder     func(ctx context.Context, customerID uuid.UUID, paymentMethod, shippingAddress string) (uuid.UUID, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:       "success",
			customerID: testCustomerID,
			body:       `{"payment_method":"Credit Card","shipping_address":"1 Main St"}`,
			placeOrder: func(ctx context.Context, cid uuid.UUID, method, addr string) (uuid.UUID, error) {
				return uuid.FromStringOrNil(testOrderID), nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"order_id":"` + testOrderID + `"}`,
		},
		{
			name:       "empty_cart",
			customerID: testCustomerID,
			body:       `{"payment_method":"Credit Card","shipping_address":"1 Main St"}`,
			placeOrder: func(ctx context.Context, cid uuid.UUID, method, addr string) (uuid.UUID, error) {
				return uuid.Nil, order.ErrEmptyCart
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"cart is empty"}`,
		},
		{
			name:       "insufficient_stock",
			customerID: testCustomerID,
			body:       `{"payment_method":"Credit Card","shipping_address":"1 Main St"}`,
			placeOrder: func(ctx context.Context, cid uuid.UUID, method, addr string) (uuid.UUID, error) {
				return uuid.Nil, fmt.Errorf("service: product %s: %w", testOrderID, order.ErrInsufficientStock)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid_json",
			customerID:     testCustomerID,
			body:           `{invalid json}`,
			placeOrder:     nil,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
		{
			name:           "missing_payment_method",
			customerID:     testCustomerID,
			body:           `{"shipping_address":"1 Main St"}`,
			placeOrder:     nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad_customer_id",
			customerID:     "not-a-uuid",
			body:           `{"payment_method":"Credit Card","shipping_address":"1 Main St"}`,
			placeOrder:     nil,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockOrderService{placeOrderFunc: tt.placeOrder}
			h := NewOrderHandler(mockSvc)

			r := chi.NewRouter()
			r.Post("/customers/{customerID}/orders", h.PlaceOrder)

			url := "/customers/" + tt.customerID + "/orders"
			req := httptest.NewRequest(http.MethodPost, url, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		updateStatus   func(ctx context.Context, orderID uuid.UUID, newStatus order.Status) error
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"status":"Shipped"}`,
			updateStatus: func(ctx context.Context, id uuid.UUID, s order.Status) error {
				return nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown_status",
			body: `{"status":"Misplaced"}`,
			updateStatus: func(ctx context.Context, id uuid.UUID, s order.Status) error {
				return fmt.Errorf("service: %w: %q", order.ErrInvalidStatus, s)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "not_found",
			body: `{"status":"Cancelled"}`,
			updateStatus: func(ctx context.Context, id uuid.UUID, s order.Status) error {
				return order.ErrOrderNotFound
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &mockOrderService{updateOrderStatusFunc: tt.updateStatus}
			h := NewOrderHandler(mockSvc)

			r := chi.NewRouter()
			r.Put("/orders/{id}/status", h.UpdateStatus)

			req := httptest.NewRequest(http.MethodPut, "/orders/"+testOrderID+"/status", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestOrderHandler_GetOrderByID(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		mockSvc := &mockOrderService{
			getOrderByIDFunc: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
				return nil, order.ErrOrderNotFound
			},
		}
		h := NewOrderHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/orders/"+testOrderID, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", testOrderID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		w := httptest.NewRecorder()
		h.GetOrderByID(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad_id", func(t *testing.T) {
		h := NewOrderHandler(&mockOrderService{})

		req := httptest.NewRequest(http.MethodGet, "/orders/nope", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", "nope")
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		w := httptest.NewRecorder()
		h.GetOrderByID(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		want := &order.Order{
			ID:     uuid.FromStringOrNil(testOrderID),
			Status: order.StatusProcessing,
		}
		mockSvc := &mockOrderService{
			getOrderByIDFunc: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
				assert.Equal(t, want.ID, id)
				return want, nil
			},
		}
		h := NewOrderHandler(mockSvc)

		req := httptest.NewRequest(http.MethodGet, "/orders/"+testOrderID, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", testOrderID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		w := httptest.NewRecorder()
		h.GetOrderByID(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), testOrderID)
		assert.Contains(t, w.Body.String(), "Processing")
	})
}
