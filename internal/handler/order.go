package handler

import (
	"errors"
	"net/http"

	"github.com/vasiliy-maslov/storefront/internal/order"
)

// OrderHandler handles HTTP requests for checkout and orders.
type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type placeOrderRequest struct {
	PaymentMethod   string `json:"payment_method" validate:"required"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PlaceOrder converts the customer's cart into an order.
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseUUIDParam(w, r, "customerID")
	if !ok {
		return
	}

	var req placeOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	orderID, err := h.svc.PlaceOrder(r.Context(), customerID, req.PaymentMethod, req.ShippingAddress)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			respondWithError(w, http.StatusBadRequest, "cart is empty")
		case errors.Is(err, order.ErrInsufficientStock):
			respondWithError(w, http.StatusConflict, err.Error())
		default:
			respondWithError(w, mapErrorToStatusCode(err), "failed to place order")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"order_id": orderID.String()})
}

func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	o, err := h.svc.GetOrderByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		respondWithError(w, mapErrorToStatusCode(err), "failed to get order")
		return
	}

	respondWithJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) ListOrdersByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseUUIDParam(w, r, "customerID")
	if !ok {
		return
	}

	orders, err := h.svc.GetOrdersByCustomerID(r.Context(), customerID)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to list orders")
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.svc.UpdateOrderStatus(r.Context(), id, order.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			respondWithError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, order.ErrInvalidStatus):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, mapErrorToStatusCode(err), "failed to update order status")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
