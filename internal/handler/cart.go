package handler

import (
	"errors"
	"net/http"

	"github.com/gofrs/uuid"

	"github.com/vasiliy-maslov/storefront/internal/cart"
)

// CartHandler handles HTTP requests for cart lines.
type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

type addCartItemRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid4"`
	ProductID  string `json:"product_id" validate:"required,uuid4"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	customerID, _ := uuid.FromString(req.CustomerID)
	productID, _ := uuid.FromString(req.ProductID)

	itemID, err := h.svc.AddItem(r.Context(), customerID, productID, req.Quantity)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]string{"id": itemID.String()})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.RemoveItem(r.Context(), itemID); err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			respondWithError(w, http.StatusNotFound, "cart item not found")
			return
		}
		respondWithError(w, mapErrorToStatusCode(err), "failed to remove cart item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseUUIDParam(w, r, "customerID")
	if !ok {
		return
	}

	items, err := h.svc.ListItems(r.Context(), customerID)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to list cart items")
		return
	}

	total := 0.0
	for _, item := range items {
		total += item.LineTotal()
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}
