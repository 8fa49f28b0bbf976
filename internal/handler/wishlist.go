package handler

import (
	"errors"
	"net/http"

	"github.com/gofrs/uuid"

	"github.com/vasiliy-maslov/storefront/internal/wishlist"
)

// WishlistHandler handles HTTP requests for customer wishlists.
type WishlistHandler struct {
	svc wishlist.Service
}

func NewWishlistHandler(svc wishlist.Service) *WishlistHandler {
	return &WishlistHandler{svc: svc}
}

type addWishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid4"`
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseUUIDParam(w, r, "customerID")
	if !ok {
		return
	}

	var req addWishlistItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	productID, _ := uuid.FromString(req.ProductID)
	if err := h.svc.Add(r.Context(), customerID, productID); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to add wishlist item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseUUIDParam(w, r, "customerID")
	if !ok {
		return
	}
	productID, ok := parseUUIDParam(w, r, "productID")
	if !ok {
		return
	}

	if err := h.svc.Remove(r.Context(), customerID, productID); err != nil {
		if errors.Is(err, wishlist.ErrItemNotFound) {
			respondWithError(w, http.StatusNotFound, "wishlist item not found")
			return
		}
		respondWithError(w, mapErrorToStatusCode(err), "failed to remove wishlist item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseUUIDParam(w, r, "customerID")
	if !ok {
		return
	}

	items, err := h.svc.List(r.Context(), customerID)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to list wishlist")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}
