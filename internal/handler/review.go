package handler

import (
	"errors"
	"net/http"

	"github.com/gofrs/uuid"

	"github.com/vasiliy-maslov/storefront/internal/review"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	svc review.Service
}

func NewReviewHandler(svc review.Service) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type addReviewRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid4"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var req addReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	customerID, _ := uuid.FromString(req.CustomerID)
	rv := &review.Review{
		CustomerID: customerID,
		ProductID:  productID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	created, err := h.svc.AddReview(r.Context(), rv)
	if err != nil {
		if errors.Is(err, review.ErrInvalidRating) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithError(w, mapErrorToStatusCode(err), "failed to add review")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	reviews, err := h.svc.ListByProduct(r.Context(), productID)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to list reviews")
		return
	}

	respondWithJSON(w, http.StatusOK, reviews)
}
