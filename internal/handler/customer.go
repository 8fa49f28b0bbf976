package handler

import (
	"errors"
	"net/http"

	"github.com/vasiliy-maslov/storefront/internal/customer"
)

// CustomerHandler handles HTTP requests for customer accounts.
type CustomerHandler struct {
	svc customer.Service
}

func NewCustomerHandler(svc customer.Service) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

type registerCustomerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

type updateCustomerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerCustomerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	c := &customer.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Address:   req.Address,
		Phone:     req.Phone,
	}

	created, err := h.svc.Register(r.Context(), c, req.Password)
	if err != nil {
		if errors.Is(err, customer.ErrEmailExists) {
			respondWithError(w, http.StatusConflict, "email already exists")
			return
		}
		respondWithError(w, mapErrorToStatusCode(err), "failed to register customer")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	c, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "customer not found")
			return
		}
		respondWithError(w, mapErrorToStatusCode(err), "failed to get customer")
		return
	}

	respondWithJSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var req updateCustomerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	c := &customer.Customer{
		ID:        id,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Phone:     req.Phone,
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "customer not found")
			return
		}
		respondWithError(w, mapErrorToStatusCode(err), "failed to update customer")
		return
	}

	respondWithJSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.List(r.Context())
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to list customers")
		return
	}

	respondWithJSON(w, http.StatusOK, customers)
}
