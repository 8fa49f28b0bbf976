package handler

import (
	"errors"
	"net/http"

	"github.com/gofrs/uuid"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
)

// CatalogHandler handles HTTP requests for products and categories.
type CatalogHandler struct {
	svc catalog.Service
}

func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	CategoryID  string  `json:"category_id" validate:"required,uuid4"`
}

type setStockRequest struct {
	Stock int `json:"stock" validate:"gte=0"`
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var filter catalog.Filter

	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := uuid.FromString(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "category_id must be a valid UUID")
			return
		}
		filter.CategoryID = id
	}
	filter.Search = r.URL.Query().Get("search")

	products, err := h.svc.ListProducts(r.Context(), filter)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to list products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	product, err := h.svc.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		respondWithError(w, mapErrorToStatusCode(err), "failed to get product")
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	categoryID, _ := uuid.FromString(req.CategoryID)
	product := &catalog.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  categoryID,
	}

	created, err := h.svc.CreateProduct(r.Context(), product)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) SetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var req setStockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.SetStock(r.Context(), id, req.Stock); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		respondWithError(w, mapErrorToStatusCode(err), "failed to set stock")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int{"stock": req.Stock})
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), "failed to list categories")
		return
	}

	respondWithJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	category, err := h.svc.CreateCategory(r.Context(), req.Name)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusCreated, category)
}
