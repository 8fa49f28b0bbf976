package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vasiliy-maslov/storefront/internal/cart"
	"github.com/vasiliy-maslov/storefront/internal/catalog"
	"github.com/vasiliy-maslov/storefront/internal/customer"
	"github.com/vasiliy-maslov/storefront/internal/handler"
	"github.com/vasiliy-maslov/storefront/internal/order"
	"github.com/vasiliy-maslov/storefront/internal/review"
	"github.com/vasiliy-maslov/storefront/internal/wishlist"
)

// NewRouter wires repositories, services and handlers onto a chi mux.
func NewRouter(pool *pgxpool.Pool) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	catalogHandler := handler.NewCatalogHandler(catalog.NewService(catalog.NewRepository(pool)))
	cartHandler := handler.NewCartHandler(cart.NewService(cart.NewRepository(pool)))
	orderHandler := handler.NewOrderHandler(order.NewService(order.NewRepository(pool)))
	customerHandler := handler.NewCustomerHandler(customer.NewService(customer.NewRepository(pool)))
	reviewHandler := handler.NewReviewHandler(review.NewService(review.NewRepository(pool)))
	wishlistHandler := handler.NewWishlistHandler(wishlist.NewService(wishlist.NewRepository(pool)))

	r.Route("/products", func(r chi.Router) {
		r.Get("/", catalogHandler.ListProducts)
		r.Post("/", catalogHandler.CreateProduct)
		r.Get("/{id}", catalogHandler.GetProductByID)
		r.Put("/{id}/stock", catalogHandler.SetStock)
		r.Post("/{id}/reviews", reviewHandler.AddReview)
		r.Get("/{id}/reviews", reviewHandler.ListByProduct)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", catalogHandler.ListCategories)
		r.Post("/", catalogHandler.CreateCategory)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Post("/items", cartHandler.AddItem)
		r.Delete("/items/{id}", cartHandler.RemoveItem)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", customerHandler.Register)
		r.Get("/", customerHandler.List)
		r.Get("/{id}", customerHandler.GetByID)
		r.Put("/{id}", customerHandler.Update)
		r.Get("/{customerID}/cart", cartHandler.ListItems)
		r.Post("/{customerID}/orders", orderHandler.PlaceOrder)
		r.Get("/{customerID}/orders", orderHandler.ListOrdersByCustomer)
		r.Post("/{customerID}/wishlist", wishlistHandler.Add)
		r.Get("/{customerID}/wishlist", wishlistHandler.List)
		r.Delete("/{customerID}/wishlist/{productID}", wishlistHandler.Remove)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/{id}", orderHandler.GetOrderByID)
		r.Put("/{id}/status", orderHandler.UpdateStatus)
	})

	return r
}
