package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/ray/storefront-backend/internal/api/handlers"
	"github.com/ray/storefront-backend/internal/api/middleware"
	"github.com/ray/storefront-backend/internal/auth"
	"github.com/ray/storefront-backend/internal/config"
	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/usecase"
)

func NewRouter(uc *usecase.Usecases, manager *auth.Manager, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(manager, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userHandler := handlers.NewUserHandler(uc.Users)
	productHandler := handlers.NewProductHandler(uc.Products)
	orderHandler := handlers.NewOrderHandler(uc.Orders)

	customerGate := middleware.Gate(manager, domain.LevelCustomer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	adminGate := middleware.Gate(manager, domain.LevelAdmin, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.SignUp)
			r.Post("/signin", authHandler.SignIn)
			r.Post("/signout", authHandler.SignOut)
		})

		// Public catalog reads
		r.Get("/products", productHandler.GetAll)
		r.Get("/products/{id}", productHandler.Get)
		r.Get("/categories", productHandler.GetAllCategories)
		r.Get("/categories/{id}", productHandler.GetCategory)

		// Customer surface
		r.Group(func(r chi.Router) {
			r.Use(customerGate)
			r.Get("/me", userHandler.Me)
			r.Put("/me", userHandler.UpdateMe)
			r.Delete("/me", userHandler.DeleteMe)

			r.Get("/cart", orderHandler.Cart)
			r.Get("/cart/items", orderHandler.CartItems)
			r.Post("/cart/items", orderHandler.AddToCart)
			r.Delete("/cart/items/{productId}", orderHandler.RemoveFromCart)
			r.Post("/cart/checkout", orderHandler.Checkout)

			r.Get("/orders", orderHandler.History)
			r.Get("/orders/{id}", orderHandler.Order)
		})

		// Admin surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(adminGate)
			r.Get("/users", userHandler.GetAll)
			r.Get("/users/{id}", userHandler.Get)
			r.Delete("/users/{id}", userHandler.Delete)

			r.Post("/products", productHandler.Add)
			r.Put("/products/{id}", productHandler.Update)
			r.Delete("/products/{id}", productHandler.Delete)

			r.Post("/categories", productHandler.AddCategory)
			r.Delete("/categories/{id}", productHandler.DeleteCategory)

			r.Get("/orders", orderHandler.GetAll)
			r.Delete("/orders/{id}", orderHandler.Delete)
		})
	})

	return r
}
