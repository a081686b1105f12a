package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trendyhq/storefront/internal/config"
	"github.com/trendyhq/storefront/internal/delivery/http/handler"
	"github.com/trendyhq/storefront/internal/delivery/http/middleware"
	"github.com/trendyhq/storefront/internal/delivery/http/response"
	"github.com/trendyhq/storefront/internal/pkg/logger"
)

// Router holds HTTP handlers and router configuration
type Router struct {
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	logger          *logger.Logger
	cfg             *config.Config
}

// NewRouter creates a new HTTP router
func NewRouter(
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		catalogHandler:  catalogHandler,
		cartHandler:     cartHandler,
		checkoutHandler: checkoutHandler,
		logger:          log,
		cfg:             cfg,
	}
}

// Setup configures and returns the HTTP router
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.healthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", rt.catalogHandler.View)
			r.Get("/categories", rt.catalogHandler.Categories)
			r.Get("/products/{id}", rt.catalogHandler.GetByID)
			r.Put("/search", rt.catalogHandler.SetSearch)
			r.Put("/category", rt.catalogHandler.SetCategory)
			r.Put("/price-range", rt.catalogHandler.SetPriceRange)
			r.Put("/page", rt.catalogHandler.SetPage)
			r.Post("/page/next", rt.catalogHandler.NextPage)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", rt.cartHandler.Get)
			r.Delete("/", rt.cartHandler.Clear)
			r.Post("/items", rt.cartHandler.Add)
			r.Put("/items/{id}", rt.cartHandler.SetQuantity)
			r.Delete("/items/{id}", rt.cartHandler.Remove)
			r.Post("/items/{id}/increase", rt.cartHandler.Increase)
			r.Post("/items/{id}/decrease", rt.cartHandler.Decrease)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/quote", rt.checkoutHandler.Quote)
			r.Post("/order", rt.checkoutHandler.PlaceOrder)
			r.Get("/order/last", rt.checkoutHandler.LastOrder)
		})
	})

	return r
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
