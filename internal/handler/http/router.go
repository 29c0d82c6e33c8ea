// Package http wires the HTTP surface of the print shop: storefront catalog
// and pricing reads, session-scoped cart mutations, checkout, order lookup,
// and the token-gated admin API.
package http

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/elbatin/JustzMatbaa/pkg/health"
	"github.com/elbatin/JustzMatbaa/pkg/middleware"
)

// RouterConfig carries everything the router needs.
type RouterConfig struct {
	ServiceName string
	Environment string
	Logger      *slog.Logger

	Cart    *CartHandler
	Product *ProductHandler
	Pricing *PricingHandler
	Order   *OrderHandler
	Health  *health.Handler

	// AdminToken gates the admin routes. When empty the admin API is not
	// mounted at all.
	AdminToken string

	CORSAllowedOrigins []string
	TracingEnabled     bool
}

// NewRouter assembles the chi router with the full middleware stack.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Environment:    cfg.Environment,
	}))
	r.Use(middleware.RequestLogging(cfg.Logger))
	if cfg.TracingEnabled {
		r.Use(middleware.Tracing(cfg.ServiceName))
	}
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", cfg.Product.List)
		r.Get("/products/{slug}", cfg.Product.GetBySlug)
		r.Get("/pricing/quote", cfg.Pricing.Quote)

		r.Get("/orders/number/{orderNumber}", cfg.Order.GetByNumber)
		r.Get("/orders/{id}", cfg.Order.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(RequireSession)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cfg.Cart.Get)
				r.Delete("/", cfg.Cart.Clear)
				r.Get("/contains", cfg.Cart.Contains)
				r.Post("/items", cfg.Cart.AddItem)
				r.Put("/items/{itemID}", cfg.Cart.UpdateItem)
				r.Post("/items/{itemID}/step", cfg.Cart.StepItem)
				r.Delete("/items/{itemID}", cfg.Cart.RemoveItem)
			})

			r.Post("/checkout", cfg.Order.Checkout)
		})

		if cfg.AdminToken != "" {
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.Auth(StaticTokenValidator(cfg.AdminToken)))
				r.Use(middleware.RequireRole("admin"))

				r.Post("/products", cfg.Product.Create)
				r.Put("/products/{id}", cfg.Product.Update)
				r.Delete("/products/{id}", cfg.Product.Delete)

				r.Get("/orders", cfg.Order.Recent)
				r.Put("/orders/{id}/status", cfg.Order.UpdateStatus)
				r.Get("/stats", cfg.Order.Stats)
			})
		}
	})

	return r
}

// StaticTokenValidator accepts exactly one pre-shared admin token. The shop
// has no user accounts; the admin dashboard is the only authenticated caller.
func StaticTokenValidator(token string) middleware.TokenValidator {
	return func(candidate string) (*middleware.Claims, error) {
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(token)) != 1 {
			return nil, errors.New("invalid token")
		}
		return &middleware.Claims{Subject: "admin", Role: "admin"}, nil
	}
}
