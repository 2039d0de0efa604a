// Package router wires the dashboard API routes.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"store-insights-go/internal/handler"
	"store-insights-go/internal/logger"
)

// New builds the chi router with CORS and request logging.
func New(h *handler.Handler, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(requestLogger(log))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.Catalog)
		r.Get("/orders", h.Orders)
		r.Get("/customers", h.Customers)
		r.Get("/merchant", h.Merchant)
		r.Get("/rankings", h.Rankings)
		r.Get("/popular-item", h.PopularItem)
		r.Get("/insights", h.Insights)
		r.Get("/context", h.Context)
		r.Get("/export", h.Export)
		r.Post("/chat", h.Chat)
		r.Post("/refresh", h.Refresh)

		r.Route("/charts", func(r chi.Router) {
			r.Get("/revenue", h.RevenueChart)
			r.Get("/popularity", h.PopularityChart)
			r.Get("/ages", h.AgeChart)
			r.Get("/order-frequency", h.OrderFrequencyChart)
			r.Get("/prices", h.PriceChart)
			r.Get("/categories", h.CategoryChart)
			r.Get("/sources", h.SourceChart)
			r.Get("/lifetime-value", h.LifetimeValueChart)
		})
	})

	return r
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.WithRequest(r).
				WithField("duration_ms", time.Since(start).Milliseconds()).
				Debug("request handled")
		})
	}
}
