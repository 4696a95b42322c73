// Package router assembles the dispatch HTTP API.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parts-dispatch/internal/http/handlers"
	obs "parts-dispatch/internal/http/middleware"
	"parts-dispatch/internal/http/middleware/ratelimit"
	"parts-dispatch/internal/logx"
)

// requestTimeout bounds every API call; batched planning runs the route solver
// inside it.
const requestTimeout = 30 * time.Second

// Deps groups everything the router mounts.
type Deps struct {
	Logger     logx.Logger
	Gatherer   prometheus.Gatherer
	Metrics    obs.HTTPMetrics
	RateLimit  *ratelimit.Middleware
	Base       *handlers.Handlers
	Orders     *handlers.OrderHandler
	Matching   *handlers.MatchingHandler
	Deliveries *handlers.DeliveryHandler
	Inventory  *handlers.InventoryHandler
	Jobs       *handlers.JobHandler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.Observability(d.Logger, d.Metrics))
	r.Use(middleware.Recoverer)

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	r.Route("/api/v1", func(r chi.Router) {
		if d.RateLimit != nil {
			r.Use(d.RateLimit.Handler())
		}
		r.Use(handlers.RequireActor(d.Logger))
		r.Use(middleware.Timeout(requestTimeout))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", d.Orders.Place)
			r.Get("/{id}", d.Orders.Get)
			r.Get("/{id}/history", d.Orders.History)
			r.Patch("/{id}/status", d.Orders.UpdateStatus)
			r.Post("/{id}/cancel", d.Orders.Cancel)
			r.Patch("/items/{id}/status", d.Orders.UpdateItemStatus)
			r.Post("/assignments/{id}/confirm", d.Orders.ConfirmAssignment)
			r.Post("/assignments/{id}/reject", d.Orders.RejectAssignment)
		})
		r.Get("/notifications", d.Orders.Notifications)

		r.Route("/matching", func(r chi.Router) {
			r.Post("/order/{id}", d.Matching.RunOrder)
			r.Post("/simulate", d.Matching.Simulate)
			r.Get("/logs/{item_id}", d.Matching.Logs)
			r.Get("/config", d.Matching.GetConfig)
			r.Put("/config", d.Matching.PutConfig)
		})

		r.Route("/deliveries", func(r chi.Router) {
			r.Post("/single", d.Deliveries.CreateSingle)
			r.Post("/batch", d.Deliveries.CreateBatch)
			r.Get("/assignments/available", d.Deliveries.Available)
			r.Get("/stats", d.Deliveries.Stats)
			r.Get("/{id}", d.Deliveries.Get)
			r.Get("/{id}/route", d.Deliveries.Route)
			r.Patch("/{id}/status", d.Deliveries.UpdateStatus)
			r.Post("/{id}/update-eta", d.Deliveries.UpdateETA)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/search", d.Inventory.Search)
			r.Get("/low-stock", d.Inventory.LowStock)
			r.Get("/{id}", d.Inventory.Get)
			r.Post("/{id}/restock", d.Inventory.Restock)
		})

		r.Post("/jobs", d.Jobs.Enqueue)
	})

	return r
}
