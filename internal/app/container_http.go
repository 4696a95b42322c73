package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"parts-dispatch/internal/config"
	"parts-dispatch/internal/http/handlers"
	"parts-dispatch/internal/http/middleware"
	"parts-dispatch/internal/http/middleware/ratelimit"
	"parts-dispatch/internal/http/pprofserver"
	"parts-dispatch/internal/http/router"
	"parts-dispatch/internal/logx"
	"parts-dispatch/internal/service/catalog"
	"parts-dispatch/internal/service/delivery"
	"parts-dispatch/internal/service/lifecycle"
	"parts-dispatch/internal/service/matching"
)

func registerHTTP(container *dig.Container) error {
	providers := []any{
		handlers.New,
		func(logger logx.Logger, svc *lifecycle.Service) *handlers.OrderHandler {
			return handlers.NewOrderHandler(logger, svc)
		},
		func(logger logx.Logger, engine *matching.Engine, profiles *matching.Profiles) *handlers.MatchingHandler {
			return handlers.NewMatchingHandler(logger, engine, profiles)
		},
		func(logger logx.Logger, svc *delivery.Service) *handlers.DeliveryHandler {
			return handlers.NewDeliveryHandler(logger, svc)
		},
		func(logger logx.Logger, svc *catalog.Service) *handlers.InventoryHandler {
			return handlers.NewInventoryHandler(logger, svc)
		},
		func(logger logx.Logger, q jobQueue) *handlers.JobHandler {
			return handlers.NewJobHandler(logger, q)
		},
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newHTTPHandler,
		newHTTPServer,
	}
	if err := provideAll(container, providers...); err != nil {
		return err
	}
	return container.Provide(newPprofServer, dig.Name("pprof_server"))
}

type httpHandlerIn struct {
	dig.In

	Logger     logx.Logger
	Metrics    middleware.HTTPMetrics
	RateLimit  *ratelimit.Middleware
	Base       *handlers.Handlers
	Orders     *handlers.OrderHandler
	Matching   *handlers.MatchingHandler
	Deliveries *handlers.DeliveryHandler
	Inventory  *handlers.InventoryHandler
	Jobs       *handlers.JobHandler
}

func newHTTPHandler(in httpHandlerIn) http.Handler {
	return router.New(router.Deps{
		Logger:     in.Logger,
		Gatherer:   prometheus.DefaultGatherer,
		Metrics:    in.Metrics,
		RateLimit:  in.RateLimit,
		Base:       in.Base,
		Orders:     in.Orders,
		Matching:   in.Matching,
		Deliveries: in.Deliveries,
		Inventory:  in.Inventory,
		Jobs:       in.Jobs,
	})
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// newPprofServer returns nil when profiling is off.
func newPprofServer(cfg *config.Config, logger logx.Logger) *http.Server {
	if !cfg.Pprof.Enabled {
		return nil
	}
	return &http.Server{
		Addr:              cfg.Pprof.Addr,
		Handler:           pprofserver.Handler(pprofserver.Config{User: cfg.Pprof.User, Pass: cfg.Pprof.Pass}, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
