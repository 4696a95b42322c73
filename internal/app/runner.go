package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"parts-dispatch/internal/logx"
)

const shutdownTimeout = 15 * time.Second

// MustRun starts the HTTP servers using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type runIn struct {
	dig.In

	Ctx    context.Context
	Server *http.Server
	Pprof  *http.Server `name:"pprof_server"`
	Pool   *pgxpool.Pool
	Infra  *infra
	Logger logx.Logger
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		errCh := make(chan error, 2)
		startServer(in.Server, "api", in.Logger, errCh)
		if in.Pprof != nil {
			startServer(in.Pprof, "pprof", in.Logger, errCh)
		}

		var runErr error
		select {
		case <-in.Ctx.Done():
			in.Logger.Info("shutting down dispatch-api")
		case runErr = <-errCh:
			in.Logger.Error("server failed, shutting down", logx.Err(runErr))
		}

		gracefulShutdown(in.Logger, shutdownTimeout, in.Server, in.Pprof)
		in.Infra.close(in.Logger)
		if in.Pool != nil {
			in.Pool.Close()
		}
		_ = in.Logger.Sync()
		return runErr
	})
}

func startServer(server *http.Server, name string, logger logx.Logger, errCh chan<- error) {
	go func() {
		logger.Info("listening", logx.String("server", name), logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
}

func gracefulShutdown(logger logx.Logger, timeout time.Duration, servers ...*http.Server) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, srv := range servers {
		if srv == nil {
			continue
		}
		if err := srv.Shutdown(shCtx); err != nil {
			logger.Error("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
			_ = srv.Close()
		}
	}
}
