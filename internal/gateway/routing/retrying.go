package routing

import (
	"context"
	"time"

	"parts-dispatch/internal/geo"
	"parts-dispatch/internal/logx"
)

// RetryConfig describes how RetryingRouter retries provider calls.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingRouter retries transient provider failures with exponential backoff.
type RetryingRouter struct {
	next    Router
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingRouter returns nil when next is nil.
func NewRetryingRouter(next Router, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingRouter {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingRouter{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Route retries next.Route.
func (r *RetryingRouter) Route(ctx context.Context, from, to geo.Point) (Leg, error) {
	return retry(ctx, r, "Route", func() (Leg, error) {
		return r.next.Route(ctx, from, to)
	})
}

// Matrix retries next.Matrix.
func (r *RetryingRouter) Matrix(ctx context.Context, points []geo.Point) (Matrix, error) {
	return retry(ctx, r, "Matrix", func() (Matrix, error) {
		return r.next.Matrix(ctx, points)
	})
}

func retry[T any](ctx context.Context, r *RetryingRouter, method string, call func() (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		res, err := call()
		if err == nil {
			return res, nil
		}
		lastErr = err
		// контекст отменён, попытки кончились или ошибка не временная
		if ctx.Err() != nil || attempt == r.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(r.cfg.BaseDelay, r.cfg.MaxDelay, attempt)
		if r.retries != nil {
			r.retries.Inc()
		}
		r.logger.Warn("routing provider retry",
			logx.String("event", "routing_retry"),
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return zero, lastErr
}

// backoff doubles the delay per attempt up to max.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max || d < 0 {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
