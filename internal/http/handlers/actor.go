package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"parts-dispatch/internal/domain"
	"parts-dispatch/internal/logx"
)

// Identity headers set by the authenticating gateway in front of the API.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type actorKey struct{}

// RequireActor reads the caller's identity from the gateway headers. The system role
// belongs to the worker and is refused over HTTP.
func RequireActor(logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(HeaderUserID)), 10, 64)
			if err != nil || id <= 0 {
				writeError(logger, w, r, http.StatusUnauthorized, "missing or invalid "+HeaderUserID)
				return
			}
			role, ok := domain.ParseRole(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole))))
			if !ok || role == domain.RoleSystem {
				writeError(logger, w, r, http.StatusUnauthorized, "missing or invalid "+HeaderUserRole)
				return
			}
			ctx := context.WithValue(r.Context(), actorKey{}, domain.Actor{UserID: id, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithActor returns ctx carrying actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func actorFrom(r *http.Request) domain.Actor {
	a, _ := r.Context().Value(actorKey{}).(domain.Actor)
	return a
}
