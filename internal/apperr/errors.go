package apperr

import "errors"

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidTransition is returned when a status change violates the lifecycle graph.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrInsufficientStock is returned when a catalog row cannot cover the requested quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrForbidden indicates the actor is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrValidation is returned when the input fails domain validation.
var ErrValidation = errors.New("validation failed")

// ErrNoRouteFound is returned when the route solver produced no feasible plan.
var ErrNoRouteFound = errors.New("no route found")

// ErrUpstreamUnavailable marks routing provider failures. It is recovered by the fallback and never
// leaves the geo layer.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")
