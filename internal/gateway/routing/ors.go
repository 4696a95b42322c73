package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"parts-dispatch/internal/apperr"
	"parts-dispatch/internal/geo"
)

const (
	directionsPath = "/v2/directions/driving-car/geojson"
	matrixPath     = "/v2/matrix/driving-car"
)

// ORSConfig configures the openrouteservice client.
type ORSConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// ORSClient talks to the openrouteservice directions and matrix endpoints.
type ORSClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// NewORSClient returns nil when no API key is configured.
func NewORSClient(cfg ORSConfig) *ORSClient {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}
	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = max(1, int(cfg.RequestsPerSecond))
	}
	return &ORSClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// StatusError is a non-2xx provider response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("routing provider: status %d: %s", e.Code, e.Body)
}

// Unwrap lets callers match provider failures with apperr.ErrUpstreamUnavailable.
func (e *StatusError) Unwrap() error { return apperr.ErrUpstreamUnavailable }

type directionsRequest struct {
	Coordinates [][2]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][2]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

type matrixRequest struct {
	Locations [][2]float64 `json:"locations"`
	Metrics   []string     `json:"metrics"`
	Units     string       `json:"units"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// Route fetches a driving leg. Distance comes back in metres and duration in seconds.
func (c *ORSClient) Route(ctx context.Context, from, to geo.Point) (Leg, error) {
	var resp directionsResponse
	req := directionsRequest{Coordinates: [][2]float64{{from.Lng, from.Lat}, {to.Lng, to.Lat}}}
	if err := c.post(ctx, directionsPath, req, &resp); err != nil {
		return Leg{}, err
	}
	if len(resp.Features) == 0 {
		return Leg{}, fmt.Errorf("%w: directions returned no route", apperr.ErrUpstreamUnavailable)
	}
	f := resp.Features[0]
	return Leg{
		DistanceKm:  f.Properties.Summary.Distance / 1000,
		DurationMin: f.Properties.Summary.Duration / 60,
		Geometry:    geo.LineString{Type: "LineString", Coordinates: f.Geometry.Coordinates},
	}, nil
}

// Matrix fetches the full pairwise matrix for points.
func (c *ORSClient) Matrix(ctx context.Context, points []geo.Point) (Matrix, error) {
	req := matrixRequest{
		Locations: make([][2]float64, 0, len(points)),
		Metrics:   []string{"distance", "duration"},
		Units:     "km",
	}
	for _, p := range points {
		req.Locations = append(req.Locations, [2]float64{p.Lng, p.Lat})
	}

	var resp matrixResponse
	if err := c.post(ctx, matrixPath, req, &resp); err != nil {
		return Matrix{}, err
	}
	n := len(points)
	if len(resp.Distances) != n || len(resp.Durations) != n {
		return Matrix{}, fmt.Errorf("%w: matrix size %d/%d, want %d",
			apperr.ErrUpstreamUnavailable, len(resp.Distances), len(resp.Durations), n)
	}

	m := Matrix{DistancesKm: make([][]float64, n), DurationsMin: make([][]float64, n)}
	for i := 0; i < n; i++ {
		if len(resp.Distances[i]) != n || len(resp.Durations[i]) != n {
			return Matrix{}, fmt.Errorf("%w: matrix row %d is short", apperr.ErrUpstreamUnavailable, i)
		}
		m.DistancesKm[i] = make([]float64, n)
		m.DurationsMin[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			dist, dur := resp.Distances[i][j], resp.Durations[i][j]
			if dist == nil || dur == nil {
				return Matrix{}, fmt.Errorf("%w: no route between %d and %d", apperr.ErrUpstreamUnavailable, i, j)
			}
			m.DistancesKm[i][j] = *dist
			m.DurationsMin[i][j] = *dur / 60
		}
	}
	return m, nil
}

func (c *ORSClient) post(ctx context.Context, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %w", apperr.ErrUpstreamUnavailable, err)
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal routing request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build routing request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, application/geo+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", apperr.ErrUpstreamUnavailable, path, err)
	}
	return nil
}

// isRetryable reports whether another attempt may succeed.
func isRetryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}
	return false
}
