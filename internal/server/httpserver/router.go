// Package httpserver provides the HTTP/HTTPS server for oatable.
package httpserver

import (
	"net/http"

	"github.com/yndnr/oatable-go/internal/server/httpserver/handler"
	"github.com/yndnr/oatable-go/internal/store"
	"github.com/yndnr/oatable-go/internal/telemetry/logger"
	"github.com/yndnr/oatable-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Store is the key store behind the API.
	Store *store.Store

	// Logger for request logging.
	Logger logger.Logger

	// Metrics is the Prometheus registry. Optional; when nil the
	// /metrics endpoint is not registered and requests go unmeasured.
	Metrics *metric.Registry

	// RatePerSecond is the per-IP request rate. Zero disables
	// throttling.
	RatePerSecond float64

	// Burst is the per-IP burst allowance.
	Burst int

	// EnableAudit enables audit logging for all requests.
	EnableAudit bool
}

// NewRouter creates and configures the HTTP router with all routes and
// middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	h := handler.New(cfg.Store, cfg.Logger)

	// Order: Recover -> RequestID -> RateLimit -> Instrument -> Audit -> Handler
	middlewares := []Middleware{
		Recover(cfg.Logger),
		RequestID(),
	}
	if cfg.RatePerSecond > 0 {
		middlewares = append(middlewares, RateLimit(cfg.RatePerSecond, cfg.Burst))
	}
	if cfg.Metrics != nil {
		middlewares = append(middlewares, Instrument(cfg.Metrics))
	}
	if cfg.EnableAudit {
		middlewares = append(middlewares, Audit(cfg.Logger))
	}

	apiHandler := Chain(h, middlewares...)

	mux := http.NewServeMux()

	// Health endpoints stay outside throttling and audit
	probeHandler := Chain(h, Recover(cfg.Logger), RequestID())
	mux.Handle("GET /health", probeHandler)
	mux.Handle("GET /ready", probeHandler)

	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(), Recover(cfg.Logger), RequestID()))
	}

	// Key endpoints
	mux.Handle("POST /v1/keys", apiHandler)
	mux.Handle("GET /v1/keys/{key}", apiHandler)
	mux.Handle("DELETE /v1/keys/{key}", apiHandler)
	mux.Handle("DELETE /v1/keys", apiHandler)

	// Diagnostics endpoints
	mux.Handle("GET /v1/stats", apiHandler)
	mux.Handle("GET /v1/slots", apiHandler)

	return mux
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() *RouterConfig {
	return &RouterConfig{
		RatePerSecond: 0,
		Burst:         100,
		EnableAudit:   true,
	}
}
