// Package handler provides HTTP request handlers for oatable.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/yndnr/oatable-go/internal/store"
	"github.com/yndnr/oatable-go/internal/telemetry/logger"
	"github.com/yndnr/oatable-go/pkg/oatable"
)

// Handler is the main HTTP handler that routes requests to appropriate handlers.
type Handler struct {
	store  *store.Store
	logger logger.Logger
	mux    *http.ServeMux
}

// New creates a new Handler backed by the given store.
func New(st *store.Store, log logger.Logger) *Handler {
	h := &Handler{
		store:  st,
		logger: log,
		mux:    http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	// Health endpoints
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)

	// Key endpoints
	h.mux.HandleFunc("POST /v1/keys", h.handlePutKey)
	h.mux.HandleFunc("GET /v1/keys/{key}", h.handleGetKey)
	h.mux.HandleFunc("DELETE /v1/keys/{key}", h.handleDeleteKey)
	h.mux.HandleFunc("DELETE /v1/keys", h.handleClear)

	// Diagnostics endpoints
	h.mux.HandleFunc("GET /v1/stats", h.handleStats)
	h.mux.HandleFunc("GET /v1/slots", h.handleSlots)
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := getRequestID(r)
	response := NewErrorResponse(requestID, code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// getRequestID extracts the request ID placed in the context by the
// middleware, falling back to the caller-supplied header.
func getRequestID(r *http.Request) string {
	if reqID := logger.RequestIDFromContext(r.Context()); reqID != "" {
		return reqID
	}
	return r.Header.Get("X-Request-ID")
}

// handleStoreError converts store errors to HTTP responses.
func (h *Handler) handleStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var tableErr *oatable.TableError
	if errors.As(err, &tableErr) {
		status := errorCodeToHTTPStatus(tableErr.Code)
		var details any
		if tableErr.Details != "" {
			details = tableErr.Details
		}
		h.writeError(w, r, status, tableErr.Code, tableErr.Message, details)
		return
	}

	h.logger.Error("internal error", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, "OT-SYS-5000", "internal server error", nil)
}

// errorCodeToHTTPStatus maps error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4040"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4000"), strings.HasSuffix(code, "-4001"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "-5070"):
		return http.StatusInsufficientStorage
	default:
		return http.StatusInternalServerError
	}
}
