// Package handler provides HTTP request handlers for oatable.
package handler

import "time"

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses Prometheus format).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"` // Additional error details
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// PutKeyRequest is the request body for POST /v1/keys.
type PutKeyRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// KeyResponse represents a stored key in API responses.
type KeyResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ClearResponse is the response body for DELETE /v1/keys.
type ClearResponse struct {
	Removed int `json:"removed"`
}

// StatsResponse is the response body for GET /v1/stats.
type StatsResponse struct {
	TableSize  uint64  `json:"table_size"`
	Count      int     `json:"count"`
	LoadFactor float64 `json:"load_factor"`
	Probes     uint64  `json:"probes"`
	Expansions int     `json:"expansions"`
	BytesFreed uint64  `json:"bytes_freed"`
}

// SlotResponse represents one table slot in GET /v1/slots.
//
// Values are omitted: the endpoint exists to inspect probe chain
// layout, not to dump the store.
type SlotResponse struct {
	Index int    `json:"index"`
	State string `json:"state"`
	Key   string `json:"key,omitempty"`
}

// SlotsResponse is the response body for GET /v1/slots.
type SlotsResponse struct {
	TableSize int            `json:"table_size"`
	Slots     []SlotResponse `json:"slots"`
}
