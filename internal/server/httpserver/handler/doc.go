// Package handler provides HTTP request handlers for oatable.
//
// This package implements the HTTP API endpoints for the key store:
//
//   - keys.go: key insert, lookup, delete and clear
//   - stats.go: table statistics and slot diagnostics
//   - health.go: liveness and readiness probes
//
// All JSON responses use the envelope defined in types.go.
package handler
