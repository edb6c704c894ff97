// Package httpserver provides the HTTP/HTTPS server for oatable.
//
// This package implements the REST API surface:
//
//   - server.go: net/http server lifecycle
//   - router.go: route table and middleware wiring
//   - middleware.go: request ID, recovery, rate limiting, audit log
//
// Request handlers live in the handler subpackage.
package httpserver
