// Package logger provides structured logging for the oatable server.
//
// This package wraps log/slog:
//
//   - logger.go: Logger interface, configuration and level control
//   - context.go: Context-aware logging with request IDs
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering with runtime adjustment
//   - Context propagation for request tracing
package logger
