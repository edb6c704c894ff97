// Package main provides the entry point for oatable-server.
//
// The server exposes an open-addressing hash table over HTTP:
//
//   - HTTP/HTTPS API for key insert, lookup, delete and clear
//   - Table statistics and slot layout diagnostics
//   - Prometheus metrics at /metrics
//
// Usage:
//
//	oatable-server [flags]
//	oatable-server --config /path/to/config.yaml
//
// The server loads configuration, builds the table from it, and starts
// the HTTP listener. When started with a config file, the log level
// follows edits to the file without a restart.
package main
