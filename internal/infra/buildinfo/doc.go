// Package buildinfo exposes build-time information injected via ldflags:
//
//   - Version: semantic version (e.g., "1.0.0")
//   - Commit: git commit hash
//   - BuildTime: build timestamp
//
// Usage:
//
//	go build -ldflags "-X buildinfo.Version=1.0.0 -X buildinfo.Commit=abc123"
package buildinfo
