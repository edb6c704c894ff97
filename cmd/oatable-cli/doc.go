// Package main provides the entry point for oatable-cli.
//
// The CLI tool is a local workbench for the open-addressing table:
//
//   - Benchmark insert/lookup workloads under different hash functions
//   - Inspect the probe sequence a key would follow
//   - Print build information
//
// Usage:
//
//	oatable-cli [command] [flags]
//	oatable-cli bench --keys 50000 --hash xxhash --policy pack
//	oatable-cli probe alpha beta --size 97
package main
