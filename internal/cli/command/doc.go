// Package command provides CLI command definitions for oatable-cli.
//
// It uses urfave/cli/v2 for command parsing. The tool works on a local
// in-process table, making it a workbench for sizing and hash choices:
//
//   - bench: run an insert/lookup workload and report probe statistics
//   - probe: show the probe sequence a key would follow
//   - version: print build information
package command
