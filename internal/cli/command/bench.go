// Package command provides CLI command definitions for oatable-cli.
package command

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/oatable-go/pkg/oatable"
)

// BenchResult is the measured outcome of one bench run.
type BenchResult struct {
	Keys          int     `json:"keys"`
	TableSize     uint64  `json:"table_size"`
	Expansions    int     `json:"expansions"`
	LoadFactor    float64 `json:"load_factor"`
	Probes        uint64  `json:"probes"`
	ProbesPerOp   float64 `json:"probes_per_op"`
	InsertMicros  int64   `json:"insert_micros"`
	LookupMicros  int64   `json:"lookup_micros"`
	MissesChecked int     `json:"misses_checked"`
}

// BenchCommand returns the bench subcommand.
func BenchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Run an insert/lookup workload and report probe statistics",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "keys",
				Aliases: []string{"k"},
				Usage:   "Number of keys to insert",
				Value:   10000,
			},
		},
		Action: benchAction,
	}
}

func benchAction(c *cli.Context) error {
	cfg, err := tableFromFlags(c)
	if err != nil {
		return err
	}

	table, err := oatable.New(cfg)
	if err != nil {
		return err
	}

	n := c.Int("keys")
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("bench-key-%08d", i)
	}

	start := time.Now()
	for i, key := range keys {
		if err := table.Insert(key, i); err != nil {
			return fmt.Errorf("insert %q: %w", key, err)
		}
	}
	insertDur := time.Since(start)

	start = time.Now()
	for _, key := range keys {
		if _, err := table.Find(key); err != nil {
			return fmt.Errorf("find %q: %w", key, err)
		}
	}
	lookupDur := time.Since(start)

	// A few misses exercise the failed-lookup path too
	misses := n / 10
	for i := 0; i < misses; i++ {
		_, _ = table.Find(fmt.Sprintf("bench-miss-%08d", i))
	}

	stats := table.Stats()
	ops := uint64(2*n + misses)

	result := BenchResult{
		Keys:          n,
		TableSize:     stats.TableSize,
		Expansions:    stats.Expansions,
		LoadFactor:    stats.LoadFactor,
		Probes:        stats.Probes,
		ProbesPerOp:   float64(stats.Probes) / float64(ops),
		InsertMicros:  insertDur.Microseconds(),
		LookupMicros:  lookupDur.Microseconds(),
		MissesChecked: misses,
	}

	if c.String("output") == "json" {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Inserted %d keys (%s hash, %s policy)\n", result.Keys, c.String("hash"), c.String("policy"))
	fmt.Fprintf(w, "  table size:    %d\n", result.TableSize)
	fmt.Fprintf(w, "  expansions:    %d\n", result.Expansions)
	fmt.Fprintf(w, "  load factor:   %.3f\n", result.LoadFactor)
	fmt.Fprintf(w, "  probes:        %d (%.2f per op over %d ops)\n", result.Probes, result.ProbesPerOp, ops)
	fmt.Fprintf(w, "  insert time:   %dus\n", result.InsertMicros)
	fmt.Fprintf(w, "  lookup time:   %dus\n", result.LookupMicros)
	return nil
}
