// Package command provides CLI command definitions for oatable-cli.
package command

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/oatable-go/pkg/prime"
)

// ProbeReport describes where a key lands in a table of the given size.
type ProbeReport struct {
	Key       string   `json:"key"`
	TableSize uint64   `json:"table_size"`
	Start     uint64   `json:"start"`
	Stride    uint64   `json:"stride"`
	Sequence  []uint64 `json:"sequence"`
}

// ProbeCommand returns the probe subcommand.
func ProbeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     "Show the probe sequence a key would follow",
		ArgsUsage: "KEY [KEY...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "steps",
				Usage: "Number of probe steps to print",
				Value: 8,
			},
		},
		Action: probeAction,
	}
}

func probeAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("probe: at least one key is required")
	}

	cfg, err := tableFromFlags(c)
	if err != nil {
		return err
	}

	size := prime.Next(uint64(c.Int("size")))
	steps := c.Int("steps")

	reports := make([]ProbeReport, 0, c.NArg())
	for _, key := range c.Args().Slice() {
		start := cfg.PrimaryHash(key, size)

		// Double hashing: the stride comes from the secondary hash and
		// is kept in [1, size-1] so every slot stays reachable.
		stride := uint64(1)
		if cfg.SecondaryHash != nil {
			stride = cfg.SecondaryHash(key, size-1)%(size-1) + 1
		}

		seq := make([]uint64, steps)
		for i := range seq {
			seq[i] = (start + uint64(i)*stride) % size
		}

		reports = append(reports, ProbeReport{
			Key:       key,
			TableSize: size,
			Start:     start,
			Stride:    stride,
			Sequence:  seq,
		})
	}

	if c.String("output") == "json" {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	w := c.App.Writer
	for _, r := range reports {
		fmt.Fprintf(w, "%s (table size %d)\n", r.Key, r.TableSize)
		fmt.Fprintf(w, "  start:  %d\n", r.Start)
		fmt.Fprintf(w, "  stride: %d\n", r.Stride)
		fmt.Fprintf(w, "  probes:")
		for _, idx := range r.Sequence {
			fmt.Fprintf(w, " %d", idx)
		}
		fmt.Fprintln(w)
	}
	return nil
}
