// Package command provides CLI command definitions for oatable-cli.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/oatable-go/internal/infra/buildinfo"
	"github.com/yndnr/oatable-go/internal/server/config"
	"github.com/yndnr/oatable-go/pkg/hashkit"
	"github.com/yndnr/oatable-go/pkg/oatable"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "oatable-cli",
		Usage:   "Open-addressing table workbench",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			BenchCommand(),
			ProbeCommand(),
			VersionCommand(),
		},
	}
}

// globalFlags returns the flags shared by all table commands.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "size",
			Aliases: []string{"n"},
			Usage:   "Requested table size (rounded up to a prime)",
			Value:   1009,
		},
		&cli.StringFlag{
			Name:    "hash",
			Usage:   "Hash function: murmur3, xxhash, blake2b, fnv",
			EnvVars: []string{"OATABLE_HASH"},
			Value:   hashkit.AlgMurmur3,
		},
		&cli.StringFlag{
			Name:    "seed",
			Usage:   "Hash seed (decimal or 0x-prefixed hex)",
			EnvVars: []string{"OATABLE_SEED"},
		},
		&cli.StringFlag{
			Name:  "policy",
			Usage: "Deletion policy: mark or pack",
			Value: "mark",
		},
		&cli.Float64Flag{
			Name:  "max-load-factor",
			Usage: "Load factor that triggers growth",
			Value: oatable.DefaultMaxLoadFactor,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, json",
			Value:   "text",
		},
	}
}

// tableFromFlags builds a table configuration from the global flags.
func tableFromFlags(c *cli.Context) (oatable.Config[int], error) {
	size := c.Int("size")
	if size <= 0 {
		return oatable.Config[int]{}, fmt.Errorf("size must be positive, got %d", size)
	}

	var seed uint64
	if s := c.String("seed"); s != "" {
		var err error
		seed, err = config.ParseSeed(s)
		if err != nil {
			return oatable.Config[int]{}, fmt.Errorf("invalid seed: %w", err)
		}
	}

	pair, err := hashkit.ByName(c.String("hash"), hashkit.Seed(seed))
	if err != nil {
		return oatable.Config[int]{}, err
	}

	policy := oatable.Mark
	switch c.String("policy") {
	case "mark":
	case "pack":
		policy = oatable.Pack
	default:
		return oatable.Config[int]{}, fmt.Errorf("unknown policy %q", c.String("policy"))
	}

	return oatable.Config[int]{
		InitialSize:   uint64(size),
		PrimaryHash:   pair.Primary,
		SecondaryHash: pair.Secondary,
		MaxLoadFactor: c.Float64("max-load-factor"),
		Policy:        policy,
	}, nil
}

// VersionCommand returns the version subcommand.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(c *cli.Context) error {
			info := buildinfo.Get()
			fmt.Fprintf(c.App.Writer, "oatable-cli %s (commit: %s, built: %s, %s)\n",
				info.Version, info.Commit, info.BuildTime, info.GoVersion)
			return nil
		},
	}
}
