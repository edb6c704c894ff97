// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/yndnr/oatable-go/pkg/hashkit"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyTable(&cfg.Table); err != nil {
		return err
	}
	if err := verifyLimits(&cfg.Limits); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}
	if cfg.HTTP.TLSCertFile != "" || cfg.HTTP.TLSKeyFile != "" {
		if cfg.HTTP.TLSCertFile == "" || cfg.HTTP.TLSKeyFile == "" {
			return errors.New("server.http: tls_cert_file and tls_key_file must be set together")
		}
		for _, path := range []string{cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile} {
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("server.http: %w", err)
			}
		}
	}
	return nil
}

func verifyTable(cfg *TableSection) error {
	if cfg.InitialSize < 1 {
		return errors.New("table.initial_size must be at least 1")
	}
	if cfg.MaxLoadFactor <= 0 || cfg.MaxLoadFactor > 1 {
		return errors.New("table.max_load_factor must be in (0, 1]")
	}
	if cfg.GrowthFactor <= 1 {
		return errors.New("table.growth_factor must be greater than 1")
	}
	switch cfg.Policy {
	case "mark", "pack":
	default:
		return fmt.Errorf("table.policy: unknown policy %q", cfg.Policy)
	}
	if _, err := hashkit.ByName(cfg.Hash, nil); err != nil {
		return fmt.Errorf("table.hash: %w", err)
	}
	if cfg.Seed != "" {
		if _, err := ParseSeed(cfg.Seed); err != nil {
			return fmt.Errorf("table.seed: %w", err)
		}
	}
	if cfg.MaxKeyLen < 1 {
		return errors.New("table.max_key_len must be at least 1")
	}
	return nil
}

func verifyLimits(cfg *LimitsSection) error {
	if cfg.RatePerSecond < 0 {
		return errors.New("limits.rate_per_second must not be negative")
	}
	if cfg.RatePerSecond > 0 && cfg.Burst < 1 {
		return errors.New("limits.burst must be at least 1 when throttling is enabled")
	}
	return nil
}

// ParseSeed parses a table.seed value. Decimal and 0x-prefixed hex
// forms are accepted.
func ParseSeed(s string) (uint64, error) {
	return strconv.ParseUint(s, 0, 64)
}
