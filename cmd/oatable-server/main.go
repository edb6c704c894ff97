// Package main provides the entry point for oatable-server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/yndnr/oatable-go/internal/infra/buildinfo"
	"github.com/yndnr/oatable-go/internal/infra/confloader"
	"github.com/yndnr/oatable-go/internal/infra/shutdown"
	"github.com/yndnr/oatable-go/internal/server/config"
	"github.com/yndnr/oatable-go/internal/server/httpserver"
	"github.com/yndnr/oatable-go/internal/store"
	"github.com/yndnr/oatable-go/internal/telemetry/logger"
	"github.com/yndnr/oatable-go/internal/telemetry/metric"
	"github.com/yndnr/oatable-go/pkg/hashkit"
	"github.com/yndnr/oatable-go/pkg/oatable"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("oatable-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting oatable-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)

	reg := metric.NewRegistry()

	st, err := initStore(cfg, reg)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	if err := reg.Register(metric.NewTableCollector(st)); err != nil {
		return fmt.Errorf("register table collector: %w", err)
	}

	// Log with the seed masked so it never reaches log storage
	safe := config.Sanitize(cfg)
	stats := st.TableStats()
	log.Info("table ready",
		"table_size", stats.TableSize,
		"policy", safe.Table.Policy,
		"hash", safe.Table.Hash,
		"seed", safe.Table.Seed)

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Store:         st,
		Logger:        log,
		Metrics:       reg,
		RatePerSecond: cfg.Limits.RatePerSecond,
		Burst:         cfg.Limits.Burst,
		EnableAudit:   true,
	})

	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router)

	shutdownHandler := shutdown.NewHandler(30 * time.Second)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	// Follow log-level edits to the config file while running
	if *configFile != "" {
		stopWatch, err := watchLogLevel(*configFile, log)
		if err != nil {
			log.Warn("config watch disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(context.Context) error {
				stopWatch()
				return nil
			})
		}
	}

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)

		var err error
		if cfg.Server.HTTP.TLSCertFile != "" && cfg.Server.HTTP.TLSKeyFile != "" {
			err = httpServer.ListenAndServeTLS(cfg.Server.HTTP.TLSCertFile, cfg.Server.HTTP.TLSKeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// initStore builds the table from configuration and wires the
// freed-bytes metric into the release hook.
func initStore(cfg *config.ServerConfig, reg *metric.Registry) (*store.Store, error) {
	var seed uint64
	if cfg.Table.Seed != "" {
		var err error
		seed, err = config.ParseSeed(cfg.Table.Seed)
		if err != nil {
			return nil, err
		}
	}

	pair, err := hashkit.ByName(cfg.Table.Hash, hashkit.Seed(seed))
	if err != nil {
		return nil, err
	}

	policy := oatable.Mark
	if cfg.Table.Policy == "pack" {
		policy = oatable.Pack
	}

	return store.New(oatable.Config[[]byte]{
		InitialSize:   uint64(cfg.Table.InitialSize),
		PrimaryHash:   pair.Primary,
		SecondaryHash: pair.Secondary,
		MaxLoadFactor: cfg.Table.MaxLoadFactor,
		GrowthFactor:  cfg.Table.GrowthFactor,
		Policy:        policy,
		MaxKeyLen:     cfg.Table.MaxKeyLen,
		Release: func(v []byte) {
			reg.BytesFreed.Add(float64(len(v)))
		},
	})
}

// watchLogLevel reloads log.level from the config file on change.
// The returned func stops the watch.
func watchLogLevel(configFile string, log logger.Logger) (func(), error) {
	watcher, err := confloader.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(configFile); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(path string) {
		loader := confloader.NewLoader(confloader.WithConfigFile(configFile))
		cfg := config.Default()
		if err := loader.Load(cfg); err != nil {
			log.Warn("config reload failed", "path", path, "error", err)
			return
		}
		if err := config.Verify(cfg); err != nil {
			log.Warn("config reload rejected", "path", path, "error", err)
			return
		}

		logger.SetLevel(cfg.Log.Level)
		log.Info("log level updated", "level", cfg.Log.Level)
	})

	watcher.StartAsync()
	return func() { watcher.Stop() }, nil
}
