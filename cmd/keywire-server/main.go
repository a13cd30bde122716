package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yndnr/keywire-go/internal/infra/buildinfo"
	"github.com/yndnr/keywire-go/internal/infra/confloader"
	"github.com/yndnr/keywire-go/internal/infra/shutdown"
	"github.com/yndnr/keywire-go/internal/infra/tlsroots"
	"github.com/yndnr/keywire-go/internal/server/config"
	"github.com/yndnr/keywire-go/internal/server/httpserver"
	"github.com/yndnr/keywire-go/internal/server/kvserver"
	"github.com/yndnr/keywire-go/internal/store"
	"github.com/yndnr/keywire-go/internal/telemetry/logger"
	"github.com/yndnr/keywire-go/internal/telemetry/metric"
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
		fmt.Printf("keywire-server %s\n", buildinfo.String())
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

	info := buildinfo.Get()
	log.Info("starting keywire-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", *configFile)
	log.Info("configuration loaded", config.LogFields(cfg)...)

	st := store.New(store.WithShards(cfg.Store.Shards))
	st.LoadSeed(cfg.Store.Seed)

	metrics := metric.New()
	metrics.RegisterStore(st)

	kvCfg := &kvserver.Config{
		Addr:         cfg.Server.KV.Addr,
		ReadTimeout:  cfg.Server.KV.ReadTimeout,
		WriteTimeout: cfg.Server.KV.WriteTimeout,
		IdleTimeout:  cfg.Server.KV.IdleTimeout,
		RateLimit:    cfg.Server.KV.RateLimit,
	}

	var certWatcher *tlsroots.Watcher
	if cfg.Server.KV.TLSAddr != "" {
		certWatcher, err = tlsroots.NewWatcher(
			cfg.Server.KV.TLSCertFile,
			cfg.Server.KV.TLSKeyFile,
			tlsroots.WithLogger(log),
		)
		if err != nil {
			return fmt.Errorf("load TLS certificate: %w", err)
		}
		certWatcher.StartAsync()

		kvCfg.TLSAddr = cfg.Server.KV.TLSAddr
		kvCfg.TLSConfig = &tls.Config{
			GetCertificate: certWatcher.GetCertificate,
			MinVersion:     tls.VersionTLS12,
		}
	}

	ctx := context.Background()
	startTime := time.Now()

	kvSrv := kvserver.New(kvCfg, st, log, metrics)
	if err := kvSrv.Start(ctx); err != nil {
		return fmt.Errorf("start kv server: %w", err)
	}

	shutdownHandler := shutdown.NewHandler(30 * time.Second)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down kv server")
		return kvSrv.Shutdown(ctx)
	})

	if certWatcher != nil {
		shutdownHandler.OnShutdown(func(context.Context) error {
			certWatcher.Stop()
			return nil
		})
	}

	if cfg.Server.Admin.Enabled {
		router := httpserver.NewRouter(&httpserver.RouterConfig{
			Store:     st,
			Conns:     kvSrv,
			Metrics:   metrics,
			Logger:    log,
			StartTime: startTime,
		})

		adminSrv := httpserver.New(cfg.Server.Admin.Addr, router, log)
		if err := adminSrv.Start(); err != nil {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			kvSrv.Shutdown(stopCtx)
			return fmt.Errorf("start admin server: %w", err)
		}

		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down admin server")
			return adminSrv.Shutdown(ctx)
		})
	}

	if *configFile != "" {
		watcher, err := startConfigWatcher(*configFile, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown(func(context.Context) error {
				return watcher.Stop()
			})
		}
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig merges defaults, the optional file, and environment.
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

// initLogger initializes the structured logger and installs it as the
// process default.
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

// startConfigWatcher reapplies the log level when the config file
// changes. Other settings need a restart.
func startConfigWatcher(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(configFile); err != nil {
		watcher.Stop()
		return nil, err
	}

	watcher.OnChange(func(path string) {
		// The watcher reports sibling files too; only ours matters.
		if filepath.Base(path) != filepath.Base(configFile) {
			return
		}

		cfg, err := loadConfig(configFile)
		if err != nil {
			log.Warn("config reload rejected", "error", err)
			return
		}

		logger.SetLevel(cfg.Log.Level)
		log.Info("log level updated", "level", cfg.Log.Level)
	})

	watcher.StartAsync()
	return watcher, nil
}
