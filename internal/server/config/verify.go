// Package config defines the server configuration structure.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyStore(&cfg.Store); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if cfg.KV.Addr == "" {
		return errors.New("server.kv.addr is required")
	}
	if _, _, err := net.SplitHostPort(cfg.KV.Addr); err != nil {
		return fmt.Errorf("server.kv.addr: %w", err)
	}

	if cfg.KV.TLSAddr != "" {
		if _, _, err := net.SplitHostPort(cfg.KV.TLSAddr); err != nil {
			return fmt.Errorf("server.kv.tls_addr: %w", err)
		}
		if cfg.KV.TLSCertFile == "" || cfg.KV.TLSKeyFile == "" {
			return errors.New("server.kv.tls_cert_file and server.kv.tls_key_file are required when tls_addr is set")
		}
		if _, err := os.Stat(cfg.KV.TLSCertFile); err != nil {
			return fmt.Errorf("server.kv.tls_cert_file: %w", err)
		}
		if _, err := os.Stat(cfg.KV.TLSKeyFile); err != nil {
			return fmt.Errorf("server.kv.tls_key_file: %w", err)
		}
	}

	if cfg.KV.RateLimit < 0 {
		return errors.New("server.kv.rate_limit must be >= 0")
	}
	if cfg.KV.ReadTimeout < 0 || cfg.KV.WriteTimeout < 0 || cfg.KV.IdleTimeout < 0 {
		return errors.New("server.kv timeouts must be >= 0")
	}

	if cfg.Admin.Enabled {
		if _, _, err := net.SplitHostPort(cfg.Admin.Addr); err != nil {
			return fmt.Errorf("server.admin.addr: %w", err)
		}
	}

	return nil
}

func verifyStore(cfg *StoreSection) error {
	if cfg.Shards <= 0 || cfg.Shards&(cfg.Shards-1) != 0 {
		return errors.New("store.shards must be a power of 2")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}

	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Format)
	}

	return nil
}
