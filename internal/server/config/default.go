// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultKVAddr    = "127.0.0.1:6379"
	DefaultAdminAddr = "127.0.0.1:7171"

	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultIdleTimeout  = 5 * time.Minute

	DefaultStoreShards = 16

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
//
// The default seed mirrors the demo data historically pre-populated at
// start-up; set store.seed explicitly to replace it.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			KV: KVConfig{
				Addr:         DefaultKVAddr,
				ReadTimeout:  DefaultReadTimeout,
				WriteTimeout: DefaultWriteTimeout,
				IdleTimeout:  DefaultIdleTimeout,
				RateLimit:    0,
			},
			Admin: AdminConfig{
				Enabled: true,
				Addr:    DefaultAdminAddr,
			},
		},
		Store: StoreSection{
			Shards: DefaultStoreShards,
			Seed: map[string]string{
				"name":    "Gemini",
				"version": "1.0",
			},
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
