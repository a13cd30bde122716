// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for keywire-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server"`
	Store  StoreSection  `koanf:"store"`
	Log    LogSection    `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	KV    KVConfig    `koanf:"kv"`
	Admin AdminConfig `koanf:"admin"`
}

// KVConfig configures the key-value protocol listener.
type KVConfig struct {
	// Addr is the plaintext TCP bind address.
	Addr string `koanf:"addr"`

	// TLSAddr enables an additional TLS listener when set.
	// Requires TLSCertFile and TLSKeyFile.
	TLSAddr     string `koanf:"tls_addr"`
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`

	// ReadTimeout bounds reading a single command line once bytes
	// start arriving.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds flushing a response.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// IdleTimeout closes connections with no pending command.
	IdleTimeout time.Duration `koanf:"idle_timeout"`

	// RateLimit is the accepted connections per second per client IP.
	// 0 disables rate limiting.
	RateLimit int `koanf:"rate_limit"`
}

// AdminConfig configures the admin HTTP server.
type AdminConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// StoreSection configures the in-memory store.
type StoreSection struct {
	// Shards is the shard count of the backing map. Must be a power of 2.
	Shards int `koanf:"shards"`

	// Seed is loaded into the store at start-up.
	Seed map[string]string `koanf:"seed"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
