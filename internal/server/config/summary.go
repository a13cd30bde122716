// Package config defines the server configuration structure.
package config

// LogFields returns the configuration as structured log attributes.
//
// Seed values are reported as a count only; the pairs themselves are
// user data and stay out of the logs.
func LogFields(cfg *ServerConfig) []any {
	fields := []any{
		"kv_addr", cfg.Server.KV.Addr,
		"idle_timeout", cfg.Server.KV.IdleTimeout.String(),
		"rate_limit", cfg.Server.KV.RateLimit,
		"store_shards", cfg.Store.Shards,
		"seed_keys", len(cfg.Store.Seed),
		"log_level", cfg.Log.Level,
		"log_format", cfg.Log.Format,
	}

	if cfg.Server.KV.TLSAddr != "" {
		fields = append(fields, "kv_tls_addr", cfg.Server.KV.TLSAddr)
	}
	if cfg.Server.Admin.Enabled {
		fields = append(fields, "admin_addr", cfg.Server.Admin.Addr)
	}

	return fields
}
