// Package config provides server configuration for KeyWire.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation (address formats, TLS file existence, shard counts)
//   - summary.go: Structured log representation
//
// Configuration is loaded via internal/infra/confloader and supports
// files and environment variables.
package config
