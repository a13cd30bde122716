// Package main provides the entry point for keywire-server.
//
// The server is the KeyWire store daemon:
//
//   - TCP line protocol (GET/SET/DELETE) on the KV listener
//   - optional TLS listener alongside plaintext
//   - admin HTTP API for health, stats, and Prometheus metrics
//
// Usage:
//
//	keywire-server [flags]
//	keywire-server --config /path/to/config.yaml
//
// Configuration merges defaults, the optional YAML file, and KEYWIRE_*
// environment variables. The process serves until SIGINT/SIGTERM.
package main
