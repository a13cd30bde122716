// Package httpserver provides the KeyWire admin HTTP server.
//
// It exposes a small operational surface next to the KV listener:
//
//	GET /health   liveness probe
//	GET /stats    key count, live connections, uptime, build info
//	GET /metrics  Prometheus exposition
//
// The server is meant for loopback or otherwise trusted networks and
// carries no authentication.
package httpserver
