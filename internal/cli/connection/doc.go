// Package connection provides the client side of keywire-cli.
//
// Two clients live here:
//
//   - client.go: TCP client for the line protocol (GET/SET/DELETE)
//   - admin.go: HTTP client for the admin API (/health, /stats)
package connection
