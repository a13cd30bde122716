// Package tlsroots provides TLS certificate management for KeyWire.
//
// Two concerns live here:
//
//   - roots.go: trust pools built from system roots and custom CA
//     certificates, used by the CLI to verify the server's listener
//   - watcher.go: server certificate hot-reload via fsnotify, wired
//     into tls.Config.GetCertificate so rotated certificates are
//     picked up without a restart
package tlsroots
