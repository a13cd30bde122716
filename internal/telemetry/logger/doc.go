// Package logger provides structured logging for KeyWire.
//
// This package wraps log/slog for structured logging:
//
//   - logger.go: Handler configuration, level control, default logger
//   - context.go: Context-aware logging with request IDs
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering with runtime adjustment
//   - Context propagation for request correlation
package logger
