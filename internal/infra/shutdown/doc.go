// Package shutdown provides graceful shutdown for KeyWire.
//
// This package handles process termination:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Programmatic triggering
//   - Cleanup hook registration, run in reverse order
//   - Timeout-bounded hook execution
//
// Usage:
//
//	h := shutdown.NewHandler(30 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { return srv.Shutdown(ctx) })
//	err := h.Wait() // blocks until signal, then runs hooks
package shutdown
