// Package command defines the keywire-cli commands.
//
// All commands are built on urfave/cli/v2:
//
//   - root.go: application, global flags
//   - kv.go: get, set, delete, ping (one-shot protocol commands)
//   - stats.go: stats (admin API query)
//   - repl.go: interactive mode
//
// One-shot commands dial, execute a single protocol line, print the
// reply, and exit. Transport failures become non-zero exits; protocol
// error replies print like any other reply.
package command
