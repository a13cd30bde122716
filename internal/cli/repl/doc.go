// Package repl implements the interactive mode of keywire-cli.
//
//   - repl.go: prompt loop and dispatch
//   - completer.go: prefix completion over the command set
//   - history.go: command history persistence (~/.keywire/history)
package repl
