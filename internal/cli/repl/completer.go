package repl

import "strings"

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a completer over the protocol verbs and the
// REPL's own commands.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"GET", "SET", "DELETE",
			"ping", "help", "exit", "quit",
		},
	}
}

// Complete returns the commands matching the given prefix. Matching is
// case-insensitive, mirroring the server's verb handling.
func (c *Completer) Complete(prefix string) []string {
	lower := strings.ToLower(prefix)

	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(strings.ToLower(cmd), lower) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

// Known reports whether cmd is exactly one of the known commands,
// ignoring case.
func (c *Completer) Known(cmd string) bool {
	for _, known := range c.commands {
		if strings.EqualFold(cmd, known) {
			return true
		}
	}
	return false
}
