// Package output provides output formatting for keywire-cli.
//
// Commands render human-readable text themselves; this package supplies
// the machine-readable formats behind the --output flag:
//
//   - formatter.go: Formatter interface and factory
//   - json.go: JSON output formatting
package output
