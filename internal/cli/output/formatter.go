package output

import "io"

// Format represents the output format.
type Format string

const (
	// FormatTable is the default human-readable output.
	FormatTable Format = "table"
	// FormatJSON is indented JSON for scripting.
	FormatJSON Format = "json"
)

// Formatter formats data for output.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates a formatter for the given format. Table output
// is rendered by the commands themselves, so only machine-readable
// formats return a formatter; anything else returns nil.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	default:
		return nil
	}
}
