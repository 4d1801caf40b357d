package diag

import (
	"shorthand/internal/source"
)

// Note is a secondary span with context for a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one recoverable finding with its location.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
