package parser

import (
	"shorthand/internal/diag"
	"shorthand/internal/source"
)

// Options configures one parse.
type Options struct {
	// Reporter, when set, receives every recoverable diagnostic in
	// addition to Document.Diagnostics.
	Reporter diag.Reporter
	// MaxDiagnostics caps the collected diagnostics; 0 means the
	// default of 100.
	MaxDiagnostics int
	// ExtraDecorators extends the decorator vocabulary beyond the
	// built-in set (shorthand.toml [tags] decorators).
	ExtraDecorators []string
}

// DefaultMaxDiagnostics is the per-parse diagnostic cap used when
// Options.MaxDiagnostics is zero.
const DefaultMaxDiagnostics = 100

func (o Options) withDefaults() Options {
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = DefaultMaxDiagnostics
	}
	return o
}

// teeReporter mirrors every report into the parser's own bag and the
// caller's reporter.
type teeReporter struct {
	bag  diag.Reporter
	next diag.Reporter
}

func (t teeReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	t.bag.Report(code, sev, primary, msg, notes)
	if t.next != nil {
		t.next.Report(code, sev, primary, msg, notes)
	}
}
