package lexer

import (
	"shorthand/internal/diag"
	"shorthand/internal/source"
)

// ReporterAdapter bridges the lexer's thin Reporter to a diag.Bag.
type ReporterAdapter struct {
	Bag *diag.Bag
}

// Reporter returns a Reporter that stores diagnostics in the adapter's bag.
func (r *ReporterAdapter) Reporter() Reporter {
	return forwardReporter{r: diag.BagReporter{Bag: r.Bag}}
}

// Forward wraps a full diag.Reporter as the lexer's thin Reporter.
// Lexer diagnostics never carry notes.
func Forward(r diag.Reporter) Reporter {
	return forwardReporter{r: r}
}

type forwardReporter struct {
	r diag.Reporter
}

func (f forwardReporter) Report(code diag.Code, sev diag.Severity, span source.Span, msg string) {
	if f.r == nil {
		return
	}
	f.r.Report(code, sev, span, msg, nil)
}
