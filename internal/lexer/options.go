package lexer

import (
	"shorthand/internal/diag"
	"shorthand/internal/source"
)

// Reporter is a thin interface so the lexer does not depend on how the
// caller stores diagnostics. The lexer only calls it; rendering happens
// in an outer layer.
type Reporter interface {
	Report(code diag.Code, sev diag.Severity, span source.Span, msg string)
}

// Options configures a Lexer.
type Options struct {
	Reporter Reporter // may be nil: diagnostics are dropped but lexing continues
	// MaxTokens caps the number of tokens produced from one file. Past the
	// cap the lexer reports once and fast-forwards to EOF.
	MaxTokens int
}

const defaultMaxTokens = 1 << 20

func (o Options) withDefaults() Options {
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}
	return o
}

func (lx *Lexer) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, sev, sp, msg)
	}
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.report(code, diag.SevError, sp, msg)
}

func (lx *Lexer) warnLex(code diag.Code, sp source.Span, msg string) {
	lx.report(code, diag.SevWarning, sp, msg)
}
