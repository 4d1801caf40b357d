// Package diag defines the diagnostic model shared by the lexer, parser
// and driver.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture
//     findings produced by the lexer and parser.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting.
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering lives in internal/diagfmt; orchestration
// lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g.
// "entity declared here") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. The parser
// constructs a ReportBuilder via NewReportBuilder (or the helpers
// ReportError/ReportWarning/ReportInfo), chains WithNote, and calls Emit.
// BagReporter aggregates into a Bag, which supports sorting, deduplication
// and merging.
//
// Hard parse failures are NOT diagnostics: they travel as *parser.ParseError
// return values and abort the parse. The Bag only ever holds recoverable
// findings.
package diag
