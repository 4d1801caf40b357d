package diagfmt

import (
	"encoding/json"
	"io"

	"shorthand/internal/diag"
	"shorthand/internal/source"
)

// LocationJSON is one span in machine form.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON is a secondary note attached to a diagnostic.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is one diagnostic in machine form.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of the diagnostics JSON document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	f := fs.Get(span.File)
	loc := LocationJSON{
		File:      formatPath(f.Path, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		start, end := fs.Resolve(span)
		loc.StartLine = start.Line
		loc.StartCol = start.Col
		loc.EndLine = end.Line
		loc.EndCol = end.Col
	}
	return loc
}

func makeDiagnosticJSON(d *diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions),
	}
	if opts.IncludeNotes && len(d.Notes) > 0 {
		out.Notes = make([]NoteJSON, len(d.Notes))
		for i, n := range d.Notes {
			out.Notes[i] = NoteJSON{
				Message:  n.Msg,
				Location: makeLocation(n.Span, fs, opts.PathMode, opts.IncludePositions),
			}
		}
	}
	return out
}

// BuildDiagnosticsList assembles the JSON structure from a plain
// slice, for callers that post-process bag items (lint escalation).
func BuildDiagnosticsList(items []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	limit := len(items)
	if opts.Max > 0 && opts.Max < limit {
		limit = opts.Max
	}
	out := make([]DiagnosticJSON, 0, limit)
	for i := range limit {
		out = append(out, makeDiagnosticJSON(&items[i], fs, opts))
	}
	return DiagnosticsOutput{Diagnostics: out, Count: len(out)}
}

// BuildDiagnosticsOutput assembles the JSON structure without
// serializing it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	return BuildDiagnosticsList(bag.Items(), fs, opts)
}

// JSON writes the diagnostics as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	return JSONList(w, bag.Items(), fs, opts)
}

// JSONList writes a diagnostic slice as indented JSON.
func JSONList(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsList(items, fs, opts))
}
