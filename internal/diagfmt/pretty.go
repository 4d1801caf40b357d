package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"shorthand/internal/diag"
	"shorthand/internal/source"
)

// Pretty renders each diagnostic as a header line
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline and, with
// ShowNotes, one line per note. Call bag.Sort() first when stable
// order matters.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	PrettyList(w, bag.Items(), fs, opts)
}

// PrettyList renders a diagnostic slice, for callers that post-process
// bag items before printing.
func PrettyList(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range items {
		prettyOne(w, &d, fs, opts)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start := f.LineColAt(d.Primary.Start)
	end := f.LineColAt(d.Primary.End)

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(f.Path, opts.PathMode), start.Line, start.Col,
		label(d.Severity, opts.Color), code(d.Code, d.Severity, opts.Color), d.Message)

	printContext(w, f, start, end, d.Severity, opts)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			printNote(w, &n, fs, opts)
		}
	}
}

func printContext(w io.Writer, f *source.File, start, end source.LineCol, sev diag.Severity, opts PrettyOpts) {
	last := lastLine(f)
	if last == 0 {
		return
	}
	ctx := uint32(0)
	if opts.Context > 0 {
		ctx = uint32(opts.Context)
	}
	from := uint32(1)
	if start.Line > ctx {
		from = start.Line - ctx
	}
	to := min(start.Line+ctx, last)
	gutter := len(fmt.Sprint(to))

	for line := from; line <= to; line++ {
		text := f.GetLine(line)
		fmt.Fprintf(w, "%*d | %s\n", gutter, line, text)
		if line != start.Line {
			continue
		}
		endCol := end.Col
		if end.Line != start.Line {
			endCol = start.Col + uint32(len([]rune(text)))
		}
		pad, width := caretMetrics(text, start.Col, endCol)
		underline := "^" + strings.Repeat("~", width-1)
		if opts.Color {
			underline = severityColor(sev).Sprint(underline)
		}
		fmt.Fprintf(w, "%s | %s%s\n", strings.Repeat(" ", gutter), strings.Repeat(" ", pad), underline)
	}
}

func printNote(w io.Writer, n *diag.Note, fs *source.FileSet, opts PrettyOpts) {
	if n.Span.Empty() {
		fmt.Fprintf(w, "  note: %s\n", n.Msg)
		return
	}
	f := fs.Get(n.Span.File)
	pos := f.LineColAt(n.Span.Start)
	fmt.Fprintf(w, "  note: %s (%s:%d:%d)\n", n.Msg, formatPath(f.Path, opts.PathMode), pos.Line, pos.Col)
}

// caretMetrics converts rune columns into display columns: the pad
// before the caret and the underline width, both at least respecting
// wide runes. A zero-width span still gets a single caret.
func caretMetrics(lineText string, startCol, endCol uint32) (pad, width int) {
	runes := []rune(lineText)
	s := int(startCol) - 1
	s = min(s, len(runes))
	if s < 0 {
		s = 0
	}
	e := int(endCol) - 1
	e = min(e, len(runes))
	if e < s {
		e = s
	}
	pad = runewidth.StringWidth(string(runes[:s]))
	width = runewidth.StringWidth(string(runes[s:e]))
	if width < 1 {
		width = 1
	}
	return pad, width
}

// lastLine returns the number of the last line that carries text.
func lastLine(f *source.File) uint32 {
	if len(f.Content) == 0 {
		return 0
	}
	n := uint32(len(f.LineIdx)) + 1
	if f.Content[len(f.Content)-1] == '\n' {
		n--
	}
	return n
}

func label(sev diag.Severity, colored bool) string {
	if !colored {
		return sev.String()
	}
	return severityColor(sev).Sprint(sev.String())
}

func code(c diag.Code, sev diag.Severity, colored bool) string {
	if !colored {
		return c.ID()
	}
	return severityColor(sev).Sprint(c.ID())
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
