package format

import (
	"errors"
	"slices"
	"strings"

	"shorthand/internal/ast"
	"shorthand/internal/parser"
)

type printer struct {
	w   *Writer
	cfg Config
	g   glyphs
}

// Document renders the canonical text for a parsed document. The
// document is never mutated; sorting works on copies.
func Document(doc *ast.Document, cfg Config) (string, error) {
	if doc == nil {
		return "", errors.New("format: nil document")
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	p := printer{
		w:   NewWriter(cfg.Indent),
		cfg: cfg,
		g:   glyphSet(cfg.PreferUnicode),
	}
	p.printDocument(doc)
	return p.w.String(), nil
}

// Source parses and formats in one step, propagating a hard parse
// failure unchanged.
func Source(name, src string, cfg Config) (string, error) {
	doc, _, err := parser.ParseString(name, src, parser.Options{})
	if err != nil {
		return "", err
	}
	return Document(doc, cfg)
}

func (p *printer) printDocument(doc *ast.Document) {
	p.printMetadata(doc.Metadata)
	for _, ent := range doc.Entities {
		p.w.BlankLine()
		p.printEntity(ent)
	}
	if len(doc.Functions) > 0 {
		p.w.BlankLine()
		for i := range doc.Functions {
			p.w.WriteString(p.functionText(&doc.Functions[i]))
			p.w.Newline()
		}
	}
	p.w.Newline()
}

func (p *printer) printMetadata(md ast.Metadata) {
	p.w.WriteString("# [M:" + md.ModuleName + "]")
	if md.Role != "" {
		p.w.WriteString(" [Role:" + md.Role + "]")
	}
	p.w.Newline()
}

// CheckRoundTrip re-parses formatted output and compares it against the
// document it was printed from. State is compared as a multiset: a
// sorting config reorders it without losing anything.
func CheckRoundTrip(doc *ast.Document, formatted string) (ok bool, msg string) {
	redoc, _, err := parser.ParseString("fmt-check", formatted, parser.Options{})
	if err != nil {
		return false, "fmt-check: reparse failed: " + err.Error()
	}
	if !normalize(doc).EqualStructure(normalize(redoc)) {
		return false, "fmt-check: document changed after round-trip"
	}
	return true, "fmt-check: OK"
}

// normalize returns a copy with every entity's state sorted, so the
// comparison ignores state order.
func normalize(doc *ast.Document) *ast.Document {
	out := &ast.Document{
		Metadata:  doc.Metadata,
		Functions: doc.Functions,
	}
	for _, ent := range doc.Entities {
		cp := *ent
		cp.State = slices.Clone(ent.State)
		slices.SortStableFunc(cp.State, func(a, b ast.StateVariable) int {
			if c := strings.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return strings.Compare(a.Type.String(), b.Type.String())
		})
		out.Entities = append(out.Entities, &cp)
	}
	return out
}
