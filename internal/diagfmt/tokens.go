package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"shorthand/internal/token"
)

// TokenJSON is one token in machine form.
type TokenJSON struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Width uint32 `json:"width,omitempty"`
}

// FormatTokensPretty writes a numbered human-readable token dump. The
// dump stops after the first EOF.
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d", tok.Line, tok.Col)
		if tok.Kind == token.Indent || tok.Kind == token.Dedent {
			fmt.Fprintf(w, " width=%d", tok.Width)
		}
		fmt.Fprintln(w)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the token dump as indented JSON.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	out := make([]TokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenJSON{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Line:  tok.Line,
			Col:   tok.Col,
			Start: tok.Span.Start,
			End:   tok.Span.End,
			Width: tok.Width,
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
