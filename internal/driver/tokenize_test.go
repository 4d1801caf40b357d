package driver_test

import (
	"testing"

	"shorthand/internal/driver"
	"shorthand/internal/token"
)

func TestTokenizeCollectsFullStream(t *testing.T) {
	path := writeSource(t, t.TempDir(), "demo.shd", canonicalSrc)

	res, err := driver.Tokenize(path, 0)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(res.Tokens) == 0 {
		t.Fatal("no tokens")
	}
	if res.Tokens[len(res.Tokens)-1].Kind != token.EOF {
		t.Errorf("last token = %v, want EOF", res.Tokens[len(res.Tokens)-1].Kind)
	}

	kinds := map[token.Kind]bool{}
	for _, tok := range res.Tokens {
		kinds[tok.Kind] = true
	}
	for _, want := range []token.Kind{token.Comment, token.Newline, token.Indent, token.Dedent, token.Memberof, token.Arrow} {
		if !kinds[want] {
			t.Errorf("stream is missing %v", want)
		}
	}
	if res.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Bag.Items())
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	if _, err := driver.Tokenize("absent.shd", 0); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStripTrivia(t *testing.T) {
	path := writeSource(t, t.TempDir(), "demo.shd", canonicalSrc)

	res, err := driver.Tokenize(path, 0)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	stripped := driver.StripTrivia(res.Tokens)
	if len(stripped) >= len(res.Tokens) {
		t.Fatal("StripTrivia removed nothing")
	}
	for _, tok := range stripped {
		if tok.Kind == token.Comment || tok.Kind == token.Newline {
			t.Fatalf("trivia %v survived", tok.Kind)
		}
	}

	// Structure must survive: indentation tokens and EOF stay.
	kinds := map[token.Kind]bool{}
	for _, tok := range stripped {
		kinds[tok.Kind] = true
	}
	if !kinds[token.Indent] || !kinds[token.Dedent] || !kinds[token.EOF] {
		t.Errorf("structural tokens lost: %v", kinds)
	}
}
