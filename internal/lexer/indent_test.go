package lexer_test

import (
	"testing"

	"shorthand/internal/diag"
	"shorthand/internal/lexer"
	"shorthand/internal/token"
)

func TestIndentDedentPair(t *testing.T) {
	tokens, rep := lexAll(t, "[C:A]\n  x ∈ T\n  y ∈ T\n[C:B]\n", lexer.Options{})
	assertKinds(t, tokens, []token.Kind{
		token.BracketOpen, token.Ident, token.Colon, token.Ident, token.BracketClose, token.Newline,
		token.Indent,
		token.Ident, token.Memberof, token.Ident, token.Newline,
		token.Ident, token.Memberof, token.Ident, token.Newline,
		token.Dedent,
		token.BracketOpen, token.Ident, token.Colon, token.Ident, token.BracketClose, token.Newline,
		token.EOF,
	})
	if tokens[6].Width != 2 {
		t.Errorf("indent width = %d, want 2", tokens[6].Width)
	}
	if tokens[15].Width != 0 {
		t.Errorf("dedent width = %d, want 0", tokens[15].Width)
	}
	if len(rep.diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", rep.diags)
	}
}

func TestBlankAndCommentLinesKeepIndent(t *testing.T) {
	src := "[C:A]\n  x ∈ T\n\n  # note\n  y ∈ T\n"
	tokens, _ := lexAll(t, src, lexer.Options{})
	assertKinds(t, tokens, []token.Kind{
		token.BracketOpen, token.Ident, token.Colon, token.Ident, token.BracketClose, token.Newline,
		token.Indent,
		token.Ident, token.Memberof, token.Ident, token.Newline,
		token.Newline,
		token.Comment, token.Newline,
		token.Ident, token.Memberof, token.Ident, token.Newline,
		token.Dedent, token.EOF,
	})
}

func TestEOFClosesOpenBlocks(t *testing.T) {
	tokens, _ := lexAll(t, "[C:A]\n  x ∈ T", lexer.Options{})
	n := len(tokens)
	if n < 4 {
		t.Fatalf("too few tokens: %d", n)
	}
	// missing trailing newline is synthesized before the dedent
	if tokens[n-3].Kind != token.Newline {
		t.Errorf("token %d = %v, want Newline", n-3, tokens[n-3].Kind)
	}
	if tokens[n-2].Kind != token.Dedent {
		t.Errorf("token %d = %v, want Dedent", n-2, tokens[n-2].Kind)
	}
	if tokens[n-1].Kind != token.EOF {
		t.Errorf("token %d = %v, want EOF", n-1, tokens[n-1].Kind)
	}
}

func TestNestedDedentsUnwindInOrder(t *testing.T) {
	tokens, _ := lexAll(t, "a\n  b\n    c\nd\n", lexer.Options{})
	assertKinds(t, tokens, []token.Kind{
		token.Ident, token.Newline,
		token.Indent, token.Ident, token.Newline,
		token.Indent, token.Ident, token.Newline,
		token.Dedent, token.Dedent, token.Ident, token.Newline,
		token.EOF,
	})
	if tokens[8].Width != 2 || tokens[9].Width != 0 {
		t.Errorf("dedent widths = %d, %d, want 2, 0", tokens[8].Width, tokens[9].Width)
	}
}

func TestRaggedDedentIsLenient(t *testing.T) {
	tokens, rep := lexAll(t, "a\n      b\n   c\n", lexer.Options{})
	assertKinds(t, tokens, []token.Kind{
		token.Ident, token.Newline,
		token.Indent, token.Ident, token.Newline,
		token.Dedent, token.Ident, token.Newline,
		token.Dedent, token.EOF,
	})
	if tokens[5].Width != 3 {
		t.Errorf("ragged dedent width = %d, want 3", tokens[5].Width)
	}
	if len(rep.diags) != 0 {
		t.Errorf("ragged dedent produced diagnostics: %v", rep.diags)
	}
}

func TestTabAfterSpaceWarnsOnce(t *testing.T) {
	_, rep := lexAll(t, "a\n \tb\n", lexer.Options{})
	if rep.count(diag.LexBadIndent) != 1 {
		t.Fatalf("bad indent reports = %d, want 1", rep.count(diag.LexBadIndent))
	}
}

func TestIndentedFirstLine(t *testing.T) {
	tokens, _ := lexAll(t, "  x\n", lexer.Options{})
	assertKinds(t, tokens, []token.Kind{
		token.Indent, token.Ident, token.Newline, token.Dedent, token.EOF,
	})
}
