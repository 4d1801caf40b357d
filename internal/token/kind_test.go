package token_test

import (
	"testing"

	"shorthand/internal/source"
	"shorthand/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestKindString(t *testing.T) {
	cases := []struct {
		kind token.Kind
		want string
	}{
		{token.Invalid, "Invalid"},
		{token.EOF, "EOF"},
		{token.Newline, "Newline"},
		{token.Indent, "Indent"},
		{token.Dedent, "Dedent"},
		{token.Comment, "Comment"},
		{token.Ident, "Ident"},
		{token.Number, "Number"},
		{token.String, "String"},
		{token.BracketOpen, "BracketOpen"},
		{token.BracketClose, "BracketClose"},
		{token.Colon, "Colon"},
		{token.Arrow, "Arrow"},
		{token.Memberof, "Memberof"},
		{token.Gradient, "Gradient"},
		{token.Diamond, "Diamond"},
		{token.Symbol, "Symbol"},
	}
	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
	if got := token.Kind(200).String(); got != "Kind(?)" {
		t.Errorf("out-of-range String() = %q", got)
	}
}

func TestIsLayout(t *testing.T) {
	layout := []token.Kind{token.Newline, token.Indent, token.Dedent}
	for _, k := range layout {
		if !tok(k).IsLayout() {
			t.Fatalf("%v should be layout", k)
		}
	}
	non := []token.Kind{token.Ident, token.Comment, token.Memberof, token.EOF}
	for _, k := range non {
		if tok(k).IsLayout() {
			t.Fatalf("%v must NOT be layout", k)
		}
	}
}

func TestIsReserved(t *testing.T) {
	reserved := []token.Kind{token.Arrow, token.Memberof, token.Gradient, token.Diamond}
	for _, k := range reserved {
		if !k.IsReserved() {
			t.Fatalf("%v should be reserved", k)
		}
	}
	if token.Colon.IsReserved() || token.Symbol.IsReserved() {
		t.Fatal("Colon/Symbol must not be reserved symbols")
	}
}

func TestIsSym(t *testing.T) {
	at := token.Token{Kind: token.Symbol, Text: "@"}
	if !at.IsSym('@') {
		t.Error("expected IsSym('@') on @ symbol token")
	}
	if at.IsSym('(') {
		t.Error("IsSym must check the character")
	}
	if tok(token.Ident).IsSym('@') {
		t.Error("IsSym must check the kind")
	}
}

func TestLookupSymbolWord(t *testing.T) {
	if kind, ok := token.LookupSymbolWord("in"); !ok || kind != token.Memberof {
		t.Errorf("LookupSymbolWord(\"in\") = %v, %v; want Memberof, true", kind, ok)
	}
	if _, ok := token.LookupSymbolWord("out"); ok {
		t.Error("\"out\" must not be a reserved word")
	}
}
