package token

import (
	"shorthand/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Line uint32 // 1-based line of the first character
	Col  uint32 // 1-based rune column of the first character
	// Width is the absolute indentation width after an Indent or Dedent;
	// zero for every other kind.
	Width uint32
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsComment reports whether the token is a comment.
func (t Token) IsComment() bool { return t.Kind == Comment }

// IsLayout reports whether the token only structures the line grid.
func (t Token) IsLayout() bool { return t.Kind.IsLayout() }

// IsSym reports whether the token is the Symbol kind carrying the given
// character.
func (t Token) IsSym(ch byte) bool {
	return t.Kind == Symbol && len(t.Text) == 1 && t.Text[0] == ch
}
