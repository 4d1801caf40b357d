package lexer

import (
	"shorthand/internal/token"
)

// scanIdent scans an identifier, possibly absorbing a type-spec suffix.
// `f32[N,D]@GPU` must stay one token so the bracket never opens a tag:
// an identifier immediately followed by '[' absorbs through the matching
// ']' when one exists on the same line, and an immediate '@placement'
// run after that. Token.Text is exactly the source slice.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return lx.make(token.Invalid, start)
	}
	if r < utf8RuneSelf {
		lx.cursor.Bump()
	} else {
		lx.bumpRune()
	}
	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 {
			break
		}
		if r2 < utf8RuneSelf {
			if !isIdentContinueByte(byte(r2)) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	// shape suffix: [dims] with the close bracket on this line
	if lx.cursor.Peek() == '[' && lx.closesOnLine() {
		for lx.cursor.Peek() != ']' {
			lx.cursor.Bump()
		}
		lx.cursor.Bump() // ']'
	}
	// placement suffix: @Ident
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '@' && isIdentStartByte(b1) {
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	tok := lx.make(token.Ident, start)
	if kind, ok := token.LookupSymbolWord(tok.Text); ok {
		tok.Kind = kind
	}
	return tok
}

// closesOnLine reports whether a ']' appears after the cursor before the
// next newline or EOF.
func (lx *Lexer) closesOnLine() bool {
	for off := lx.cursor.Off + 1; off < lx.cursor.limit(); off++ {
		switch lx.file.Content[off] {
		case ']':
			return true
		case '\n':
			return false
		}
	}
	return false
}
