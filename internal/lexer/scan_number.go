package lexer

import (
	"shorthand/internal/token"
)

// scanNumber scans a run of decimal digits. The notation only needs
// integers (shape dims, tag qualifiers like TTL:60).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.make(token.Number, start)
}
