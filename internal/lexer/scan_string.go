package lexer

import (
	"shorthand/internal/diag"
	"shorthand/internal/token"
)

// scanString scans a double-quoted literal. Escapes are consumed pairwise
// without validation; a newline or EOF before the closing quote yields an
// Invalid token and a diagnostic.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			return lx.make(token.String, start)
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == '\n' {
			tok := lx.make(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "newline in string literal")
			return tok
		}
		lx.cursor.Bump()
	}
	tok := lx.make(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}
