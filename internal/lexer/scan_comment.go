package lexer

import (
	"shorthand/internal/token"
)

// scanComment scans `# ...` or `// ...` to the end of the line, marker
// included. The trailing newline stays in the stream.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Peek() == '#' {
		lx.cursor.Bump()
	} else {
		// "//"
		lx.cursor.Bump()
		lx.cursor.Bump()
	}
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return lx.make(token.Comment, start)
}

// isCommentStart reports whether a comment begins at the cursor.
func (lx *Lexer) isCommentStart() bool {
	b := lx.cursor.Peek()
	if b == '#' {
		return true
	}
	if b == '/' {
		if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '/' {
			return true
		}
	}
	return false
}
