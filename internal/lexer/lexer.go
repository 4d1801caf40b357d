package lexer

import (
	"fmt"
	"unicode"

	"shorthand/internal/diag"
	"shorthand/internal/source"
	"shorthand/internal/token"
)

// Lexer produces the token stream for one file. The notation is
// line-oriented: the lexer tracks an indentation stack and emits
// synthetic Indent/Dedent tokens before a line's content whenever the
// leading width changes. Blank and comment-only lines never move the
// stack.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	indents     []uint32      // indentation stack; indents[0] is always 0
	pending     []token.Token // queued synthetic tokens
	atLineStart bool
	produced    int
	stopped     bool
}

// New creates a lexer over the file's content.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts.withDefaults(),
		indents:     []uint32{0},
		atLineStart: true,
	}
}

// Next returns the next token. After EOF it always returns EOF. The
// stream is terminated so that every line ends in Newline and every
// open block closes: ... [Newline] Dedent* EOF.
func (lx *Lexer) Next() token.Token {
	if len(lx.pending) > 0 {
		return lx.dequeue()
	}
	if lx.stopped {
		return lx.synthetic(token.EOF)
	}
	tok := lx.scan()
	lx.produced++
	if lx.produced > lx.opts.MaxTokens && tok.Kind != token.EOF {
		lx.errLex(diag.LexTooManyTokens, tok.Span, "token limit exceeded")
		lx.stopped = true
		lx.pending = lx.pending[:0]
		return lx.synthetic(token.EOF)
	}
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	tok := lx.Next()
	lx.pending = append([]token.Token{tok}, lx.pending...)
	return tok
}

// Collect lexes the whole file into a slice, EOF included.
func Collect(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) scan() token.Token {
	for {
		if lx.atLineStart {
			if tok, ok := lx.lineStart(); ok {
				return tok
			}
		}
		if lx.cursor.EOF() {
			return lx.finish()
		}

		b := lx.cursor.Peek()
		switch {
		case b == '\n':
			return lx.scanNewline()
		case b == ' ' || b == '\t' || b == '\r':
			lx.cursor.Bump()
			continue
		case lx.isCommentStart():
			return lx.scanComment()
		case b == '"':
			return lx.scanString()
		case isDec(b):
			return lx.scanNumber()
		case b == '-':
			start := lx.cursor.Mark()
			if lx.try2('-', '>') {
				return lx.make(token.Arrow, start)
			}
			lx.cursor.Bump()
			return lx.make(token.Symbol, start)
		case b == '<':
			start := lx.cursor.Mark()
			if lx.try2('<', '>') {
				return lx.make(token.Diamond, start)
			}
			lx.cursor.Bump()
			return lx.make(token.Symbol, start)
		case b == '[':
			return lx.single(token.BracketOpen)
		case b == ']':
			return lx.single(token.BracketClose)
		case b == ':':
			return lx.single(token.Colon)
		case isIdentStartByte(b):
			return lx.scanIdent()
		case b < 0x20:
			tok := lx.single(token.Invalid)
			lx.warnLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unexpected character %q", rune(b)))
			return tok
		case b < utf8RuneSelf:
			return lx.single(token.Symbol)
		default:
			return lx.scanUnicode()
		}
	}
}

// lineStart measures leading whitespace and decides whether the line
// opens with a synthetic token. Returns false when the line continues at
// the current width (or the file ended).
func (lx *Lexer) lineStart() (token.Token, bool) {
	indentMark := lx.cursor.Mark()
	width := uint32(0)
	sawSpace := false
	mixed := false
	for {
		b := lx.cursor.Peek()
		if b == ' ' {
			sawSpace = true
			width++
			lx.cursor.Bump()
			continue
		}
		if b == '\t' {
			if sawSpace {
				mixed = true
			}
			width++
			lx.cursor.Bump()
			continue
		}
		break
	}
	if mixed {
		lx.warnLex(diag.LexBadIndent, lx.cursor.SpanFrom(indentMark), "tab after space in indentation")
	}
	if lx.cursor.EOF() {
		return token.Token{}, false // finish() closes open blocks
	}
	if lx.cursor.Peek() == '\n' {
		return lx.scanNewline(), true
	}
	if lx.isCommentStart() {
		lx.atLineStart = false
		return lx.scanComment(), true
	}

	lx.atLineStart = false
	top := lx.indents[len(lx.indents)-1]
	switch {
	case width > top:
		lx.indents = append(lx.indents, width)
		tok := lx.synthetic(token.Indent)
		tok.Width = width
		return tok, true
	case width < top:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > width {
			lx.indents = lx.indents[:len(lx.indents)-1]
			w := lx.indents[len(lx.indents)-1]
			if w < width {
				w = width // ragged dedent settles on the line's own width
			}
			tok := lx.synthetic(token.Dedent)
			tok.Width = w
			lx.queue(tok)
		}
		if lx.indents[len(lx.indents)-1] < width {
			lx.indents = append(lx.indents, width)
		}
		return lx.dequeue(), true
	}
	return token.Token{}, false
}

// finish terminates the stream: a Newline if the last line had no
// trailing one, a Dedent per open block, then EOF.
func (lx *Lexer) finish() token.Token {
	if !lx.atLineStart {
		lx.atLineStart = true
		lx.queue(lx.synthetic(token.Newline))
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		tok := lx.synthetic(token.Dedent)
		tok.Width = lx.indents[len(lx.indents)-1]
		lx.queue(tok)
	}
	lx.queue(lx.synthetic(token.EOF))
	return lx.dequeue()
}

func (lx *Lexer) scanNewline() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.atLineStart = true
	return lx.make(token.Newline, start)
}

func (lx *Lexer) scanUnicode() token.Token {
	start := lx.cursor.Mark()
	r, _ := lx.peekRune()
	switch r {
	case '∈':
		lx.bumpRune()
		return lx.make(token.Memberof, start)
	case '→':
		lx.bumpRune()
		return lx.make(token.Arrow, start)
	case '∇':
		lx.bumpRune()
		return lx.make(token.Gradient, start)
	case '◊':
		lx.bumpRune()
		return lx.make(token.Diamond, start)
	}
	if isIdentStartRune(r) {
		return lx.scanIdent()
	}
	lx.bumpRune()
	tok := lx.make(token.Symbol, start)
	if unicode.IsControl(r) {
		tok.Kind = token.Invalid
		lx.warnLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unexpected character %q", r))
	}
	return tok
}

func (lx *Lexer) single(kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return lx.make(kind, start)
}

// make cuts a token from the mark to the cursor and stamps its position.
func (lx *Lexer) make(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lc := lx.file.LineColAt(sp.Start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Line: lc.Line,
		Col:  lc.Col,
	}
}

// synthetic builds a zero-width token at the cursor (Indent, Dedent, EOF
// and the terminating Newline).
func (lx *Lexer) synthetic(kind token.Kind) token.Token {
	lc := lx.file.LineColAt(lx.cursor.Off)
	return token.Token{
		Kind: kind,
		Span: source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off},
		Line: lc.Line,
		Col:  lc.Col,
	}
}

func (lx *Lexer) queue(tok token.Token) {
	lx.pending = append(lx.pending, tok)
}

func (lx *Lexer) dequeue() token.Token {
	tok := lx.pending[0]
	lx.pending = lx.pending[1:]
	return tok
}
