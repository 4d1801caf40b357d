package parser

import (
	"shorthand/internal/ast"
	"shorthand/internal/diag"
	"shorthand/internal/lexer"
	"shorthand/internal/source"
	"shorthand/internal/token"
)

// Parser holds the state for one file.
type Parser struct {
	fs    *source.FileSet
	file  *source.File
	lx    *lexer.Lexer
	opts  Options
	rep   diag.Reporter
	bag   *diag.Bag
	vocab ast.DecoratorSet

	doc      *ast.Document
	buf      []token.Token // lookahead buffer over the lexer
	width    uint32        // indentation width in effect
	lastSpan source.Span   // span of the last consumed token
}

// Parse reads one file into a Document. Recoverable findings end up in
// Document.Diagnostics (and Options.Reporter); the hard failures return
// a *ParseError and no Document.
func Parse(fs *source.FileSet, file *source.File, opts Options) (*ast.Document, error) {
	opts = opts.withDefaults()
	bag := diag.NewBag(opts.MaxDiagnostics)
	// identical findings at the same span collapse to one entry
	rep := diag.Reporter(diag.NewDedupReporter(teeReporter{bag: diag.BagReporter{Bag: bag}, next: opts.Reporter}))

	p := &Parser{
		fs:    fs,
		file:  file,
		lx:    lexer.New(file, lexer.Options{Reporter: lexer.Forward(rep)}),
		opts:  opts,
		rep:   rep,
		bag:   bag,
		vocab: ast.DefaultDecorators().With(opts.ExtraDecorators...),
		doc:   &ast.Document{},
	}
	if err := p.parseDocument(); err != nil {
		return nil, err
	}
	p.doc.Diagnostics = bag.Items()
	return p.doc, nil
}

// ParseString parses in-memory source under a virtual file name.
func ParseString(name, src string, opts Options) (*ast.Document, *source.FileSet, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(src))
	doc, err := Parse(fs, fs.Get(id), opts)
	return doc, fs, err
}

// parseDocument is the top-level loop: metadata first, then entity
// blocks, function lines, and free comments until EOF.
func (p *Parser) parseDocument() error {
	p.skipBlankLines()
	if err := p.parseMetadata(); err != nil {
		return err
	}
	for {
		tok := p.peek(0)
		switch tok.Kind {
		case token.EOF:
			return nil
		case token.Newline:
			p.advance()
		case token.Comment:
			p.advance() // free comment, not model data
		case token.Indent, token.Dedent:
			p.width = tok.Width
			p.advance()
		case token.BracketOpen:
			if p.atEntityHeader() {
				if err := p.parseEntity(); err != nil {
					return err
				}
				continue
			}
			// a stray tag still goes through full validation so the
			// hard failures surface the same way everywhere
			if _, err := p.parseTag(); err != nil {
				return err
			}
			p.warnAt(diag.SynUnrecognizedLine, tok.Span, "tag outside a function line")
			p.skipToEOL()
		case token.Ident:
			switch {
			case p.atFunctionStart():
				fn, err := p.parseFunctionLine()
				if err != nil {
					return err
				}
				if fn != nil {
					p.doc.Functions = append(p.doc.Functions, *fn)
				}
			case p.peek(1).Kind == token.Memberof:
				// a bare state line outside any entity parses and is
				// dropped; it belongs to no block
				p.parseStateVariable(nil)
			default:
				p.warnAt(diag.SynUnrecognizedLine, tok.Span, "unrecognized line")
				p.skipToEOL()
			}
		case token.Diamond:
			p.warnAt(diag.SynUnrecognizedLine, tok.Span, "dependency outside an entity block")
			p.skipToEOL()
		default:
			p.warnAt(diag.SynUnrecognizedLine, tok.Span, "unrecognized line")
			p.skipToEOL()
		}
	}
}

// ===== Lookahead and consumption =====

func (p *Parser) peek(i int) token.Token {
	for len(p.buf) <= i {
		p.buf = append(p.buf, p.lx.Next())
	}
	return p.buf[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek(0).Kind == k
}

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	var tok token.Token
	if len(p.buf) > 0 {
		tok = p.buf[0]
		p.buf = p.buf[1:]
	} else {
		tok = p.lx.Next()
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagnosticSpan picks the best span for a diagnostic at the current
// position: EOF falls back to just past the last consumed token.
func (p *Parser) diagnosticSpan() source.Span {
	tok := p.peek(0)
	if (tok.Kind == token.EOF || tok.Kind == token.Invalid) && tok.Span.Empty() {
		if p.lastSpan.End > 0 {
			return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
		}
	}
	return tok.Span
}

func (p *Parser) atEntityHeader() bool {
	return p.peek(0).Kind == token.BracketOpen &&
		p.peek(1).Kind == token.Ident && p.peek(1).Text == "C" &&
		p.peek(2).Kind == token.Colon
}

func (p *Parser) atFunctionStart() bool {
	return p.peek(0).Kind == token.Ident && p.peek(0).Text == "F" &&
		p.peek(1).Kind == token.Colon
}

// ===== Reporting =====

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	p.rep.Report(code, sev, sp, msg, nil)
}

func (p *Parser) warn(code diag.Code, msg string) {
	p.report(code, diag.SevWarning, p.diagnosticSpan(), msg)
}

func (p *Parser) warnAt(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevWarning, sp, msg)
}

// fail builds the hard error that aborts the parse.
func (p *Parser) fail(tok token.Token, code diag.Code, msg string) error {
	return &ParseError{Line: tok.Line, Col: tok.Col, Code: code, Msg: msg}
}

// ===== Line plumbing =====

func (p *Parser) skipBlankLines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

// skipToEOL discards tokens up to and including the next Newline.
func (p *Parser) skipToEOL() {
	for {
		switch p.peek(0).Kind {
		case token.Newline:
			p.advance()
			return
		case token.EOF:
			return
		default:
			p.advance()
		}
	}
}

// finishLine consumes an optional trailing comment and the Newline,
// warning about anything else left on the line.
func (p *Parser) finishLine() {
	if p.at(token.Comment) {
		p.advance()
	}
	switch p.peek(0).Kind {
	case token.Newline:
		p.advance()
	case token.EOF:
		return
	default:
		p.warnAt(diag.SynTrailingContent, p.diagnosticSpan(), "unexpected trailing content")
		p.skipToEOL()
	}
}

// sliceText returns the exact source text covered by a span.
func (p *Parser) sliceText(sp source.Span) string {
	if sp.Empty() {
		return ""
	}
	return string(p.file.Content[sp.Start:sp.End])
}
