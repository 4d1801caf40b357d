package parser

import (
	"shorthand/internal/ast"
	"shorthand/internal/diag"
	"shorthand/internal/lexer"
	"shorthand/internal/source"
	"shorthand/internal/token"
)

// parseFunctionLine reads `F:name(params) → type [tags]`. A broken
// signature degrades to warnings and drops the line; only tag
// validation can abort the parse.
func (p *Parser) parseFunctionLine() (*ast.Function, error) {
	fTok := p.advance() // F
	p.advance()         // ':'
	if !p.at(token.Ident) {
		p.warnAt(diag.SynExpectIdentifier, p.diagnosticSpan(), "function name expected after F:")
		p.skipToEOL()
		return nil, nil
	}
	nameTok := p.advance()
	fn := ast.Function{Name: nameTok.Text, Return: ast.Unknown()}

	if !p.peek(0).IsSym('(') {
		p.warnAt(diag.SynUnrecognizedLine, p.diagnosticSpan(), "parameter list expected after function name")
		p.skipToEOL()
		return nil, nil
	}
	p.advance() // '('
	if !p.parseParams(&fn) {
		p.skipToEOL()
		return nil, nil
	}

	if p.at(token.Arrow) {
		p.advance()
		rt := p.peek(0)
		if rt.Kind == token.Ident {
			p.advance()
			fn.Return = typeSpecFromText(rt.Text)
		} else {
			p.warnAt(diag.SynMissingReturn, p.diagnosticSpan(), "return type expected after →")
		}
	} else {
		p.warnAt(diag.SynMissingReturn, p.diagnosticSpan(), "function line without → return type")
	}

	for p.at(token.BracketOpen) {
		tag, err := p.parseTag()
		if err != nil {
			return nil, err
		}
		fn.Tags = append(fn.Tags, tag)
	}
	fn.Span = fTok.Span.Cover(p.lastSpan)
	p.finishLine()
	return &fn, nil
}

// parseParams consumes the parameter list after '('. Returns false when
// the line ends before the close paren.
func (p *Parser) parseParams(fn *ast.Function) bool {
	for {
		tok := p.peek(0)
		switch {
		case tok.IsSym(')'):
			p.advance()
			return true
		case tok.Kind == token.Newline || tok.Kind == token.EOF:
			p.warnAt(diag.SynUnrecognizedLine, p.diagnosticSpan(), "unterminated parameter list")
			return false
		case tok.Kind == token.Ident:
			name := p.advance()
			param := ast.Parameter{Name: name.Text, Type: ast.Unknown()}
			if p.at(token.Colon) {
				p.advance()
				tt := p.peek(0)
				if tt.Kind == token.Ident {
					p.advance()
					param.Type = typeSpecFromText(tt.Text)
				} else {
					p.warnAt(diag.SynUnknownType, p.diagnosticSpan(), "parameter type expected")
				}
			} else {
				p.warnAt(diag.SynUnknownType, name.Span, "parameter \""+name.Text+"\" has no type annotation")
			}
			fn.Params = append(fn.Params, param)
			if p.peek(0).IsSym(',') {
				p.advance()
			}
		case tok.IsSym(','):
			p.advance()
		default:
			p.warnAt(diag.SynUnrecognizedLine, tok.Span, "unexpected token in parameter list")
			p.advance()
		}
	}
}

// parseFunctionText parses a standalone function line (an entity-body
// `# F:...` comment) in an isolated sub-parser. All diagnostics are
// discarded: a comment that does not parse stays a comment.
func parseFunctionText(body string, vocab ast.DecoratorSet) (ast.Function, bool) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("method-comment", []byte(body + "\n"))
	file := fs.Get(id)
	drop := diag.NewBag(8)
	rep := diag.Reporter(diag.BagReporter{Bag: drop})
	sub := &Parser{
		fs:    fs,
		file:  file,
		lx:    lexer.New(file, lexer.Options{Reporter: lexer.Forward(rep)}),
		opts:  Options{MaxDiagnostics: 8},
		rep:   rep,
		bag:   drop,
		vocab: vocab,
		doc:   &ast.Document{},
	}
	if !sub.atFunctionStart() {
		return ast.Function{}, false
	}
	fn, err := sub.parseFunctionLine()
	if err != nil || fn == nil {
		return ast.Function{}, false
	}
	return *fn, true
}
