package parser

import (
	"strings"

	"shorthand/internal/ast"
	"shorthand/internal/diag"
	"shorthand/internal/source"
	"shorthand/internal/token"
)

// parseEntity reads a `[C:Name]` header and its indented block.
func (p *Parser) parseEntity() error {
	headerWidth := p.width
	open := p.advance() // '['
	p.advance()         // C
	p.advance()         // ':'
	inner, closeTok, err := p.collectBracket(open)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(p.sliceText(inner))
	if name == "" {
		p.warnAt(diag.SynExpectIdentifier, open.Span.Cover(closeTok.Span), "entity name expected in [C:Name]")
		p.skipToEOL()
		return nil
	}
	ent := &ast.Entity{Name: name, Span: open.Span.Cover(closeTok.Span)}
	p.finishLine()
	if err := p.parseEntityBody(ent, headerWidth); err != nil {
		return err
	}
	p.doc.Entities = append(p.doc.Entities, ent)
	return nil
}

// parseEntityBody collects dependency, state, and comment lines until
// the block dedents to the header's width. Content at the header width
// before any Indent means the block is empty.
func (p *Parser) parseEntityBody(ent *ast.Entity, headerWidth uint32) error {
	entered := false
	for {
		tok := p.peek(0)
		switch tok.Kind {
		case token.EOF:
			return nil
		case token.Newline:
			p.advance()
		case token.Comment:
			p.parseEntityComment(ent, tok)
		case token.Indent:
			p.width = tok.Width
			p.advance()
			entered = true
		case token.Dedent:
			p.width = tok.Width
			p.advance()
			if p.width <= headerWidth {
				return nil
			}
		case token.Diamond:
			if !entered {
				return nil
			}
			if err := p.parseDependency(ent); err != nil {
				return err
			}
		case token.Ident:
			if !entered {
				return nil
			}
			if p.peek(1).Kind == token.Memberof {
				p.parseStateVariable(ent)
			} else {
				p.warnAt(diag.SynUnrecognizedLine, tok.Span, "unrecognized line in entity block")
				p.skipToEOL()
			}
		default:
			if !entered {
				return nil
			}
			p.warnAt(diag.SynUnrecognizedLine, tok.Span, "unrecognized line in entity block")
			p.skipToEOL()
		}
	}
}

// parseDependency reads `◊ [Ref:Name]`.
func (p *Parser) parseDependency(ent *ast.Entity) error {
	diamond := p.advance()
	if !p.at(token.BracketOpen) {
		p.warnAt(diag.SynUnrecognizedLine, diamond.Span, "expected [Ref:Name] after ◊")
		p.skipToEOL()
		return nil
	}
	open := p.advance()
	inner, closeTok, err := p.collectBracket(open)
	if err != nil {
		return err
	}
	text := strings.TrimSpace(p.sliceText(inner))
	name, ok := strings.CutPrefix(text, "Ref:")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		p.warnAt(diag.SynUnrecognizedLine, open.Span.Cover(closeTok.Span), "dependency must be [Ref:Name]")
		p.skipToEOL()
		return nil
	}
	ent.Dependencies = append(ent.Dependencies, ast.Reference{
		Name: name,
		Span: diamond.Span.Cover(closeTok.Span),
	})
	p.finishLine()
	return nil
}

// parseStateVariable reads `name ∈ type`. A nil entity drops the result
// (bare state lines outside any block parse but land nowhere).
func (p *Parser) parseStateVariable(ent *ast.Entity) {
	nameTok := p.advance()
	p.advance() // ∈
	sv := ast.StateVariable{Name: nameTok.Text, Type: ast.Unknown(), Span: nameTok.Span}
	tok := p.peek(0)
	switch {
	case tok.Kind == token.Ident:
		p.advance()
		sv.Type = typeSpecFromText(tok.Text)
		sv.Span = nameTok.Span.Cover(tok.Span)
	case tok.Kind == token.Newline || tok.Kind == token.EOF || tok.Kind == token.Comment:
		p.warnAt(diag.SynUnknownType, p.diagnosticSpan(), "missing type after ∈")
	default:
		p.advance()
		p.warnAt(diag.SynUnknownType, tok.Span, "cannot resolve type \""+tok.Text+"\"")
		sv.Span = nameTok.Span.Cover(tok.Span)
	}
	if ent != nil {
		ent.State = append(ent.State, sv)
	}
	p.finishLine()
}

// parseEntityComment consumes a comment inside an entity block and
// recovers a method from `# F:...` lines. Anything that does not parse
// as a function stays a plain comment; comments never fail a parse.
func (p *Parser) parseEntityComment(ent *ast.Entity, tok token.Token) {
	p.advance()
	body := commentBody(tok.Text)
	if !strings.HasPrefix(body, "F:") {
		return
	}
	if fn, ok := p.methodFromComment(body, tok); ok {
		ent.Methods = append(ent.Methods, fn)
	}
}

func commentBody(text string) string {
	s := text
	switch {
	case strings.HasPrefix(s, "//"):
		s = s[2:]
	case strings.HasPrefix(s, "#"):
		s = s[1:]
	}
	return strings.TrimSpace(s)
}

// methodFromComment re-parses the comment body as a function line in an
// isolated sub-parser whose diagnostics are discarded.
func (p *Parser) methodFromComment(body string, tok token.Token) (ast.Function, bool) {
	fn, ok := parseFunctionText(body, p.vocab)
	if !ok {
		return ast.Function{}, false
	}
	fn.Span = tok.Span
	return fn, true
}

// collectBracket consumes tokens up to the matching close bracket and
// returns the span of the inner content. A newline or EOF first is the
// hard unterminated failure.
func (p *Parser) collectBracket(open token.Token) (source.Span, token.Token, error) {
	var inner source.Span
	started := false
	for {
		tok := p.peek(0)
		switch tok.Kind {
		case token.BracketClose:
			closeTok := p.advance()
			return inner, closeTok, nil
		case token.Newline, token.EOF:
			return inner, token.Token{}, p.fail(open, diag.SynUnterminatedTag, "Unterminated tag")
		default:
			p.advance()
			if started {
				inner = inner.Cover(tok.Span)
			} else {
				inner = tok.Span
				started = true
			}
		}
	}
}
