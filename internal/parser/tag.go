package parser

import (
	"strings"

	"shorthand/internal/ast"
	"shorthand/internal/diag"
	"shorthand/internal/source"
	"shorthand/internal/token"
)

// parseTag reads one bracket tag. Fragment texts are exact source
// slices, so inner spacing survives into classification. Hard failures:
// empty tag, unterminated tag, and any Tag invariant violation.
func (p *Parser) parseTag() (ast.Tag, error) {
	open := p.advance() // '['

	var frags []string
	var cur, content source.Span
	curSet, contentSet, sawColon := false, false, false

	flush := func() {
		if curSet {
			frags = append(frags, strings.TrimSpace(p.sliceText(cur)))
		} else {
			frags = append(frags, "")
		}
		cur, curSet = source.Span{}, false
	}
	grow := func(sp source.Span) {
		if contentSet {
			content = content.Cover(sp)
		} else {
			content = sp
			contentSet = true
		}
	}

	for {
		tok := p.peek(0)
		switch tok.Kind {
		case token.BracketClose:
			p.advance()
			if !contentSet && !sawColon {
				return ast.Tag{}, p.fail(open, diag.SynEmptyTag, "Empty tag")
			}
			flush()
			return p.classifyTag(open, frags, content)
		case token.Newline, token.EOF:
			return ast.Tag{}, p.fail(open, diag.SynUnterminatedTag, "Unterminated tag")
		case token.Colon:
			p.advance()
			sawColon = true
			grow(tok.Span)
			flush()
		default:
			p.advance()
			grow(tok.Span)
			if curSet {
				cur = cur.Cover(tok.Span)
			} else {
				cur = tok.Span
				curSet = true
			}
		}
	}
}

// classifyTag applies the classification priority: complexity, then
// http route, then decorator, then operation.
func (p *Parser) classifyTag(open token.Token, frags []string, content source.Span) (ast.Tag, error) {
	full := strings.TrimSpace(p.sliceText(content))
	first := frags[0]

	var tag ast.Tag
	var err error
	if strings.HasPrefix(first, "O(") {
		// complexity position: a malformed O( form is an invariant
		// violation, and extra fragments are dropped
		tag, err = ast.NewTagIn(p.vocab, ast.TagComplexity, first, nil, "", "")
	} else if method, path, ok := httpRouteParts(full); ok {
		tag, err = ast.NewTagIn(p.vocab, ast.TagHTTPRoute, "", nil, method, path)
	} else if p.vocab.Has(first) {
		tag, err = ast.NewTagIn(p.vocab, ast.TagDecorator, first, tagQualifiers(frags), "", "")
	} else {
		tag, err = ast.NewTagIn(p.vocab, ast.TagOperation, first, tagQualifiers(frags), "", "")
	}
	if err != nil {
		return ast.Tag{}, p.fail(open, diag.SynInvalidTag, err.Error())
	}
	return tag, nil
}

// httpRouteParts matches `METHOD/path` with the method immediately
// followed by the slash. The full content is read without colon
// separation, so a path may itself contain colons.
func httpRouteParts(s string) (method, path string, ok bool) {
	for _, m := range ast.HTTPMethods() {
		if strings.HasPrefix(s, m) && len(s) > len(m) && s[len(m)] == '/' {
			return m, s[len(m):], true
		}
	}
	return "", "", false
}

func tagQualifiers(frags []string) []string {
	if len(frags) <= 1 {
		return nil
	}
	return frags[1:]
}
