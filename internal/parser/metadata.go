package parser

import (
	"strings"

	"shorthand/internal/ast"
	"shorthand/internal/diag"
	"shorthand/internal/token"
)

const missingMetadataMsg = "Missing metadata header: expected '# [M:Name]'"

// parseMetadata checks the document opening: the first significant line
// must be a comment carrying [M:Name]. A first line that opens a
// bracket construct is inspected first so that `[]` fails as an empty
// tag rather than as missing metadata.
func (p *Parser) parseMetadata() error {
	tok := p.peek(0)
	switch tok.Kind {
	case token.Comment:
		md, ok := metadataFromComment(tok.Text)
		if !ok {
			return p.fail(tok, diag.SynMissingMetadata, missingMetadataMsg)
		}
		p.advance()
		p.doc.Metadata = md
		p.finishLine()
		return nil
	case token.BracketOpen:
		if _, err := p.parseTag(); err != nil {
			return err
		}
		return p.fail(tok, diag.SynMissingMetadata, missingMetadataMsg)
	default:
		return p.fail(tok, diag.SynMissingMetadata, missingMetadataMsg)
	}
}

// metadataFromComment extracts [M:Name] and an optional [Role:Role]
// from a comment line's text.
func metadataFromComment(text string) (ast.Metadata, bool) {
	name, ok := bracketField(text, "[M:")
	if !ok || name == "" {
		return ast.Metadata{}, false
	}
	role, _ := bracketField(text, "[Role:")
	return ast.Metadata{ModuleName: name, Role: role}, true
}

func bracketField(text, marker string) (string, bool) {
	i := strings.Index(text, marker)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(marker):]
	j := strings.IndexByte(rest, ']')
	if j < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:j]), true
}
