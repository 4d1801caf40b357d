package parser

import (
	"strings"

	"shorthand/internal/ast"
)

// typeSpecFromText micro-parses an absorbed type token: base, optional
// [dims], optional @placement. The lexer guarantees bracket balance
// inside absorbed idents, so this never sees a dangling '['.
func typeSpecFromText(text string) ast.TypeSpec {
	base := text
	var shape []string
	placement := ""

	if i := strings.IndexByte(base, '['); i >= 0 {
		j := strings.IndexByte(base[i:], ']')
		if j >= 0 {
			inner := base[i+1 : i+j]
			rest := base[i+j+1:]
			base = base[:i]
			for _, dim := range strings.Split(inner, ",") {
				dim = strings.TrimSpace(dim)
				if dim != "" {
					shape = append(shape, dim)
				}
			}
			placement = strings.TrimPrefix(rest, "@")
			if placement == rest && rest != "" {
				// junk between ] and end; keep the base, drop the rest
				placement = ""
			}
		}
	} else if i := strings.IndexByte(base, '@'); i >= 0 {
		placement = base[i+1:]
		base = base[:i]
	}

	if base == "" || base == "?" {
		return ast.Unknown()
	}
	return ast.TypeSpec{Base: base, Shape: shape, Placement: placement}
}
