package format

import (
	"strings"

	"shorthand/internal/ast"
)

// functionText renders one canonical function line, shared by the
// top-level function section and entity method comments.
func (p *printer) functionText(fn *ast.Function) string {
	var b strings.Builder
	b.WriteString("F:")
	b.WriteString(fn.Name)
	b.WriteByte('(')
	for i, param := range fn.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(param.Name)
		b.WriteString(": ")
		b.WriteString(param.Type.String())
	}
	b.WriteByte(')')
	b.WriteString(" " + p.g.arrow + " ")
	b.WriteString(fn.Return.String())
	for _, tag := range fn.Tags {
		b.WriteByte(' ')
		b.WriteString(tag.String())
	}
	return b.String()
}
