package format

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"shorthand/internal/ast"
)

func (p *printer) printEntity(ent *ast.Entity) {
	p.w.WriteString("[C:" + ent.Name + "]")
	p.w.Newline()
	p.w.IndentPush()

	for _, dep := range ent.Dependencies {
		p.w.WriteString(p.g.diamond + " [Ref:" + dep.Name + "]")
		p.w.Newline()
	}

	p.printState(ent.State)

	if len(ent.Methods) > 0 {
		p.w.BlankLine()
		p.w.WriteString("# Methods:")
		p.w.Newline()
		for i := range ent.Methods {
			p.w.WriteString("# " + p.functionText(&ent.Methods[i]))
			p.w.Newline()
		}
	}

	p.w.IndentPop()
}

// printState emits one contiguous run of state lines, ordered per
// SortStateBy and with the ∈ column aligned when AlignTypes is on.
// Alignment pads to the widest name of this run only.
func (p *printer) printState(state []ast.StateVariable) {
	if len(state) == 0 {
		return
	}
	ordered := state
	if p.cfg.SortStateBy == SortByName {
		ordered = slices.Clone(state)
		slices.SortStableFunc(ordered, func(a, b ast.StateVariable) int {
			return strings.Compare(a.Name, b.Name)
		})
	}

	pad := 0
	if p.cfg.AlignTypes {
		for _, sv := range ordered {
			pad = max(pad, runewidth.StringWidth(sv.Name))
		}
	}

	for _, sv := range ordered {
		name := sv.Name
		if gap := pad - runewidth.StringWidth(name); gap > 0 {
			name += strings.Repeat(" ", gap)
		}
		p.w.WriteString(name + " " + p.g.memberof + " " + sv.Type.String())
		p.w.Newline()
	}
}
