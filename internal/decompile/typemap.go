package decompile

import (
	goast "go/ast"
	gotoken "go/token"

	"shorthand/internal/ast"
)

// NoneType names the return of a Go function without results.
const NoneType = "None"

// identTypes maps Go's predeclared scalar types onto notation names.
// Unlisted identifiers keep their own spelling, so locally declared
// and imported type names survive as-is.
var identTypes = map[string]string{
	"int":     "i32",
	"int8":    "i8",
	"int16":   "i16",
	"int32":   "i32",
	"rune":    "i32",
	"int64":   "i64",
	"uint":    "u32",
	"uint8":   "u8",
	"byte":    "u8",
	"uint16":  "u16",
	"uint32":  "u32",
	"uint64":  "u64",
	"uintptr": "u64",
	"float32": "f32",
	"float64": "f64",
	"string":  "str",
	"bool":    "bool",
	"any":     ast.UnknownType,
}

// typeSpec maps a Go type expression onto a notation type. Pointers
// are an ownership detail the notation does not track, so they map to
// their element; array and slice nesting flattens into shape dims,
// outermost first.
func (b *builder) typeSpec(expr goast.Expr) ast.TypeSpec {
	switch t := expr.(type) {
	case *goast.Ident:
		if mapped, ok := identTypes[t.Name]; ok {
			return ast.TypeSpec{Base: mapped}
		}
		return ast.TypeSpec{Base: t.Name}
	case *goast.StarExpr:
		return b.typeSpec(t.X)
	case *goast.SelectorExpr:
		return ast.TypeSpec{Base: t.Sel.Name}
	case *goast.ArrayType:
		return prependDim(b.typeSpec(t.Elt), arrayDim(t.Len))
	case *goast.Ellipsis:
		return prependDim(b.typeSpec(t.Elt), "N")
	case *goast.MapType:
		return ast.TypeSpec{Base: "map"}
	default:
		return ast.Unknown()
	}
}

func prependDim(spec ast.TypeSpec, dim string) ast.TypeSpec {
	spec.Shape = append([]string{dim}, spec.Shape...)
	return spec
}

// arrayDim renders a fixed length when the literal is plain; anything
// symbolic ([]T, [k]T with a named constant, [...]T) becomes "N".
func arrayDim(n goast.Expr) string {
	if lit, ok := n.(*goast.BasicLit); ok && lit.Kind == gotoken.INT {
		return lit.Value
	}
	return "N"
}

// resultSpec maps a Go result list. A trailing error is the failure
// channel, not a produced value; it never reaches the notation.
// Multiple remaining results collapse to "tuple": the notation has no
// product types.
func (b *builder) resultSpec(ft *goast.FuncType) ast.TypeSpec {
	if ft.Results == nil {
		return ast.TypeSpec{Base: NoneType}
	}
	var specs []ast.TypeSpec
	for _, field := range ft.Results.List {
		spec := b.typeSpec(field.Type)
		n := max(len(field.Names), 1)
		for range n {
			specs = append(specs, spec)
		}
	}
	if n := len(specs); n > 0 && specs[n-1].Base == "error" {
		specs = specs[:n-1]
	}
	switch len(specs) {
	case 0:
		return ast.TypeSpec{Base: NoneType}
	case 1:
		return specs[0]
	default:
		return ast.TypeSpec{Base: "tuple"}
	}
}

// localStruct reports the locally declared struct type a field type
// refers to, unwrapping pointers, slices, arrays and variadics. Map
// and channel element types stay opaque.
func (b *builder) localStruct(expr goast.Expr) (string, bool) {
	for {
		switch t := expr.(type) {
		case *goast.StarExpr:
			expr = t.X
		case *goast.ArrayType:
			expr = t.Elt
		case *goast.Ellipsis:
			expr = t.Elt
		case *goast.Ident:
			if b.structs[t.Name] {
				return t.Name, true
			}
			return "", false
		default:
			return "", false
		}
	}
}
