package decompile

import (
	goast "go/ast"

	"shorthand/internal/ast"
	"shorthand/internal/token"
)

// builder accumulates one document across a set of parsed Go files.
type builder struct {
	doc     *ast.Document
	structs map[string]bool // locally declared struct type names
	byName  map[string]*ast.Entity
}

// build assembles a document from parsed files. The first package
// clause names the module.
func build(files []*goast.File, opts Options) *ast.Document {
	b := &builder{
		doc:     &ast.Document{},
		structs: make(map[string]bool),
		byName:  make(map[string]*ast.Entity),
	}
	b.doc.Metadata.ModuleName = files[0].Name.Name
	b.doc.Metadata.Role = opts.Role
	if b.doc.Metadata.Role == "" {
		b.doc.Metadata.Role = DefaultRole
	}

	// Struct names first: dependencies and method receivers must
	// resolve across files regardless of declaration order.
	for _, f := range files {
		forEachStruct(f, func(name string, _ *goast.StructType) {
			b.structs[name] = true
		})
	}
	for _, f := range files {
		forEachStruct(f, b.addEntity)
	}
	for _, f := range files {
		for _, decl := range f.Decls {
			if fd, ok := decl.(*goast.FuncDecl); ok {
				b.addFunc(fd)
			}
		}
	}
	return b.doc
}

func forEachStruct(f *goast.File, fn func(name string, st *goast.StructType)) {
	for _, decl := range f.Decls {
		gd, ok := decl.(*goast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*goast.TypeSpec)
			if !ok {
				continue
			}
			if st, ok := ts.Type.(*goast.StructType); ok {
				fn(ts.Name.Name, st)
			}
		}
	}
}

func (b *builder) addEntity(name string, st *goast.StructType) {
	ent := &ast.Entity{Name: name}
	seen := make(map[string]bool)
	for _, field := range st.Fields.List {
		// Self-references (linked nodes) are not dependencies.
		if dep, ok := b.localStruct(field.Type); ok && dep != name && !seen[dep] {
			seen[dep] = true
			ent.Dependencies = append(ent.Dependencies, ast.Reference{Name: dep})
		}
		if len(field.Names) == 0 {
			// Embedded field: no state name to bind, the dependency
			// above is all the notation can say about it.
			continue
		}
		spec := b.typeSpec(field.Type)
		for _, id := range field.Names {
			ent.State = append(ent.State, ast.StateVariable{Name: safeName(id.Name), Type: spec})
		}
	}
	b.doc.Entities = append(b.doc.Entities, ent)
	b.byName[ent.Name] = ent
}

// addFunc routes a declaration: top-level functions go into the
// document, exported methods attach to their receiver's entity, and
// unexported methods stay implementation detail.
func (b *builder) addFunc(fd *goast.FuncDecl) {
	fn := b.function(fd)
	if fd.Recv == nil {
		b.doc.Functions = append(b.doc.Functions, fn)
		return
	}
	if !fd.Name.IsExported() {
		return
	}
	recv, ok := receiverBase(fd.Recv)
	if !ok {
		return
	}
	if ent, ok := b.byName[recv]; ok {
		ent.Methods = append(ent.Methods, fn)
	}
}

func (b *builder) function(fd *goast.FuncDecl) ast.Function {
	fn := ast.Function{Name: fd.Name.Name, Return: b.resultSpec(fd.Type)}
	if fd.Type.Params == nil {
		return fn
	}
	for _, field := range fd.Type.Params.List {
		spec := b.typeSpec(field.Type)
		if len(field.Names) == 0 {
			fn.Params = append(fn.Params, ast.Parameter{Name: "_", Type: spec})
			continue
		}
		for _, id := range field.Names {
			fn.Params = append(fn.Params, ast.Parameter{Name: safeName(id.Name), Type: spec})
		}
	}
	return fn
}

// receiverBase resolves the receiver's type name, unwrapping pointers
// and generic instantiations.
func receiverBase(recv *goast.FieldList) (string, bool) {
	if recv == nil || len(recv.List) == 0 {
		return "", false
	}
	expr := recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *goast.StarExpr:
			expr = t.X
		case *goast.IndexExpr:
			expr = t.X
		case *goast.IndexListExpr:
			expr = t.X
		case *goast.Ident:
			return t.Name, true
		default:
			return "", false
		}
	}
}

// safeName keeps Go identifiers out of the notation's reserved words:
// a parameter named "in" would lex as the membership symbol.
func safeName(name string) string {
	if _, ok := token.LookupSymbolWord(name); ok {
		return name + "_"
	}
	return name
}
