package explore

import (
	"fmt"
	goast "go/ast"
	"strings"
)

// Implementation returns the source of `Type.Method` or a top-level
// function, headed by a location comment. With context on, methods
// called on the same receiver are appended the way an agent would
// want them: resolved, not just named.
func (e *Explorer) Implementation(target string, includeContext bool) (string, error) {
	if err := e.ensureLoaded(); err != nil {
		return "", err
	}
	key := "impl:" + target
	if includeContext {
		key += ":ctx"
	}
	if cached, ok := e.results.Get(key); ok {
		return cached, nil
	}

	recv, name := splitTarget(target)
	fd, path, ok := e.findFunc(recv, name)
	if !ok {
		return "", fmt.Errorf("explore: %q: %w", target, ErrNotFound)
	}

	var b strings.Builder
	b.WriteString("// " + e.location(path, fd) + "\n")
	b.WriteString(e.snippet(path, fd.Pos(), fd.End()))

	if includeContext && recv != "" {
		var deps []string
		for _, called := range siblingCalls(fd) {
			depFd, depPath, ok := e.findFunc(recv, called)
			if !ok {
				continue
			}
			deps = append(deps, "// "+e.location(depPath, depFd)+"\n"+e.snippet(depPath, depFd.Pos(), depFd.End()))
		}
		if len(deps) > 0 {
			b.WriteString("\n\n// Called methods:\n\n")
			b.WriteString(strings.Join(deps, "\n\n"))
		}
	}

	result := b.String()
	e.results.Add(key, result)
	return result, nil
}

// EntityDetails renders a struct declaration with its doc comment and
// method set.
func (e *Explorer) EntityDetails(name string) (string, error) {
	if err := e.ensureLoaded(); err != nil {
		return "", err
	}
	key := "entity:" + name
	if cached, ok := e.results.Get(key); ok {
		return cached, nil
	}

	gd, ts, path, ok := e.findStruct(name)
	if !ok {
		return "", fmt.Errorf("explore: %q: %w", name, ErrNotFound)
	}

	var b strings.Builder
	b.WriteString("// " + e.location(path, ts) + "\n")
	if len(gd.Specs) == 1 {
		start := gd.Pos()
		if gd.Doc != nil {
			start = gd.Doc.Pos()
		}
		b.WriteString(e.snippet(path, start, gd.End()))
	} else {
		// Grouped declaration: cut just this spec.
		b.WriteString("type " + e.snippet(path, ts.Pos(), ts.End()))
	}

	if sigs := e.methodSigs(name); len(sigs) > 0 {
		b.WriteString("\n\n// Methods:\n// " + strings.Join(sigs, "\n// "))
	}

	result := b.String()
	e.results.Add(key, result)
	return result, nil
}

// Usages lists "path:line: text" references to a symbol across the
// tree, one entry per line. Results are not cached: the search walks
// already-parsed files and the output can be large.
func (e *Explorer) Usages(symbol string) ([]string, error) {
	if err := e.ensureLoaded(); err != nil {
		return nil, err
	}
	var out []string
	for _, path := range e.files {
		lines := strings.Split(string(e.srcs[path]), "\n")
		lastLine := 0
		goast.Inspect(e.asts[path], func(n goast.Node) bool {
			id, ok := n.(*goast.Ident)
			if !ok || id.Name != symbol {
				return true
			}
			line := e.fset.Position(id.Pos()).Line
			if line == lastLine {
				return true
			}
			lastLine = line
			text := ""
			if line-1 < len(lines) {
				text = strings.TrimSpace(lines[line-1])
			}
			out = append(out, fmt.Sprintf("%s:%d: %s", e.rel(path), line, text))
			return true
		})
	}
	return out, nil
}

// splitTarget separates "Type.Method" into its parts; a bare name is
// a top-level function.
func splitTarget(target string) (recv, name string) {
	if i := strings.LastIndex(target, "."); i >= 0 {
		return target[:i], target[i+1:]
	}
	return "", target
}

// findFunc locates a function declaration by receiver type name and
// function name; recv is empty for plain functions.
func (e *Explorer) findFunc(recv, name string) (*goast.FuncDecl, string, bool) {
	for _, path := range e.files {
		for _, decl := range e.asts[path].Decls {
			fd, ok := decl.(*goast.FuncDecl)
			if !ok || fd.Name.Name != name {
				continue
			}
			if recvBaseName(fd) != recv {
				continue
			}
			return fd, path, true
		}
	}
	return nil, "", false
}

// findStruct locates a struct type declaration.
func (e *Explorer) findStruct(name string) (*goast.GenDecl, *goast.TypeSpec, string, bool) {
	for _, path := range e.files {
		for _, decl := range e.asts[path].Decls {
			gd, ok := decl.(*goast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*goast.TypeSpec)
				if !ok || ts.Name.Name != name {
					continue
				}
				if _, ok := ts.Type.(*goast.StructType); ok {
					return gd, ts, path, true
				}
			}
		}
	}
	return nil, nil, "", false
}

// methodSigs collects the method set of a type as one-line signatures
// in file-then-source order.
func (e *Explorer) methodSigs(typeName string) []string {
	var sigs []string
	for _, path := range e.files {
		for _, decl := range e.asts[path].Decls {
			fd, ok := decl.(*goast.FuncDecl)
			if !ok || recvBaseName(fd) != typeName {
				continue
			}
			sig := e.snippet(path, fd.Pos(), fd.Type.End())
			sigs = append(sigs, strings.Join(strings.Fields(sig), " "))
		}
	}
	return sigs
}

// recvBaseName resolves a declaration's receiver type name, "" for
// plain functions. Pointers and generic instantiations unwrap.
func recvBaseName(fd *goast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return ""
	}
	expr := fd.Recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *goast.StarExpr:
			expr = t.X
		case *goast.IndexExpr:
			expr = t.X
		case *goast.IndexListExpr:
			expr = t.X
		case *goast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

// siblingCalls lists methods invoked on the declaration's own
// receiver, deduplicated in encounter order.
func siblingCalls(fd *goast.FuncDecl) []string {
	if fd.Body == nil || fd.Recv == nil || len(fd.Recv.List) == 0 || len(fd.Recv.List[0].Names) == 0 {
		return nil
	}
	recvName := fd.Recv.List[0].Names[0].Name
	seen := make(map[string]bool)
	var calls []string
	goast.Inspect(fd.Body, func(n goast.Node) bool {
		call, ok := n.(*goast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*goast.SelectorExpr)
		if !ok {
			return true
		}
		id, ok := sel.X.(*goast.Ident)
		if !ok || id.Name != recvName {
			return true
		}
		if !seen[sel.Sel.Name] {
			seen[sel.Sel.Name] = true
			calls = append(calls, sel.Sel.Name)
		}
		return true
	})
	return calls
}
