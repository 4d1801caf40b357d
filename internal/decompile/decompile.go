// Package decompile turns Go source into shorthand notation.
//
// Structs become entities with their fields as typed state, exported
// methods surface as `# F:` comment lines under their receiver, and
// top-level functions become function lines. The result is an
// ast.Document; render it with format.Document for canonical text.
package decompile

import (
	"context"
	"errors"
	"fmt"
	goast "go/ast"
	goparser "go/parser"
	gotoken "go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"shorthand/internal/ast"
)

// DefaultRole is the metadata role stamped on generated documents.
const DefaultRole = "Core"

// Options control document assembly.
type Options struct {
	// Role overrides the `[Role:...]` metadata value. Empty means
	// DefaultRole.
	Role string
}

// Source decompiles one Go source buffer. The document's module name
// is the package clause.
func Source(name string, src []byte, opts Options) (*ast.Document, error) {
	fset := gotoken.NewFileSet()
	file, err := goparser.ParseFile(fset, name, src, goparser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("decompile: %w", err)
	}
	return build([]*goast.File{file}, opts), nil
}

// File decompiles one Go file from disk.
func File(path string, opts Options) (*ast.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Source(path, src, opts)
}

// Paths decompiles a set of Go files or directories into one document.
// Directory arguments are walked for *.go sources the way the go tool
// sees them: no tests, no testdata or vendor trees, no hidden or
// underscore-prefixed entries. Explicit file arguments are always kept.
func Paths(ctx context.Context, paths []string, opts Options) (*ast.Document, error) {
	files, err := collectGoFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("decompile: no Go source files found")
	}

	fset := gotoken.NewFileSet()
	parsed := make([]*goast.File, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := goparser.ParseFile(fset, path, nil, goparser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("decompile: %w", err)
		}
		parsed = append(parsed, f)
	}
	return build(parsed, opts), nil
}

func collectGoFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && skipDir(d.Name()) {
					return fs.SkipDir
				}
				return nil
			}
			if wantGoFile(d.Name()) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// skipDir matches directories the go tool ignores.
func skipDir(name string) bool {
	return name == "testdata" || name == "vendor" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

func wantGoFile(name string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		!strings.HasPrefix(name, ".") && !strings.HasPrefix(name, "_")
}
