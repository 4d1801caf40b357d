// Package explore answers point queries about a Go codebase: the
// source of one function or method, the shape of one struct, the
// places a symbol appears. It backs the `show` command and the MCP
// tools, keeping whole-tree reading out of the caller's context.
package explore

import (
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
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrNotFound reports a symbol the indexed tree does not declare.
var ErrNotFound = errors.New("symbol not found")

const resultCacheSize = 256

// Explorer indexes one Go file or directory tree. The index is built
// on first query; afterwards the Explorer is safe for concurrent use.
type Explorer struct {
	root    string
	results *lru.Cache[string, string]

	loadOnce sync.Once
	loadErr  error
	relRoot  string
	fset     *gotoken.FileSet
	files    []string
	srcs     map[string][]byte
	asts     map[string]*goast.File
}

// New creates an explorer over a Go source file or directory.
func New(root string) (*Explorer, error) {
	results, err := lru.New[string, string](resultCacheSize)
	if err != nil {
		return nil, err
	}
	return &Explorer{root: root, results: results}, nil
}

func (e *Explorer) ensureLoaded() error {
	e.loadOnce.Do(func() { e.loadErr = e.load() })
	return e.loadErr
}

func (e *Explorer) load() error {
	info, err := os.Stat(e.root)
	if err != nil {
		return err
	}
	e.fset = gotoken.NewFileSet()
	e.srcs = make(map[string][]byte)
	e.asts = make(map[string]*goast.File)

	e.relRoot = e.root
	if !info.IsDir() {
		e.relRoot = filepath.Dir(e.root)
		return e.indexFile(e.root)
	}

	err = filepath.WalkDir(e.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != e.root && skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if wantFile(d.Name()) {
			return e.indexFile(path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	sort.Strings(e.files)
	return nil
}

// indexFile reads and parses one source file. Files that do not parse
// fall out of the index: the explorer answers questions about code,
// not about syntax errors.
func (e *Explorer) indexFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := goparser.ParseFile(e.fset, path, src, goparser.ParseComments|goparser.SkipObjectResolution)
	if err != nil {
		return nil
	}
	e.files = append(e.files, path)
	e.srcs[path] = src
	e.asts[path] = f
	return nil
}

// skipDir matches directories the go tool ignores.
func skipDir(name string) bool {
	return name == "testdata" || name == "vendor" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// wantFile keeps *.go including tests; usage answers from test files
// are answers too.
func wantFile(name string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasPrefix(name, ".") && !strings.HasPrefix(name, "_")
}

func (e *Explorer) rel(path string) string {
	if r, err := filepath.Rel(e.relRoot, path); err == nil {
		return r
	}
	return path
}

// location renders "path:start-end" with 1-based line numbers.
func (e *Explorer) location(path string, n goast.Node) string {
	start := e.fset.Position(n.Pos())
	end := e.fset.Position(n.End())
	return fmt.Sprintf("%s:%d-%d", e.rel(path), start.Line, end.Line)
}

// snippet cuts the exact source text between two positions.
func (e *Explorer) snippet(path string, from, to gotoken.Pos) string {
	src := e.srcs[path]
	return string(src[e.fset.Position(from).Offset:e.fset.Position(to).Offset])
}
