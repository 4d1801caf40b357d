package driver

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"shorthand/internal/ast"
	"shorthand/internal/diag"
	"shorthand/internal/driver/dcache"
	"shorthand/internal/parser"
	"shorthand/internal/source"
)

// Options carries the knobs shared by every batch operation.
type Options struct {
	// MaxDiagnostics caps the diagnostics kept per file; 0 means the
	// parser default.
	MaxDiagnostics int
	// ExtraDecorators extends the decorator vocabulary
	// (shorthand.toml [tags] decorators).
	ExtraDecorators []string
	// Jobs limits parallel workers; 0 means GOMAXPROCS.
	Jobs int
	// Progress receives per-file events; nil discards them.
	Progress ProgressSink
	// Cache, when set, serves parsed documents by content hash.
	Cache *dcache.Cache
}

func (o Options) withDefaults() Options {
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = parser.DefaultMaxDiagnostics
	}
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if o.Progress == nil {
		o.Progress = NopSink{}
	}
	return o
}

// ParseResult captures the outcome of parsing a single file.
type ParseResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Doc     *ast.Document
	Bag     *diag.Bag
	// Err is the load error or hard parse failure; Doc is nil then.
	Err     error
	Elapsed time.Duration
	// Cached reports that Doc came from the disk cache.
	Cached bool
}

// Parse loads and parses one file. Each file gets its own FileSet, so
// diagnostic spans from a cached document stay valid against the
// freshly loaded content.
func Parse(path string, opts Options) (*ParseResult, error) {
	opts = opts.withDefaults()
	res := parseOne(path, opts)
	if res.Err != nil {
		return nil, res.Err
	}
	return res, nil
}

// ParseSource parses in-memory content under the given display name
// (stdin, editor buffers, tool requests). The disk cache is never
// consulted; virtual input has no path worth keying on.
func ParseSource(name, src string, opts Options) *ParseResult {
	opts = opts.withDefaults()
	start := time.Now()
	res := &ParseResult{Path: name}

	fileSet := source.NewFileSet()
	fileID := fileSet.AddVirtual(name, []byte(src))
	res.FileSet = fileSet
	res.File = fileSet.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)
	res.Bag = bag

	doc, err := parser.Parse(fileSet, res.File, parser.Options{
		Reporter:        diag.BagReporter{Bag: bag},
		MaxDiagnostics:  opts.MaxDiagnostics,
		ExtraDecorators: opts.ExtraDecorators,
	})
	if err != nil {
		res.Err = err
		res.Elapsed = time.Since(start)
		return res
	}
	res.Doc = doc
	res.Elapsed = time.Since(start)
	return res
}

// ParsePaths expands files and directories and parses every source
// file in parallel. Per-file failures land in ParseResult.Err; the
// returned error reports only collection problems or cancellation.
func ParsePaths(ctx context.Context, paths []string, opts Options) ([]ParseResult, error) {
	opts = opts.withDefaults()

	files, err := CollectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		opts.Progress.OnEvent(Event{File: path, Stage: StageParse, Status: StatusQueued})
	}

	results := make([]ParseResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.Jobs, max(len(files), 1)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			opts.Progress.OnEvent(Event{File: path, Stage: StageParse, Status: StatusWorking})
			res := parseOne(path, opts)
			results[i] = *res

			status := StatusDone
			if res.Err != nil {
				status = StatusError
			}
			opts.Progress.OnEvent(Event{
				File:    path,
				Stage:   StageParse,
				Status:  status,
				Err:     res.Err,
				Elapsed: res.Elapsed,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// parseOne runs the load → cache lookup → parse → cache store chain
// for a single file. Cache problems never fail the parse; they are
// downgraded to info diagnostics.
func parseOne(path string, opts Options) *ParseResult {
	start := time.Now()
	res := &ParseResult{Path: path}

	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		res.Err = err
		res.Elapsed = time.Since(start)
		return res
	}
	res.FileSet = fileSet
	res.File = fileSet.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)
	res.Bag = bag

	if opts.Cache != nil {
		doc, ok, cacheErr := opts.Cache.Get(res.File.Hash)
		if cacheErr != nil {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevInfo,
				Code:     diag.IOCache,
				Message:  "document cache read failed: " + cacheErr.Error(),
			})
		}
		if ok {
			res.Doc = doc
			res.Cached = true
			for _, d := range doc.Diagnostics {
				bag.Add(d)
			}
			res.Elapsed = time.Since(start)
			return res
		}
	}

	doc, err := parser.Parse(fileSet, res.File, parser.Options{
		Reporter:        diag.BagReporter{Bag: bag},
		MaxDiagnostics:  opts.MaxDiagnostics,
		ExtraDecorators: opts.ExtraDecorators,
	})
	if err != nil {
		res.Err = err
		res.Elapsed = time.Since(start)
		return res
	}
	res.Doc = doc

	if opts.Cache != nil {
		if cacheErr := opts.Cache.Put(res.File.Hash, doc); cacheErr != nil {
			bag.Add(diag.Diagnostic{
				Severity: diag.SevInfo,
				Code:     diag.IOCache,
				Message:  "document cache write failed: " + cacheErr.Error(),
			})
		}
	}

	res.Elapsed = time.Since(start)
	return res
}
