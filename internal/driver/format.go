package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"shorthand/internal/format"
)

// FormatOptions configures batch formatting.
type FormatOptions struct {
	Options
	// Config controls the canonical layout.
	Config format.Config
	// Write rewrites changed files in place.
	Write bool
	// Check reports whether files would change without touching them.
	Check bool
	// Diff fills FormatResult.Diff for changed files.
	Diff bool
	// Verify reparses the output and checks structural equality.
	Verify bool
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path    string
	Changed bool
	// Formatted is the canonical content, available in every mode.
	Formatted []byte
	// Diff is the line diff against the original, when requested.
	Diff    string
	Result  *ParseResult
	Err     error
	Elapsed time.Duration
}

// FormatPaths formats the given files or directories. When neither
// Write nor Check is set the caller gets the formatted bytes and
// decides what to do with them (stdout mode).
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	opts.Options = opts.Options.withDefaults()

	files, err := CollectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}
	for _, path := range files {
		opts.Progress.OnEvent(Event{File: path, Stage: StageFormat, Status: StatusQueued})
	}

	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.Jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			opts.Progress.OnEvent(Event{File: path, Stage: StageFormat, Status: StatusWorking})
			res := formatOne(path, opts)
			results[i] = *res

			status := StatusDone
			if res.Err != nil {
				status = StatusError
			}
			opts.Progress.OnEvent(Event{
				File:    path,
				Stage:   StageFormat,
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

func formatOne(path string, opts FormatOptions) *FormatResult {
	start := time.Now()
	res := &FormatResult{Path: path}

	parsed := parseOne(path, opts.Options)
	res.Result = parsed
	if parsed.Err != nil {
		res.Err = parsed.Err
		res.Elapsed = time.Since(start)
		return res
	}
	if parsed.Bag.HasErrors() {
		res.Err = errors.New("format: parse errors present")
		res.Elapsed = time.Since(start)
		return res
	}

	formatted, err := format.Document(parsed.Doc, opts.Config)
	if err != nil {
		res.Err = err
		res.Elapsed = time.Since(start)
		return res
	}
	res.Formatted = []byte(formatted)
	res.Changed = !bytes.Equal(parsed.File.Content, res.Formatted)

	if opts.Verify {
		if ok, msg := format.CheckRoundTrip(parsed.Doc, formatted); !ok {
			res.Err = errors.New(msg)
			res.Elapsed = time.Since(start)
			return res
		}
	}
	if opts.Diff && res.Changed {
		res.Diff = DiffLines(path, parsed.File.Content, res.Formatted)
	}

	if opts.Write && !opts.Check && res.Changed {
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode().Perm()
		}
		if err := writeFileAtomic(path, res.Formatted, mode); err != nil {
			res.Err = err
		}
	}

	res.Elapsed = time.Since(start)
	return res
}

// writeFileAtomic replaces path via a temp file in the same directory
// so readers never observe a half-written source file.
func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".fmt-*")
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), path)
}
