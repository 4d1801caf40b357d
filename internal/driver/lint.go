package driver

import (
	"context"
	"fmt"
	"slices"
	"time"

	"fortio.org/safecast"
	"github.com/mattn/go-runewidth"
	"golang.org/x/sync/errgroup"

	"shorthand/internal/diag"
	"shorthand/internal/format"
	"shorthand/internal/source"
)

// LintOptions configures batch linting.
type LintOptions struct {
	Options
	// Config supplies the line-length limit and the canonical layout
	// the format check compares against.
	Config format.Config
	// Strict escalates warnings to errors.
	Strict bool
}

// LintResult captures all findings for a single file.
type LintResult struct {
	Path string
	// Items holds parse diagnostics plus lint findings, already
	// escalated when Strict is set.
	Items   []diag.Diagnostic
	Result  *ParseResult
	Err     error
	Elapsed time.Duration
}

// Summary aggregates lint results for reporting and exit codes.
type Summary struct {
	Files    int
	Failed   int // load errors and hard parse failures
	Errors   int
	Warnings int
	Infos    int
}

// Clean reports whether nothing blocking was found.
func (s Summary) Clean() bool {
	return s.Failed == 0 && s.Errors == 0
}

// Summarize counts results by outcome and severity.
func Summarize(results []LintResult) Summary {
	var s Summary
	for i := range results {
		s.Files++
		if results[i].Err != nil {
			s.Failed++
			continue
		}
		for _, d := range results[i].Items {
			switch d.Severity {
			case diag.SevError:
				s.Errors++
			case diag.SevWarning:
				s.Warnings++
			default:
				s.Infos++
			}
		}
	}
	return s
}

// LintPaths parses every source file under the given paths and
// augments the parse diagnostics with lint findings: overly long
// lines and non-canonical formatting.
func LintPaths(ctx context.Context, paths []string, opts LintOptions) ([]LintResult, error) {
	opts.Options = opts.Options.withDefaults()

	files, err := CollectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		opts.Progress.OnEvent(Event{File: path, Stage: StageLint, Status: StatusQueued})
	}

	results := make([]LintResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.Jobs, max(len(files), 1)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			opts.Progress.OnEvent(Event{File: path, Stage: StageLint, Status: StatusWorking})
			res := lintOne(path, opts)
			results[i] = *res

			status := StatusDone
			if res.Err != nil {
				status = StatusError
			}
			opts.Progress.OnEvent(Event{
				File:    path,
				Stage:   StageLint,
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

// LintSource lints in-memory content under the given display name,
// running the same checks as LintPaths.
func LintSource(name, src string, opts LintOptions) *LintResult {
	opts.Options = opts.Options.withDefaults()
	start := time.Now()
	res := lintParsed(ParseSource(name, src, opts.Options), opts)
	res.Elapsed = time.Since(start)
	return res
}

func lintOne(path string, opts LintOptions) *LintResult {
	start := time.Now()
	res := lintParsed(parseOne(path, opts.Options), opts)
	res.Elapsed = time.Since(start)
	return res
}

// lintParsed augments an already parsed file with lint findings. The
// caller owns Elapsed.
func lintParsed(parsed *ParseResult, opts LintOptions) *LintResult {
	res := &LintResult{Path: parsed.Path, Result: parsed}
	if parsed.Err != nil {
		res.Err = parsed.Err
		return res
	}

	lintLongLines(parsed.File, opts.Config.MaxLineLength, parsed.Bag)

	// Errors make the printed form unreliable, so the canonical-form
	// check only runs on clean parses.
	if !parsed.Bag.HasErrors() {
		formatted, err := format.Document(parsed.Doc, opts.Config)
		if err != nil {
			res.Err = err
			return res
		}
		if formatted != string(parsed.File.Content) {
			parsed.Bag.Add(diag.Diagnostic{
				Severity: diag.SevWarning,
				Code:     diag.FmtChanged,
				Message:  "file is not canonically formatted",
			})
		}
	}

	res.Items = slices.Clone(parsed.Bag.Items())
	if opts.Strict {
		for i := range res.Items {
			res.Items[i].Severity = res.Items[i].Severity.Escalate(diag.SevError)
		}
	}
	return res
}

// lintLongLines reports lines whose display width exceeds the limit.
// Width counts terminal columns, matching the formatter's alignment
// rules, so a line of N wide runes measures 2N.
func lintLongLines(f *source.File, limit int, bag *diag.Bag) {
	if limit <= 0 {
		limit = format.DefaultConfig().MaxLineLength
	}

	lines := len(f.LineIdx) + 1
	if n := len(f.Content); n > 0 && f.Content[n-1] == '\n' {
		lines--
	}
	for ln := 1; ln <= lines; ln++ {
		lineNum, err := safecast.Conv[uint32](ln)
		if err != nil {
			return
		}
		width := runewidth.StringWidth(f.GetLine(lineNum))
		if width <= limit {
			continue
		}
		bag.Add(diag.Diagnostic{
			Severity: diag.SevInfo,
			Code:     diag.FmtLongLine,
			Message:  fmt.Sprintf("line is %d columns, configured maximum is %d", width, limit),
			Primary:  lineSpan(f, lineNum),
		})
	}
}

// lineSpan covers one 1-based line without its trailing newline.
func lineSpan(f *source.File, lineNum uint32) source.Span {
	var start uint32
	if lineNum > 1 {
		start = f.LineIdx[lineNum-2] + 1
	}
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return source.Span{File: f.ID}
	}
	if idx := int(lineNum) - 1; idx < len(f.LineIdx) {
		end = f.LineIdx[idx]
	}
	return source.Span{File: f.ID, Start: start, End: end}
}
