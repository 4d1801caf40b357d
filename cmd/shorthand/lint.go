package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shorthand/internal/diag"
	"shorthand/internal/diagfmt"
	"shorthand/internal/driver"
	"shorthand/internal/observ"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] <path> [path...]",
	Short: "Validate shorthand files and report diagnostics",
	Long:  `Lint parses every file, then checks line lengths and canonical formatting on top of the parser's own diagnostics`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().Bool("strict", false, "treat warnings as errors")
	lintCmd.Flags().Bool("json", false, "output diagnostics as JSON")
	lintCmd.Flags().Int("jobs", 0, "parallel workers (default: number of CPUs)")
	lintCmd.Flags().Bool("no-cache", false, "bypass the parsed-document cache")
	lintCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
}

func runLint(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	flags := cmd.Flags()
	strict, err := flags.GetBool("strict")
	if err != nil {
		return err
	}
	asJSON, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cache := openDocCache(cmd)
	opts, err := driverOptions(cmd, settings, cache)
	if err != nil {
		return err
	}
	if !flags.Changed("strict") {
		strict = settings.Lint.Strict
	}

	lintOpts := driver.LintOptions{
		Options: opts,
		Config:  settings.Format,
		Strict:  strict,
	}

	tm := observ.NewTimer()
	phase := tm.Begin("lint")

	var results []driver.LintResult
	if !asJSON && mode.wantTUI() {
		results, err = runLintWithUI(cmd.Context(), "Linting", args, lintOpts)
	} else {
		results, err = driver.LintPaths(cmd.Context(), args, lintOpts)
	}
	tm.End(phase, fmt.Sprintf("%d files", len(results)))
	if err != nil {
		return err
	}
	if timingsFlag(cmd) {
		printTimings(tm)
	}

	return renderLintResults(results, asJSON, quietFlag(cmd))
}

func renderLintResults(results []driver.LintResult, asJSON, quiet bool) error {
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         diagfmt.PathModeRelative,
		IncludeNotes:     true,
	}

	for i := range results {
		res := &results[i]
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "lint: %s: %v\n", res.Path, res.Err)
			continue
		}
		if len(res.Items) == 0 {
			continue
		}
		fs := res.Result.FileSet
		if asJSON {
			if err := diagfmt.JSONList(os.Stdout, res.Items, fs, jsonOpts); err != nil {
				return fmt.Errorf("lint: %s: %w", res.Path, err)
			}
			continue
		}
		printDiagnostics(res.Items, fs)
	}

	summary := driver.Summarize(results)
	if !quiet && !asJSON {
		fmt.Fprintf(os.Stderr, "%d files checked: %d failed, %d errors, %d warnings, %d infos\n",
			summary.Files, summary.Failed, summary.Errors, summary.Warnings, summary.Infos)
	}
	if !summary.Clean() {
		return fmt.Errorf("lint: found problems in %d files", summary.Failed+countDirty(results))
	}
	return nil
}

// countDirty counts parsed files whose findings include an error.
func countDirty(results []driver.LintResult) int {
	var n int
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		for _, d := range results[i].Items {
			if d.Severity == diag.SevError {
				n++
				break
			}
		}
	}
	return n
}
