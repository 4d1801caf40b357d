package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shorthand/internal/diagfmt"
	"shorthand/internal/driver"
	"shorthand/internal/observ"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <path> [path...]",
	Short: "Parse shorthand files and emit their document structure as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringP("output", "o", "", "write JSON to a file instead of stdout (single input only)")
	parseCmd.Flags().Bool("positions", false, "include line/column of every diagnostic location")
	parseCmd.Flags().Int("jobs", 0, "parallel workers (default: number of CPUs)")
	parseCmd.Flags().Bool("no-cache", false, "bypass the parsed-document cache")
}

func runParse(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	flags := cmd.Flags()
	output, err := flags.GetString("output")
	if err != nil {
		return err
	}
	positions, err := flags.GetBool("positions")
	if err != nil {
		return err
	}
	if output != "" && len(args) > 1 {
		return fmt.Errorf("parse: --output accepts a single input file, got %d", len(args))
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

	tm := observ.NewTimer()
	phase := tm.Begin("parse")
	results, err := driver.ParsePaths(cmd.Context(), args, opts)
	tm.End(phase, fmt.Sprintf("%d files", len(results)))
	if err != nil {
		return err
	}
	if timingsFlag(cmd) {
		printTimings(tm)
	}
	if output != "" && len(results) != 1 {
		return fmt.Errorf("parse: --output accepts a single input file, found %d", len(results))
	}

	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: positions,
		PathMode:         diagfmt.PathModeRelative,
		IncludeNotes:     true,
	}

	var failed int
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "parse: %s: %v\n", res.Path, res.Err)
			continue
		}
		if res.Bag != nil {
			printDiagnostics(res.Bag.Items(), res.FileSet)
		}

		out := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			defer f.Close()
			out = f
		} else if len(results) > 1 {
			fmt.Printf("\n=== %s ===\n", res.Path)
		}
		if err := diagfmt.DocumentJSONTo(out, res.Doc, res.FileSet, jsonOpts); err != nil {
			return fmt.Errorf("parse: %s: %w", res.Path, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("parse: failed to parse %d of %d files", failed, len(results))
	}
	return nil
}
