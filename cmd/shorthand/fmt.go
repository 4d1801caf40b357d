package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shorthand/internal/config"
	"shorthand/internal/driver"
	"shorthand/internal/format"
	"shorthand/internal/observ"
)

var fmtSortState format.SortMode

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format shorthand files into canonical form",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "write changes in-place (default: print to stdout)")
	fmtCmd.Flags().Bool("check", false, "check if files need formatting (don't modify)")
	fmtCmd.Flags().Bool("diff", false, "show diff when using --check")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Bool("verify", false, "reparse the output and verify structural equality")
	fmtCmd.Flags().Int("indent", 0, "spaces per indentation level (default from shorthand.toml)")
	fmtCmd.Flags().Int("line-length", 0, "maximum line length before wrapping (default from shorthand.toml)")
	fmtCmd.Flags().Var(&fmtSortState, "sort-state", "state ordering (location|name|none)")
	fmtCmd.Flags().Bool("ascii", false, "emit ASCII operators instead of Unicode")
	fmtCmd.Flags().Bool("no-align", false, "disable type alignment in state blocks")
	fmtCmd.Flags().Int("jobs", 0, "parallel workers (default: number of CPUs)")
	fmtCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	flags := cmd.Flags()
	write, err := flags.GetBool("write")
	if err != nil {
		return err
	}
	check, err := flags.GetBool("check")
	if err != nil {
		return err
	}
	diff, err := flags.GetBool("diff")
	if err != nil {
		return err
	}
	toStdout, err := flags.GetBool("stdout")
	if err != nil {
		return err
	}
	verify, err := flags.GetBool("verify")
	if err != nil {
		return err
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return err
	}
	quiet := quietFlag(cmd)

	if write && check {
		return fmt.Errorf("fmt: --write cannot be used with --check")
	}
	if toStdout && (write || check) {
		return fmt.Errorf("fmt: --stdout cannot be used with --write or --check")
	}
	if diff && !check {
		return fmt.Errorf("fmt: --diff requires --check")
	}

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cfg, err := fmtConfig(cmd, settings)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, settings, nil)
	if err != nil {
		return err
	}

	fmtOpts := driver.FormatOptions{
		Options: opts,
		Config:  cfg,
		Write:   write,
		Check:   check,
		Diff:    diff,
		Verify:  verify,
	}

	tm := observ.NewTimer()
	phase := tm.Begin("format")

	var results []driver.FormatResult
	if (write || check) && mode.wantTUI() {
		title := "Formatting"
		if check {
			title = "Checking format"
		}
		results, err = runFormatWithUI(cmd.Context(), title, args, fmtOpts)
	} else {
		results, err = driver.FormatPaths(cmd.Context(), args, fmtOpts)
	}
	tm.End(phase, fmt.Sprintf("%d files", len(results)))
	if err != nil {
		return err
	}
	if timingsFlag(cmd) {
		printTimings(tm)
	}

	return renderFmtResults(results, write, check, diff, quiet)
}

// fmtConfig layers command-line overrides on top of the manifest
// formatting config. Only flags the user actually set take effect.
func fmtConfig(cmd *cobra.Command, settings *config.Config) (format.Config, error) {
	cfg := settings.Format
	flags := cmd.Flags()

	if flags.Changed("indent") {
		indent, err := flags.GetInt("indent")
		if err != nil {
			return cfg, err
		}
		cfg.Indent = indent
	}
	if flags.Changed("line-length") {
		length, err := flags.GetInt("line-length")
		if err != nil {
			return cfg, err
		}
		cfg.MaxLineLength = length
	}
	if flags.Changed("sort-state") {
		cfg.SortStateBy = fmtSortState
	}
	if flags.Changed("ascii") {
		ascii, err := flags.GetBool("ascii")
		if err != nil {
			return cfg, err
		}
		cfg.PreferUnicode = !ascii
	}
	if flags.Changed("no-align") {
		noAlign, err := flags.GetBool("no-align")
		if err != nil {
			return cfg, err
		}
		cfg.AlignTypes = !noAlign
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func renderFmtResults(results []driver.FormatResult, write, check, diff, quiet bool) error {
	var failed, changed int
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			if res.Result != nil && res.Result.Bag != nil {
				printDiagnostics(res.Result.Bag.Items(), res.Result.FileSet)
			}
			continue
		}

		switch {
		case check:
			if res.Changed {
				changed++
				fmt.Printf("Would reformat: %s\n", res.Path)
				if diff && res.Diff != "" {
					fmt.Println()
					fmt.Print(res.Diff)
				}
			}
		case write:
			if res.Changed {
				changed++
				if !quiet {
					fmt.Printf("✓ Formatted: %s\n", res.Path)
				}
			}
		default:
			if len(results) > 1 {
				fmt.Printf("\n=== %s ===\n", res.Path)
			}
			_, _ = os.Stdout.Write(res.Formatted)
		}
	}

	if failed > 0 {
		return fmt.Errorf("fmt: failed to format %d of %d files", failed, len(results))
	}
	if check {
		if changed > 0 {
			return fmt.Errorf("fmt: %d files need formatting", changed)
		}
		if !quiet {
			fmt.Printf("\n✓ All %d files are formatted correctly\n", len(results))
		}
	}
	return nil
}
