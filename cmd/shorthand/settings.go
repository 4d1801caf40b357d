package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shorthand/internal/config"
	"shorthand/internal/diag"
	"shorthand/internal/diagfmt"
	"shorthand/internal/driver"
	"shorthand/internal/driver/dcache"
	"shorthand/internal/observ"
	"shorthand/internal/source"
)

// loadSettings resolves the shorthand.toml governing the working
// directory. Unknown manifest keys are reported once, to stderr, so a
// typo in the manifest never fails a run silently.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Discover(".")
	if err != nil {
		return nil, err
	}
	if !quietFlag(cmd) {
		for _, key := range cfg.Unknown {
			fmt.Fprintf(os.Stderr, "warning: %s: unknown key %q\n", cfg.Path, key)
		}
	}
	return cfg, nil
}

func quietFlag(cmd *cobra.Command) bool {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false
	}
	return quiet
}

// driverOptions assembles the batch options shared by parse, fmt and
// lint. --max-diagnostics beats the manifest, the manifest beats the
// built-in default.
func driverOptions(cmd *cobra.Command, settings *config.Config, cache *dcache.Cache) (driver.Options, error) {
	rootFlags := cmd.Root().PersistentFlags()
	maxDiagnostics, err := rootFlags.GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, err
	}
	if !rootFlags.Changed("max-diagnostics") && settings.Lint.MaxDiagnostics > 0 {
		maxDiagnostics = settings.Lint.MaxDiagnostics
	}

	jobs := 0
	if cmd.Flags().Lookup("jobs") != nil {
		if jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return driver.Options{}, err
		}
	}

	return driver.Options{
		MaxDiagnostics:  maxDiagnostics,
		ExtraDecorators: settings.Decorators,
		Jobs:            jobs,
		Cache:           cache,
	}, nil
}

// openDocCache opens the shared parse cache. Cache failures degrade to
// an uncached run; they never fail the command.
func openDocCache(cmd *cobra.Command) *dcache.Cache {
	if cmd.Flags().Lookup("no-cache") != nil {
		if noCache, err := cmd.Flags().GetBool("no-cache"); err == nil && noCache {
			return nil
		}
	}
	cache, err := dcache.Open(cacheAppName)
	if err != nil {
		if !quietFlag(cmd) {
			fmt.Fprintf(os.Stderr, "warning: document cache unavailable: %v\n", err)
		}
		return nil
	}
	return cache
}

// printDiagnostics renders one file's findings to stderr in the
// caret-annotated form.
func printDiagnostics(items []diag.Diagnostic, fs *source.FileSet) {
	if len(items) == 0 {
		return
	}
	diagfmt.PrettyList(os.Stderr, items, fs, diagfmt.PrettyOpts{
		Color:     rootColor.enabled(os.Stderr),
		Context:   2,
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
	})
}

func timingsFlag(cmd *cobra.Command) bool {
	on, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return false
	}
	return on
}

func printTimings(tm *observ.Timer) {
	fmt.Fprint(os.Stderr, tm.Summary())
}
