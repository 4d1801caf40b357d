package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"shorthand/internal/parser"
	"shorthand/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "shorthand",
	Short: "Shorthand notation toolchain",
	Long:  `Shorthand parses, formats, and lints compressed architecture notation, and decompiles Go source into it`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(decompileCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().Var(&rootColor, "color", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", parser.DefaultMaxDiagnostics, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
