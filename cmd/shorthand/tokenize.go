package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shorthand/internal/diagfmt"
	"shorthand/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file>",
	Short: "Dump the token stream of a shorthand file",
	Long:  `Tokenize breaks a shorthand source file into its constituent tokens, including the synthetic indent and dedent markers`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("strip-trivia", false, "drop comments and newline tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	stripTrivia, err := cmd.Flags().GetBool("strip-trivia")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}

	if result.Bag.Len() > 0 {
		printDiagnostics(result.Bag.Items(), result.FileSet)
	}

	tokens := result.Tokens
	if stripTrivia {
		tokens = driver.StripTrivia(tokens)
	}

	switch outFormat {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, tokens)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, tokens)
	default:
		return fmt.Errorf("tokenize: unknown format %q (expected pretty or json)", outFormat)
	}
}
