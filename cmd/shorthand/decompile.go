package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shorthand/internal/decompile"
	"shorthand/internal/format"
	"shorthand/internal/observ"
)

var decompileCmd = &cobra.Command{
	Use:   "decompile [flags] <path> [path...]",
	Short: "Convert Go source into shorthand notation",
	Long:  `Decompile reads Go files or package trees and emits one shorthand document: structs become entities, fields become state variables, functions become signatures`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDecompile,
}

func init() {
	decompileCmd.Flags().StringP("output", "o", "", "write the document to a file instead of stdout")
	decompileCmd.Flags().String("role", "", "module role in the header (default: Core)")
	decompileCmd.Flags().Bool("ascii", false, "emit ASCII operators instead of Unicode")
}

func runDecompile(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	flags := cmd.Flags()
	output, err := flags.GetString("output")
	if err != nil {
		return err
	}
	role, err := flags.GetString("role")
	if err != nil {
		return err
	}
	ascii, err := flags.GetBool("ascii")
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cfg := settings.Format
	if ascii {
		cfg.PreferUnicode = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	tm := observ.NewTimer()
	phase := tm.Begin("decompile")
	doc, err := decompile.Paths(cmd.Context(), args, decompile.Options{Role: role})
	tm.End(phase, fmt.Sprintf("%d paths", len(args)))
	if err != nil {
		return fmt.Errorf("decompile: %w", err)
	}

	text, err := format.Document(doc, cfg)
	if err != nil {
		return fmt.Errorf("decompile: %w", err)
	}
	if timingsFlag(cmd) {
		printTimings(tm)
	}

	if output == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("decompile: %w", err)
	}
	if !quietFlag(cmd) {
		fmt.Printf("✓ Wrote %s\n", output)
	}
	return nil
}
