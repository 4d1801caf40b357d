package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"shorthand/internal/explore"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Look up implementations, entities, and usages in a Go codebase",
	Long:  `Show answers point queries against a Go codebase: the body of one function or method, a struct with its method set, or every line referencing a symbol`,
}

func init() {
	showCmd.PersistentFlags().StringP("codebase", "c", ".", "Go file or directory tree to index")

	implCmd := &cobra.Command{
		Use:   "impl <Func | Type.Method>",
		Short: "Print the source of one function or method",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowImpl,
	}
	implCmd.Flags().Bool("context", false, "append the bodies of sibling methods the target calls")

	entityCmd := &cobra.Command{
		Use:   "entity <Name>",
		Short: "Print a struct definition with its doc comment and method set",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowEntity,
	}

	usagesCmd := &cobra.Command{
		Use:   "usages <symbol>",
		Short: "Print every line that references a symbol",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowUsages,
	}

	showCmd.AddCommand(implCmd)
	showCmd.AddCommand(entityCmd)
	showCmd.AddCommand(usagesCmd)
}

func showExplorer(cmd *cobra.Command) (*explore.Explorer, error) {
	root, err := cmd.Flags().GetString("codebase")
	if err != nil {
		return nil, err
	}
	return explore.New(root)
}

func runShowImpl(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	withContext, err := cmd.Flags().GetBool("context")
	if err != nil {
		return err
	}
	ex, err := showExplorer(cmd)
	if err != nil {
		return err
	}
	text, err := ex.Implementation(args[0], withContext)
	if err != nil {
		return showError("implementation", args[0], err)
	}
	fmt.Println(text)
	return nil
}

func runShowEntity(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	ex, err := showExplorer(cmd)
	if err != nil {
		return err
	}
	text, err := ex.EntityDetails(args[0])
	if err != nil {
		return showError("entity", args[0], err)
	}
	fmt.Println(text)
	return nil
}

func runShowUsages(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	ex, err := showExplorer(cmd)
	if err != nil {
		return err
	}
	lines, err := ex.Usages(args[0])
	if err != nil {
		return showError("usages of", args[0], err)
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}

func showError(what, target string, err error) error {
	if errors.Is(err, explore.ErrNotFound) {
		return fmt.Errorf("show: %s %q not found in the codebase", what, target)
	}
	return fmt.Errorf("show: %w", err)
}
