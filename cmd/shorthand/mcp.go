package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shorthand/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the shorthand toolchain over the Model Context Protocol",
	Long:  `Mcp exposes the parser, formatter, linter, decompiler, and codebase queries as stdio tools for agents`,
	RunE:  runMCP,
}

func init() {
	mcpCmd.Flags().StringSlice("tools", nil, "tools to expose (default: all)")
	mcpCmd.Flags().Duration("timeout", 0, "exit after this much inactivity (0 = never)")
	mcpCmd.Flags().Bool("list-tools", false, "print tool schemas as JSON and exit")
	mcpCmd.Flags().String("call", "", "invoke one tool directly instead of serving")
	mcpCmd.Flags().String("args", "{}", "JSON arguments for --call")
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	flags := cmd.Flags()
	tools, err := flags.GetStringSlice("tools")
	if err != nil {
		return err
	}
	timeout, err := flags.GetDuration("timeout")
	if err != nil {
		return err
	}
	listTools, err := flags.GetBool("list-tools")
	if err != nil {
		return err
	}
	callName, err := flags.GetString("call")
	if err != nil {
		return err
	}
	callArgs, err := flags.GetString("args")
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	srv, err := mcp.New(mcp.Config{
		Settings: settings,
		Tools:    tools,
		Timeout:  timeout,
	})
	if err != nil {
		return fmt.Errorf("mcp: %w", err)
	}

	if listTools {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(srv.GetToolSchemas())
	}

	if callName != "" {
		var args map[string]any
		if err := json.Unmarshal([]byte(callArgs), &args); err != nil {
			return fmt.Errorf("mcp: --args is not valid JSON: %w", err)
		}
		result, err := srv.CallTool(callName, args)
		if err != nil {
			return fmt.Errorf("mcp: %w", err)
		}
		fmt.Println(result)
		return nil
	}

	if !quietFlag(cmd) {
		fmt.Fprintf(os.Stderr, "shorthand mcp: serving %d tools on stdio\n", len(srv.ListTools()))
		if timeout > 0 {
			fmt.Fprintf(os.Stderr, "shorthand mcp: inactivity timeout %v\n", timeout)
		}
	}
	return srv.ServeStdio()
}
