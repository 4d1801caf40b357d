package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shorthand/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the toolchain version",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true

	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	switch outFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(versionPayload{
			Tool:      "shorthand",
			Version:   version.Version,
			Commit:    version.Commit,
			BuildDate: version.BuildDate,
		})
	case "pretty":
		rendered := version.Version
		if rootColor.enabled(os.Stdout) {
			rendered = version.Pretty()
		}
		fmt.Printf("shorthand %s\n", rendered)
		if version.Commit != "" {
			fmt.Printf("commit: %s\n", version.Commit)
		}
		if version.BuildDate != "" {
			fmt.Printf("built:  %s\n", version.BuildDate)
		}
		return nil
	default:
		return fmt.Errorf("version: unknown format %q (expected pretty or json)", outFormat)
	}
}
