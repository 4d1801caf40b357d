package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shorthand/internal/driver/dcache"
)

// cacheAppName names the directory under $XDG_CACHE_HOME holding the
// parsed-document cache.
const cacheAppName = "shorthand"

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the parsed-document cache",
}

func init() {
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Remove every cached document",
		Args:  cobra.NoArgs,
		RunE:  runCacheClean,
	})
}

func runCacheClean(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cache, err := dcache.Open(cacheAppName)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if !quietFlag(cmd) {
		fmt.Println("✓ Document cache cleared")
	}
	return nil
}
