package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dashboard.GO/core/cache"
)

var cacheFlushCmd = &cobra.Command{
	Use:   "cache:flush",
	Short: "Drop cached upstream catalog responses",
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		if err := rt.Cache.Invalidate(c.Context(), cache.TagCatalog); err != nil {
			return fmt.Errorf("flush cache: %w", err)
		}
		fmt.Fprintln(c.OutOrStdout(), "Catalog cache flushed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheFlushCmd)
}
