package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var bannerFonts = []string{"banner", "big", "slant", "standard", "small", "speed", "doom", "larry3d"}

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Catalog dashboard maintenance commands",
	PersistentPreRun: func(c *cobra.Command, args []string) {
		if quiet, _ := c.Flags().GetBool("quiet"); quiet {
			return
		}
		fig := figure.NewFigure("Dashboard.GO", bannerFonts[rand.Intn(len(bannerFonts))], true)
		fmt.Fprintln(c.OutOrStdout(), fig.String())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Do not print the banner")
}

// Execute applies the registered commands and runs the CLI. ctx is
// cancelled on shutdown signals.
func Execute(ctx context.Context) {
	Apply()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
