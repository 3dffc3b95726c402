package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	sessionRepo "dashboard.GO/model/repository/session"
)

var sessionsPurgeCmd = &cobra.Command{
	Use:   "sessions:purge",
	Short: "Delete expired login sessions",
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		n, err := sessionRepo.NewSessionRepository(rt.DB).PurgeExpired()
		if err != nil {
			return fmt.Errorf("purge sessions: %w", err)
		}
		fmt.Fprintf(c.OutOrStdout(), "Purged %d expired session(s)\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsPurgeCmd)
}
