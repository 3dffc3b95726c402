package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dashboard.GO/cron"
	"dashboard.GO/cron/jobs"
	sessionRepo "dashboard.GO/model/repository/session"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		all := cron.Merge(jobs.Builtin(sessionRepo.NewSessionRepository(rt.DB), rt.Cache, rt.Log))

		if jobName != "" {
			j, ok := all[strings.ToLower(jobName)]
			if !ok {
				return fmt.Errorf("unknown job: %s", jobName)
			}
			fmt.Fprintf(c.OutOrStdout(), "Running cron job: %s\n", jobName)
			j.Run(args...)
			return nil
		}

		fmt.Fprintln(c.OutOrStdout(), "Starting cron scheduler...")
		sched, err := cron.StartCron(rt.Log, all)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.OutOrStdout(), "Cron scheduler started with %s. Press Ctrl+C to exit.\n", strings.Join(cron.Names(all), ", "))
		<-c.Context().Done()
		<-sched.Stop().Done()
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
