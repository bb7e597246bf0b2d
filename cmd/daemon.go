package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the periodic scanner without the TUI",
	Long: `Run the background scheduler in the foreground until interrupted.

One periodic scan attempt runs immediately, then one per configured
interval (never more often than every 15 minutes). Periodic attempts are
skipped outside the configured time-of-day window.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := buildApp()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Println("wifitrackr daemon started, ctrl-c to stop")
		if err := app.sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
