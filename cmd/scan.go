package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/wifitrackr/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run one manual scan attempt now",
	Long: `Run a single manual scan attempt and print the outcome.

Manual scans ignore the configured time window and count toward a day's
total sessions, but never toward the daily success target.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := buildApp()
		if err != nil {
			return err
		}
		defer cleanup()

		out, err := app.recorder.RunAttempt(cmd.Context(), scan.TriggerManual)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		switch {
		case out.Skipped:
			fmt.Printf("skipped: %s\n", out.Reason)
		case out.Count == 0:
			fmt.Println("no matching networks found")
		default:
			fmt.Printf("recorded %d matching network(s), session %d\n", out.Count, out.SessionID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
