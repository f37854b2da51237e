package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quotalens/quotalens/internal/core"
	"github.com/quotalens/quotalens/internal/metrics"
)

var sweepDays int

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove snapshots past the retention horizon",
	Long: `Delete stored snapshots older than the retention window. Captures
run this automatically; the command exists for cleaning up after a retention
config change or an imported backlog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, cfg, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		days := sweepDays
		if days <= 0 {
			days = cfg.Retention.Days
		}

		sweeper := core.Sweeper{Store: kv, RetentionDays: days}
		removed, err := sweeper.Sweep(cmd.Context())
		if err != nil {
			return err
		}
		metrics.RecordSweep(removed)

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired snapshot(s)\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().IntVar(&sweepDays, "days", 0, "retention horizon in days (defaults to retention.days)")
}
