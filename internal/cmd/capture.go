package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/quotalens/quotalens/internal/core"
	"github.com/quotalens/quotalens/internal/hubspot"
)

var captureKey string

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture today's usage into the store",
	Long: `Fetch the current usage counters and persist them under today's
business day. Running twice in the same business day overwrites the earlier
snapshot. Expired entries are swept after every successful capture.

Equivalent to the /daily-capture endpoint; useful from cron when the
embedded scheduler is disabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kv, cfg, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		key := captureKey
		if key == "" {
			key = cfg.HubSpot.APIKey
		}
		if key == "" {
			return fmt.Errorf("no API key: pass --key or set hubspot.api_key")
		}

		svc := &core.CaptureService{
			Fetcher: &hubspot.Client{
				BaseURL:    cfg.HubSpot.BaseURL,
				HTTPClient: &http.Client{Timeout: cfg.HubSpot.Timeout},
			},
			Store:         kv,
			RetentionDays: cfg.Retention.Days,
		}

		snap, err := svc.CaptureEndOfDay(cmd.Context(), key)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Captured %s: %d / %d calls\n",
			snap.Day, snap.CallsUsed, snap.DailyLimit)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)

	captureCmd.Flags().StringVar(&captureKey, "key", "", "upstream API key (defaults to hubspot.api_key)")
}
