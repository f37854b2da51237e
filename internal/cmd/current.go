package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/quotalens/quotalens/internal/config"
	"github.com/quotalens/quotalens/internal/hubspot"
	"github.com/quotalens/quotalens/internal/output"
)

var currentKey string

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show today's live API usage",
	Long: `Query the upstream API for today's usage counters and print a
summary. Read-only: nothing is written to the store, so it is safe to run
as often as you like.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}

		key := currentKey
		if key == "" {
			key = cfg.HubSpot.APIKey
		}
		if key == "" {
			return fmt.Errorf("no API key: pass --key or set hubspot.api_key")
		}

		client := &hubspot.Client{
			BaseURL:    cfg.HubSpot.BaseURL,
			HTTPClient: &http.Client{Timeout: cfg.HubSpot.Timeout},
		}

		snap, err := client.FetchCurrentUsage(cmd.Context(), key)
		if err != nil {
			return err
		}

		percent := output.UsedPercent(*snap)
		remaining := snap.DailyLimit - snap.CallsUsed

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Current API usage for %s\n", snap.Day)
		fmt.Fprintf(out, "  Used:      %d / %d calls\n", snap.CallsUsed, snap.DailyLimit)
		fmt.Fprintf(out, "  Remaining: %d calls\n", remaining)
		fmt.Fprintf(out, "  Usage:     %.1f%% (%s)\n", percent, output.UsageLevel(percent))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(currentCmd)

	currentCmd.Flags().StringVar(&currentKey, "key", "", "upstream API key (defaults to hubspot.api_key)")
}
