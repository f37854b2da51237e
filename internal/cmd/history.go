package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/quotalens/quotalens/internal/core"
	"github.com/quotalens/quotalens/internal/output"
)

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the stored daily usage series",
	Long: `Read the stored snapshots for the last N days and print them oldest
first. Days without a capture are omitted rather than padded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveOutputFormat(cmd)
		if err != nil {
			return err
		}
		outPath, outDir, err := resolveOutputTargets(cmd)
		if err != nil {
			return err
		}

		kv, cfg, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		days := historyDays
		if days <= 0 {
			days = cfg.History.WindowDays
		}

		reader := &core.HistoryReader{Store: kv}
		series, err := reader.History(cmd.Context(), days)
		if err != nil {
			return err
		}

		rendered, err := output.NewFormatter(format).FormatSeries(series)
		if err != nil {
			return err
		}

		if outDir != "" {
			dir, err := ensureOutDir(outDir)
			if err != nil {
				return err
			}
			name := sanitizeFilename("usage-history-" + time.Now().UTC().Format(core.DateLayout))
			outPath = filepath.Join(dir, name+"."+outputExtension(format))
		}

		sink, err := openSink(outPath)
		if err != nil {
			return err
		}
		defer func() { _ = sink.close() }()

		fmt.Fprintln(sink.writer, rendered)
		if sink.path != "-" {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", sink.path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyDays, "days", 0, "window in days (defaults to history.window_days)")
	historyCmd.Flags().String("output-format", "table", "output format: table, json, markdown")
	historyCmd.Flags().String("out", "", "write output to file (- for stdout)")
	historyCmd.Flags().String("out-dir", "", "write output into directory with a generated filename")
}
