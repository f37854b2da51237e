package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/quotalens/quotalens/internal/core"
)

// TableFormatter renders the series as an ASCII table.
type TableFormatter struct{}

// FormatSeries renders snapshots one row per day, oldest first.
func (f *TableFormatter) FormatSeries(series []core.UsageSnapshot) (string, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Date", "Calls Used", "Daily Limit", "Used %", "Level", "Captured At"})

	for _, snap := range series {
		percent := UsedPercent(snap)
		t.AppendRow(table.Row{
			snap.Day,
			snap.CallsUsed,
			snap.DailyLimit,
			fmt.Sprintf("%.1f%%", percent),
			UsageLevel(percent),
			formatCapturedAt(snap.CapturedAt),
		})
	}

	if len(series) > 0 {
		t.AppendFooter(table.Row{
			fmt.Sprintf("%d days", len(series)), "", "", "", "", "",
		})
	}

	return t.Render(), nil
}
