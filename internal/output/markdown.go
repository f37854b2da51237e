package output

import (
	"fmt"
	"strings"

	"github.com/quotalens/quotalens/internal/core"
)

// MarkdownFormatter renders the series as a markdown table.
type MarkdownFormatter struct{}

// FormatSeries renders snapshots as Markdown.
func (f *MarkdownFormatter) FormatSeries(series []core.UsageSnapshot) (string, error) {
	var sb strings.Builder
	sb.WriteString("## API usage history\n\n")
	sb.WriteString("| Date | Calls Used | Daily Limit | Used % | Level |\n")
	sb.WriteString("|------|------------|-------------|--------|-------|\n")

	for _, snap := range series {
		percent := UsedPercent(snap)
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.1f%% | %s |\n",
			snap.Day,
			snap.CallsUsed,
			snap.DailyLimit,
			percent,
			UsageLevel(percent),
		))
	}

	return sb.String(), nil
}
