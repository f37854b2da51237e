// Package output renders usage series for the CLI commands.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/quotalens/quotalens/internal/core"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter renders a usage series.
type Formatter interface {
	FormatSeries(series []core.UsageSnapshot) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown):
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

// UsedPercent derives quota consumption for display. Zero limit yields zero
// rather than dividing.
func UsedPercent(snap core.UsageSnapshot) float64 {
	if snap.DailyLimit <= 0 {
		return 0
	}
	return float64(snap.CallsUsed) / float64(snap.DailyLimit) * 100
}

// UsageLevel buckets quota consumption for operators scanning output:
// healthy below 50%, moderate up to 80%, high above.
func UsageLevel(percent float64) string {
	switch {
	case percent > 80:
		return "high"
	case percent >= 50:
		return "moderate"
	default:
		return "healthy"
	}
}

func formatCapturedAt(epochMillis int64) string {
	if epochMillis == 0 {
		return ""
	}
	return time.UnixMilli(epochMillis).UTC().Format(time.RFC3339)
}
