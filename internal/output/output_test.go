package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/quotalens/quotalens/internal/core"
)

func sampleSeries() []core.UsageSnapshot {
	return []core.UsageSnapshot{
		{Day: "2025-06-14", CallsUsed: 125000, DailyLimit: 500000, CapturedAt: 1749913200000},
		{Day: "2025-06-15", CallsUsed: 410000, DailyLimit: 500000, CapturedAt: 1749999600000},
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"json", FormatJSON, false},
		{"markdown", FormatMarkdown, false},
		{"", FormatTable, false},
		{"  JSON  ", FormatJSON, false},
		{"yaml", "", true},
	}

	for _, tc := range cases {
		got, err := ParseFormat(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestUsedPercent(t *testing.T) {
	if got := UsedPercent(core.UsageSnapshot{CallsUsed: 250000, DailyLimit: 500000}); got != 50 {
		t.Errorf("UsedPercent = %v, want 50", got)
	}
	if got := UsedPercent(core.UsageSnapshot{CallsUsed: 100, DailyLimit: 0}); got != 0 {
		t.Errorf("UsedPercent with zero limit = %v, want 0", got)
	}
}

func TestUsageLevel(t *testing.T) {
	cases := []struct {
		percent float64
		want    string
	}{
		{0, "healthy"},
		{49.9, "healthy"},
		{50, "moderate"},
		{80, "moderate"},
		{80.1, "high"},
		{100, "high"},
	}

	for _, tc := range cases {
		if got := UsageLevel(tc.percent); got != tc.want {
			t.Errorf("UsageLevel(%v) = %q, want %q", tc.percent, got, tc.want)
		}
	}
}

func TestJSONFormatterEmptySeries(t *testing.T) {
	out, err := (&JSONFormatter{}).FormatSeries(nil)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("empty series = %q, want []", out)
	}
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	out, err := (&JSONFormatter{Indent: true}).FormatSeries(sampleSeries())
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	var decoded []core.UsageSnapshot
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 2 || decoded[1].CallsUsed != 410000 {
		t.Fatalf("unexpected decoded series: %v", decoded)
	}
}

func TestTableFormatterIncludesLevels(t *testing.T) {
	out, err := (&TableFormatter{}).FormatSeries(sampleSeries())
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	for _, want := range []string{"2025-06-14", "2025-06-15", "healthy", "high"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	// go-pretty uppercases the footer row.
	if !strings.Contains(strings.ToUpper(out), "2 DAYS") {
		t.Errorf("table output missing day count footer:\n%s", out)
	}
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := (&MarkdownFormatter{}).FormatSeries(sampleSeries())
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	if !strings.Contains(out, "| Date | Calls Used | Daily Limit | Used % | Level |") {
		t.Fatalf("expected markdown header, got:\n%s", out)
	}
	if !strings.Contains(out, "| 2025-06-15 | 410000 | 500000 | 82.0% | high |") {
		t.Errorf("markdown output missing day row:\n%s", out)
	}
}

func TestFormatCapturedAt(t *testing.T) {
	if got := formatCapturedAt(0); got != "" {
		t.Errorf("zero timestamp = %q, want empty", got)
	}
	if got := formatCapturedAt(1749999600000); got != "2025-06-15T15:00:00Z" {
		t.Errorf("formatCapturedAt = %q", got)
	}
}
