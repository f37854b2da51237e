package output

import (
	"encoding/json"

	"github.com/quotalens/quotalens/internal/core"
)

// JSONFormatter renders the series as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatSeries renders snapshots as a JSON array. An empty series renders
// as [] to match the HTTP surface.
func (f *JSONFormatter) FormatSeries(series []core.UsageSnapshot) (string, error) {
	if series == nil {
		series = []core.UsageSnapshot{}
	}

	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(series, "", "  ")
	} else {
		data, err = json.Marshal(series)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
