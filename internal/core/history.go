package core

import (
	"context"
	"fmt"
	"time"

	"github.com/quotalens/quotalens/internal/core/store"
)

// HistoryReader reconstructs the stored daily series for presentation. It
// never writes and is safe to call repeatedly.
type HistoryReader struct {
	Store store.KV

	// Clock supplies "now"; defaults to time.Now.
	Clock func() time.Time
}

// History returns the snapshots for the last windowDays calendar days ending
// today, oldest first. Days without a stored snapshot are omitted — the
// result is sparse, never padded with synthetic entries.
//
// The window walks plain UTC calendar days, matching the dashboard's read
// path; only capture keys go through the reset-hour rule.
func (r *HistoryReader) History(ctx context.Context, windowDays int) ([]UsageSnapshot, error) {
	if windowDays <= 0 {
		windowDays = DefaultHistoryDays
	}

	today := r.now().UTC()
	series := make([]UsageSnapshot, 0, windowDays)

	for i := windowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format(DateLayout)

		raw, ok, err := r.Store.Get(ctx, Key(day))
		if err != nil {
			return nil, fmt.Errorf("%w: read snapshot for %s: %v", ErrStore, day, err)
		}
		if !ok {
			continue
		}

		snap, err := DecodeSnapshot(raw)
		if err != nil {
			return nil, fmt.Errorf("snapshot for %s: %w", day, err)
		}
		series = append(series, *snap)
	}

	return series, nil
}

func (r *HistoryReader) now() time.Time {
	if r != nil && r.Clock != nil {
		return r.Clock()
	}
	return time.Now().UTC()
}
