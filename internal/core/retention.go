package core

import (
	"context"
	"fmt"
	"time"

	"github.com/quotalens/quotalens/internal/core/store"
)

// Sweeper removes snapshots older than the retention horizon. Sweeps are
// best-effort: an entry whose delete fails stays behind for the next sweep.
type Sweeper struct {
	Store         store.KV
	RetentionDays int

	// Clock supplies "now"; defaults to time.Now.
	Clock func() time.Time
}

// Sweep deletes every stored snapshot whose day sorts before the cutoff day
// (the canonical day of now minus retention plus one grace day). The cutoff
// day itself is retained — exclusive boundary. Returns the number of entries
// actually removed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	days := s.RetentionDays
	if days <= 0 {
		days = DefaultRetentionDays
	}

	now := s.now()
	cutoffKey := Key(BusinessDay(now.AddDate(0, 0, -(days + 1))))

	keys, err := s.Store.ListKeys(ctx, KeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("%w: list usage keys: %v", ErrStore, err)
	}

	removed := 0
	for _, key := range keys {
		// ISO date keys make lexicographic order chronological order.
		if key >= cutoffKey {
			continue
		}
		if err := s.Store.Delete(ctx, key); err != nil {
			continue
		}
		removed++
	}

	return removed, nil
}

func (s *Sweeper) now() time.Time {
	if s != nil && s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}
