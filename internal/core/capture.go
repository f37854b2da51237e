package core

import (
	"context"
	"fmt"
	"time"

	"github.com/quotalens/quotalens/internal/core/store"
)

// UsageFetcher reads the live usage counters from the upstream API. A single
// read-only call; no retries — transient failures surface to the caller and
// the next scheduled tick tries again.
type UsageFetcher interface {
	FetchCurrentUsage(ctx context.Context, credential string) (*UsageSnapshot, error)
}

// CaptureService orchestrates one end-of-day capture: fetch the live
// counters, attribute them to the current business day, upsert into the
// store, then sweep expired entries. Re-capturing within the same business
// day overwrites the earlier snapshot.
type CaptureService struct {
	Fetcher       UsageFetcher
	Store         store.KV
	RetentionDays int

	// Clock supplies "now" so captures are reproducible under test.
	// Defaults to time.Now.
	Clock func() time.Time
}

// CaptureEndOfDay fetches the current usage and persists it under today's
// business day key. The retention sweep runs synchronously after every
// successful write. A fetch failure leaves the store untouched; a write
// failure skips the sweep.
func (s *CaptureService) CaptureEndOfDay(ctx context.Context, credential string) (*UsageSnapshot, error) {
	snap, err := s.Fetcher.FetchCurrentUsage(ctx, credential)
	if err != nil {
		return nil, err
	}

	now := s.now()
	captured := *snap
	captured.Day = BusinessDay(now)

	payload, err := EncodeSnapshot(&captured)
	if err != nil {
		return nil, err
	}

	if err := s.Store.Put(ctx, Key(captured.Day), payload); err != nil {
		return nil, fmt.Errorf("%w: store snapshot for %s: %v", ErrStore, captured.Day, err)
	}

	sweeper := Sweeper{Store: s.Store, RetentionDays: s.RetentionDays, Clock: s.Clock}
	if _, err := sweeper.Sweep(ctx); err != nil {
		return nil, err
	}

	return &captured, nil
}

func (s *CaptureService) now() time.Time {
	if s != nil && s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}
