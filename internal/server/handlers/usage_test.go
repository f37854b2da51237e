package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/quotalens/quotalens/internal/core"
	"github.com/quotalens/quotalens/internal/core/store"
)

type fakeFetcher struct {
	snap  *core.UsageSnapshot
	err   error
	calls int
}

func (f *fakeFetcher) FetchCurrentUsage(ctx context.Context, credential string) (*core.UsageSnapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	snap := *f.snap
	return &snap, nil
}

func setupUsageService(t *testing.T, fetcher *fakeFetcher) *store.Memory {
	t.Helper()

	mem := store.NewMemory()
	clock := func() time.Time {
		return time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
	}

	SetUsageService(&UsageService{
		Capture: &core.CaptureService{
			Fetcher:       fetcher,
			Store:         mem,
			RetentionDays: 90,
			Clock:         clock,
		},
		Fetcher:    fetcher,
		History:    &core.HistoryReader{Store: mem, Clock: clock},
		WindowDays: 90,
	})
	t.Cleanup(func() { SetUsageService(nil) })

	return mem
}

func TestHistoryHandlerEmptyStoreReturnsEmptyArray(t *testing.T) {
	setupUsageService(t, &fakeFetcher{})

	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	rec := httptest.NewRecorder()

	HistoryHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected [] body, got %q", got)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content type, got %q", ct)
	}
}

func TestHistoryHandlerReturnsStoredSeries(t *testing.T) {
	mem := setupUsageService(t, &fakeFetcher{})

	for i, day := range []string{"2025-06-13", "2025-06-14", "2025-06-15"} {
		snap := &core.UsageSnapshot{Day: day, CallsUsed: (i + 1) * 100, DailyLimit: 500000}
		payload, _ := core.EncodeSnapshot(snap)
		_ = mem.Put(context.Background(), core.Key(day), payload)
	}

	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	rec := httptest.NewRecorder()

	HistoryHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var series []core.UsageSnapshot
	if err := json.NewDecoder(rec.Body).Decode(&series); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("series length = %d, want 3", len(series))
	}
	if series[0].Day != "2025-06-13" || series[2].Day != "2025-06-15" {
		t.Fatalf("series not oldest-first: %v", series)
	}
}

func TestCurrentHandlerRequiresKey(t *testing.T) {
	fetcher := &fakeFetcher{snap: &core.UsageSnapshot{}}
	setupUsageService(t, fetcher)

	req := httptest.NewRequest(http.MethodGet, "/current", nil)
	rec := httptest.NewRecorder()

	CurrentHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "Missing key parameter" {
		t.Fatalf("expected missing-key body, got %q", got)
	}
	if fetcher.calls != 0 {
		t.Fatalf("expected no upstream call without key, got %d", fetcher.calls)
	}
}

func TestCurrentHandlerReturnsLiveSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{snap: &core.UsageSnapshot{
		Day:        "2025-06-15",
		CallsUsed:  1234,
		DailyLimit: 500000,
		CapturedAt: 1750000000000,
	}}
	mem := setupUsageService(t, fetcher)

	req := httptest.NewRequest(http.MethodGet, "/current?key=abc", nil)
	rec := httptest.NewRecorder()

	CurrentHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var snap core.UsageSnapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if snap.CallsUsed != 1234 {
		t.Fatalf("callsUsed = %d", snap.CallsUsed)
	}

	// Live reads never write.
	if mem.Len() != 0 {
		t.Fatalf("expected no store writes from /current, got %d entries", mem.Len())
	}
}

func TestSyncHandlerCapturesAndAcknowledges(t *testing.T) {
	fetcher := &fakeFetcher{snap: &core.UsageSnapshot{CallsUsed: 42, DailyLimit: 500000}}
	mem := setupUsageService(t, fetcher)

	req := httptest.NewRequest(http.MethodPost, "/sync?key=abc", nil)
	rec := httptest.NewRecorder()

	SyncHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "Synced" {
		t.Fatalf("expected Synced body, got %q", got)
	}
	if mem.Len() != 1 {
		t.Fatalf("expected one stored snapshot, got %d", mem.Len())
	}
}

func TestSyncHandlerRequiresKey(t *testing.T) {
	fetcher := &fakeFetcher{snap: &core.UsageSnapshot{}}
	mem := setupUsageService(t, fetcher)

	req := httptest.NewRequest(http.MethodPost, "/sync", nil)
	rec := httptest.NewRecorder()

	SyncHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if fetcher.calls != 0 || mem.Len() != 0 {
		t.Fatal("expected no fetch or write without key")
	}
}

func TestDailyCaptureHandlerCapturesAndAcknowledges(t *testing.T) {
	fetcher := &fakeFetcher{snap: &core.UsageSnapshot{CallsUsed: 42, DailyLimit: 500000}}
	mem := setupUsageService(t, fetcher)

	req := httptest.NewRequest(http.MethodPost, "/daily-capture?key=abc", nil)
	rec := httptest.NewRecorder()

	DailyCaptureHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "Daily usage captured" {
		t.Fatalf("expected capture acknowledgement, got %q", got)
	}
	if mem.Len() != 1 {
		t.Fatalf("expected one stored snapshot, got %d", mem.Len())
	}
}

func TestDailyCaptureHandlerUpstreamFailureIsServerError(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("%w: usage probe returned status 401", core.ErrUpstream)}
	mem := setupUsageService(t, fetcher)

	req := httptest.NewRequest(http.MethodPost, "/daily-capture?key=abc", nil)
	rec := httptest.NewRecorder()

	DailyCaptureHandler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if got := rec.Body.String(); !strings.HasPrefix(got, "Error: ") {
		t.Fatalf("expected Error: prefix on server failure, got %q", got)
	}
	if mem.Len() != 0 {
		t.Fatal("expected no write after failed fetch")
	}
}

func TestUsageHandlersAnswer503BeforeWiring(t *testing.T) {
	SetUsageService(nil)

	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	rec := httptest.NewRecorder()

	HistoryHandler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}
