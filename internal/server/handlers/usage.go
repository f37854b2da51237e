package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fulmenhq/gofulmen/errors"

	"github.com/quotalens/quotalens/internal/core"
	apperrors "github.com/quotalens/quotalens/internal/errors"
	"github.com/quotalens/quotalens/internal/metrics"
)

// UsageService bundles the capture and read paths the usage endpoints need.
// The serve command wires it up once the store and upstream client exist.
type UsageService struct {
	Capture *core.CaptureService
	Fetcher core.UsageFetcher
	History *core.HistoryReader

	// WindowDays bounds the series returned by /data.
	WindowDays int
}

var usageService *UsageService

// SetUsageService injects the wired service. Handlers answer 503 until it is set.
func SetUsageService(svc *UsageService) {
	usageService = svc
}

func getUsageService(w http.ResponseWriter, r *http.Request) *UsageService {
	if usageService == nil {
		envelope := errors.NewErrorEnvelope("SERVICE_UNAVAILABLE", "usage service not initialized")
		respondWithError(w, r, envelope)
		return nil
	}
	return usageService
}

// requireKey extracts the upstream API credential from the query string.
// Returns false after writing the 400 response when it is absent — no
// upstream or store call happens without a credential.
func requireKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := r.URL.Query().Get("key")
	if key == "" {
		respondWithError(w, r, apperrors.NewInvalidInputError("Missing key parameter"))
		return "", false
	}
	return key, true
}

// HistoryHandler serves GET /data: the stored daily series, oldest first.
// Days without a snapshot are omitted; an empty store yields [].
func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	svc := getUsageService(w, r)
	if svc == nil {
		return
	}

	series, err := svc.History.History(r.Context(), svc.WindowDays)
	if err != nil {
		respondWithError(w, r, apperrors.FromDomain(r.Context(), err))
		return
	}
	metrics.RecordHistoryRead()
	if series == nil {
		series = []core.UsageSnapshot{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(series)
}

// CurrentHandler serves GET /current: a live read of today's counters.
// Nothing is written to the store.
func CurrentHandler(w http.ResponseWriter, r *http.Request) {
	svc := getUsageService(w, r)
	if svc == nil {
		return
	}

	key, ok := requireKey(w, r)
	if !ok {
		return
	}

	snap, err := svc.Fetcher.FetchCurrentUsage(r.Context(), key)
	if err != nil {
		respondWithError(w, r, apperrors.FromDomain(r.Context(), err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(snap)
}

// SyncHandler serves /sync: a manual capture into the store. Kept for
// callers that predate /daily-capture; both run the same capture.
func SyncHandler(w http.ResponseWriter, r *http.Request) {
	svc := getUsageService(w, r)
	if svc == nil {
		return
	}

	key, ok := requireKey(w, r)
	if !ok {
		return
	}

	_, err := svc.Capture.CaptureEndOfDay(r.Context(), key)
	metrics.RecordCapture("http", err == nil)
	if err != nil {
		respondWithError(w, r, apperrors.FromDomain(r.Context(), err))
		return
	}

	writePlain(w, "Synced")
}

// DailyCaptureHandler serves /daily-capture: the once-a-day capture that
// external schedulers hit shortly before the upstream counters reset.
func DailyCaptureHandler(w http.ResponseWriter, r *http.Request) {
	svc := getUsageService(w, r)
	if svc == nil {
		return
	}

	key, ok := requireKey(w, r)
	if !ok {
		return
	}

	_, err := svc.Capture.CaptureEndOfDay(r.Context(), key)
	metrics.RecordCapture("http", err == nil)
	if err != nil {
		respondWithError(w, r, apperrors.FromDomain(r.Context(), err))
		return
	}

	writePlain(w, "Daily usage captured")
}

func writePlain(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
