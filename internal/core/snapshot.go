package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// KeyPrefix namespaces usage snapshots inside the key-value store so they
// never collide with other data the backend might hold.
const KeyPrefix = "usage:"

// UsageSnapshot is one immutable record of upstream API usage counters for a
// single business day. JSON field names match the persisted layout consumed
// by the dashboard (`date`, `callsUsed`, `dailyLimit`, `timestamp`).
type UsageSnapshot struct {
	// Day is the canonical business day identifier in ISO YYYY-MM-DD form.
	// String comparison of two Day values equals chronological comparison;
	// the retention cutoff relies on this.
	Day string `json:"date"`

	// CallsUsed is dailyLimit minus the remaining quota reported upstream.
	CallsUsed int `json:"callsUsed"`

	// DailyLimit is the upstream daily call ceiling.
	DailyLimit int `json:"dailyLimit"`

	// CapturedAt is the capture instant in epoch milliseconds. Informational
	// only; bucketing uses Day.
	CapturedAt int64 `json:"timestamp"`
}

// Key returns the store key for a business day.
func Key(day string) string {
	return KeyPrefix + day
}

// DayFromKey extracts the day identifier from a store key.
func DayFromKey(key string) (string, bool) {
	day, ok := strings.CutPrefix(key, KeyPrefix)
	if !ok || day == "" {
		return "", false
	}
	return day, true
}

// EncodeSnapshot serializes a snapshot for storage.
func EncodeSnapshot(snap *UsageSnapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is required")
	}
	return json.Marshal(snap)
}

// DecodeSnapshot deserializes a stored snapshot.
func DecodeSnapshot(raw []byte) (*UsageSnapshot, error) {
	var snap UsageSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}
