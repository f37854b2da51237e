// Package hubspot reads the daily rate-limit counters HubSpot attaches to
// every API response. A minimal contacts query (limit=1) is the cheapest call
// that carries the headers.
package hubspot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/quotalens/quotalens/internal/core"
)

const (
	// DefaultBaseURL is the production HubSpot API host.
	DefaultBaseURL = "https://api.hubapi.com"

	probePath = "/crm/v3/objects/contacts"

	// DefaultDailyLimit is the documented ceiling used when the upstream
	// response omits the total-quota header.
	DefaultDailyLimit = 500000
)

// Rate-limit headers on every HubSpot API response.
const (
	headerDailyLimit     = "X-HubSpot-RateLimit-Daily"
	headerDailyRemaining = "X-HubSpot-RateLimit-Daily-Remaining"
)

// Client fetches the current usage snapshot from HubSpot. Zero value works
// against production; tests override BaseURL, HTTPClient, and Clock.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Clock      func() time.Time
}

// FetchCurrentUsage performs a single read-only probe and extracts the daily
// usage counters. A missing remaining-quota header counts as zero remaining
// (maximally conservative); a missing total-quota header falls back to
// DefaultDailyLimit. No data-quality validation is applied to the derived
// value — malformed upstream numbers propagate as-is.
func (c *Client) FetchCurrentUsage(ctx context.Context, credential string) (*core.UsageSnapshot, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, errors.New("credential is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	reqURL := c.baseURL().ResolveReference(&url.URL{
		Path:     probePath,
		RawQuery: "limit=1",
	}).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build usage probe: %v", core.ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: usage probe: %v", core.ErrUpstream, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: usage probe returned status %d", core.ErrUpstream, resp.StatusCode)
	}

	dailyLimit := headerInt(resp, headerDailyLimit, DefaultDailyLimit)
	remaining := headerInt(resp, headerDailyRemaining, 0)

	now := c.now()
	return &core.UsageSnapshot{
		Day:        core.BusinessDay(now),
		CallsUsed:  dailyLimit - remaining,
		DailyLimit: dailyLimit,
		CapturedAt: now.UnixMilli(),
	}, nil
}

func (c *Client) baseURL() *url.URL {
	if c != nil && c.BaseURL != "" {
		if parsed, err := url.Parse(c.BaseURL); err == nil {
			return parsed
		}
	}
	parsed, _ := url.Parse(DefaultBaseURL)
	return parsed
}

func (c *Client) now() time.Time {
	if c != nil && c.Clock != nil {
		return c.Clock()
	}
	return time.Now().UTC()
}

func headerInt(resp *http.Response, name string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get(name)))
	if err != nil {
		return fallback
	}
	return value
}
