// Package scheduler runs the embedded daily capture trigger. Deployments
// that drive /daily-capture from an external scheduler disable it via
// capture.enabled=false.
package scheduler

import (
	"context"
	"time"

	"github.com/fulmenhq/gofulmen/logging"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/quotalens/quotalens/internal/core"
	"github.com/quotalens/quotalens/internal/metrics"
)

// CaptureRunner is the slice of CaptureService the scheduler needs.
type CaptureRunner interface {
	CaptureEndOfDay(ctx context.Context, credential string) (*core.UsageSnapshot, error)
}

// Scheduler fires one capture per day on a cron schedule evaluated in the
// upstream reset timezone, so "55 8 * * *" lands five minutes before the
// counters reset regardless of where the service runs.
type Scheduler struct {
	Runner CaptureRunner

	// Credential returns the upstream API key at fire time, so a config
	// reload picks up a rotated key without a restart.
	Credential func() string

	Logger *logging.Logger

	cron *cron.Cron
}

// Start parses the schedule and begins firing. The returned error covers
// schedule parsing only; capture failures at fire time are logged and the
// next tick retries.
func (s *Scheduler) Start(schedule string) error {
	loc := time.FixedZone("CST", core.ResetZoneOffsetMinutes*60)
	s.cron = cron.New(cron.WithLocation(loc))

	_, err := s.cron.AddFunc(schedule, s.fire)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.Logger.Info("Daily capture scheduler started",
		zap.String("schedule", schedule),
		zap.String("timezone", loc.String()))
	return nil
}

// Stop halts the schedule and waits for an in-flight capture to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) fire() {
	credential := s.Credential()
	if credential == "" {
		s.Logger.Error("Scheduled capture skipped: no upstream API key configured")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	snap, err := s.Runner.CaptureEndOfDay(ctx, credential)
	metrics.RecordCapture("scheduled", err == nil)
	if err != nil {
		s.Logger.Error("Scheduled capture failed", zap.Error(err))
		return
	}

	s.Logger.Info("Daily usage captured via scheduled trigger",
		zap.String("day", snap.Day),
		zap.Int("calls_used", snap.CallsUsed),
		zap.Int("daily_limit", snap.DailyLimit))
}
