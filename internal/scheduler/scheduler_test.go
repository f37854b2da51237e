package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/fulmenhq/gofulmen/logging"

	"github.com/quotalens/quotalens/internal/core"
)

type stubRunner struct {
	calls       int
	credentials []string
	err         error
}

func (r *stubRunner) CaptureEndOfDay(ctx context.Context, credential string) (*core.UsageSnapshot, error) {
	r.calls++
	r.credentials = append(r.credentials, credential)
	if r.err != nil {
		return nil, r.err
	}
	return &core.UsageSnapshot{Day: "2025-06-15", CallsUsed: 100, DailyLimit: 500000}, nil
}

func newTestScheduler(t *testing.T, runner *stubRunner, credential string) *Scheduler {
	t.Helper()

	logger, err := logging.NewCLI("scheduler-test")
	if err != nil {
		t.Fatalf("create logger: %v", err)
	}

	return &Scheduler{
		Runner:     runner,
		Credential: func() string { return credential },
		Logger:     logger,
	}
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s := newTestScheduler(t, &stubRunner{}, "key")

	if err := s.Start("not a cron expression"); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestStartAndStop(t *testing.T) {
	s := newTestScheduler(t, &stubRunner{}, "key")

	if err := s.Start("55 8 * * *"); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Stop()
}

func TestStopBeforeStartIsSafe(t *testing.T) {
	s := newTestScheduler(t, &stubRunner{}, "key")
	s.Stop()
}

func TestFirePassesCredentialToRunner(t *testing.T) {
	runner := &stubRunner{}
	s := newTestScheduler(t, runner, "rotated-key")

	s.fire()

	if runner.calls != 1 {
		t.Fatalf("runner calls = %d, want 1", runner.calls)
	}
	if runner.credentials[0] != "rotated-key" {
		t.Fatalf("credential = %q", runner.credentials[0])
	}
}

func TestFireSkipsWithoutCredential(t *testing.T) {
	runner := &stubRunner{}
	s := newTestScheduler(t, runner, "")

	s.fire()

	if runner.calls != 0 {
		t.Fatalf("expected no capture without a credential, got %d calls", runner.calls)
	}
}

func TestFireSurvivesCaptureFailure(t *testing.T) {
	runner := &stubRunner{err: errors.New("upstream down")}
	s := newTestScheduler(t, runner, "key")

	s.fire()
	s.fire()

	if runner.calls != 2 {
		t.Fatalf("expected retry on next tick, got %d calls", runner.calls)
	}
}
