package metrics

import (
	"time"

	"github.com/quotalens/quotalens/internal/observability"
)

// Application-level metrics following Prometheus conventions
var (
	// Capture pipeline metrics
	CapturesTotal    = "app_captures_total"
	SweepsTotal      = "app_sweeps_total"
	SweepLastRemoved = "app_sweep_last_removed"
	HistoryReadTotal = "app_history_reads_total"

	// Health check metrics
	HealthCheckTotal    = "app_health_check_total"
	HealthCheckDuration = "app_health_check_duration_ms"

	// Server lifecycle metrics
	ServerStartTime = "app_server_start_time_seconds"
	ServerUptime    = "app_server_uptime_seconds"
)

// RecordCapture records one capture attempt. Trigger distinguishes the
// scheduled path from HTTP and CLI triggers.
func RecordCapture(trigger string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			CapturesTotal,
			1,
			map[string]string{
				"trigger": trigger,
				"status":  status,
			},
		)
	}
}

// RecordSweep records one retention sweep and how many snapshots it deleted.
func RecordSweep(removed int) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			SweepsTotal,
			1,
			nil,
		)
		_ = observability.TelemetrySystem.Gauge(
			SweepLastRemoved,
			float64(removed),
			nil,
		)
	}
}

// RecordHistoryRead records a served history query.
func RecordHistoryRead() {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			HistoryReadTotal,
			1,
			nil,
		)
	}
}

// RecordHealthCheck records a health check execution
func RecordHealthCheck(checkName string, healthy bool, duration time.Duration) {
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			HealthCheckTotal,
			1,
			map[string]string{
				"check":  checkName,
				"status": status,
			},
		)

		_ = observability.TelemetrySystem.Histogram(
			HealthCheckDuration,
			duration,
			map[string]string{
				"check": checkName,
			},
		)
	}
}

// SetServerStartTime records the server start time (Unix timestamp)
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			ServerStartTime,
			float64(timestamp),
			nil,
		)
	}
}

// SetServerUptime records the server uptime in seconds
func SetServerUptime(seconds int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			ServerUptime,
			float64(seconds),
			nil,
		)
	}
}
