// Package health polls system health once per authenticated session and
// exposes a tri-state status for the indicator badge.
package health

import (
	"go.uber.org/zap"

	"github.com/agrofinder/agrofinder/internal/api"
	"github.com/agrofinder/agrofinder/internal/session"
)

// healthySentinel is the only status string the service returns that
// counts as healthy; every other value degrades the badge.
const healthySentinel = "healthy"

// Status is the tri-state health indicator.
type Status int

const (
	// StatusChecking is the initial value on every authenticated
	// session start.
	StatusChecking Status = iota
	StatusHealthy
	StatusUnhealthy
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusHealthy:
		return "healthy"
	default:
		return "unhealthy"
	}
}

// Monitor owns the health state. The check runs exactly once per
// authenticated session; failures degrade the indicator only and never
// block search or upload.
type Monitor struct {
	gate    *session.Gate
	log     *zap.Logger
	status  Status
	info    *api.HealthResponse
	started bool
}

// NewMonitor creates a monitor gated on the session. Logout resets it
// so the next session starts at Checking again.
func NewMonitor(gate *session.Gate, log *zap.Logger) *Monitor {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Monitor{gate: gate, log: log, status: StatusChecking}
	gate.OnLogout(m.Reset)
	return m
}

// Begin starts the once-per-session check. It reports whether the
// caller should actually issue the health request: false when the
// session is unauthenticated or a check already ran this session.
func (m *Monitor) Begin() bool {
	if !m.gate.Authenticated() || m.started {
		return false
	}
	m.started = true
	m.status = StatusChecking
	return true
}

// Resolve applies the health response or its failure.
func (m *Monitor) Resolve(resp *api.HealthResponse, err error) {
	if err != nil {
		// Degraded indicator only, never surfaced as a blocking error.
		m.log.Warn("health check failed", zap.Error(err))
		m.status = StatusUnhealthy
		m.info = nil
		return
	}
	m.info = resp
	if resp.Status == healthySentinel {
		m.status = StatusHealthy
	} else {
		m.status = StatusUnhealthy
	}
	m.log.Info("health check completed",
		zap.String("status", resp.Status),
		zap.String("vector_db", resp.VectorDB),
		zap.Int("total_vectors", resp.TotalVectors))
}

// Reset returns the monitor to its initial state.
func (m *Monitor) Reset() {
	m.status = StatusChecking
	m.info = nil
	m.started = false
}

// Status returns the current tri-state status.
func (m *Monitor) Status() Status {
	return m.status
}

// Info returns the last successful health response, or nil.
func (m *Monitor) Info() *api.HealthResponse {
	return m.info
}
