package campusfound

import (
	"sync/atomic"

	"github.com/campusfound/campusfound-go/apierror"
)

// MetricID names one SDK counter.
type MetricID uint8

const (
	// MetricRequestsSent counts outbound pipeline requests.
	MetricRequestsSent MetricID = iota
	// MetricRequestsFailed counts classified pipeline failures of any type.
	MetricRequestsFailed
	// MetricRetries counts retry attempts beyond a call's first try.
	MetricRetries
	// MetricLoginSuccess counts committed logins.
	MetricLoginSuccess
	// MetricLoginFailure counts rejected logins.
	MetricLoginFailure
	// MetricLogout counts explicit logouts.
	MetricLogout
	// MetricSessionInvalidated counts forced terminations from HTTP 401.
	MetricSessionInvalidated
	// MetricLegacyMigrations counts legacy-layout records migrated at init.
	MetricLegacyMigrations

	metricCount
)

// Metrics is a fixed set of in-process atomic counters. It exists for
// embedding applications that want cheap visibility without an external
// metrics registry; Snapshot copies are safe to hand out.
type Metrics struct {
	counters [metricCount]atomic.Uint64
	byType   [8]atomic.Uint64
}

// NewMetrics returns a zeroed counter set.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Inc adds one to the counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// MetricsSnapshot is a point-in-time copy of every counter.
type MetricsSnapshot struct {
	Counters       map[MetricID]uint64
	FailuresByType map[apierror.Type]uint64
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Counters:       make(map[MetricID]uint64, metricCount),
		FailuresByType: make(map[apierror.Type]uint64),
	}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	for t := range m.byType {
		if v := m.byType[t].Load(); v > 0 {
			snap.FailuresByType[apierror.Type(t)] = v
		}
	}
	return snap
}

// RequestSent implements transport.Recorder.
func (m *Metrics) RequestSent() { m.Inc(MetricRequestsSent) }

// RequestFailed implements transport.Recorder.
func (m *Metrics) RequestFailed(t apierror.Type) {
	m.Inc(MetricRequestsFailed)
	if m != nil && int(t) < len(m.byType) {
		m.byType[t].Add(1)
	}
}

// RetryAttempted implements transport.Recorder.
func (m *Metrics) RetryAttempted() { m.Inc(MetricRetries) }

// SessionInvalidated implements transport.Recorder.
func (m *Metrics) SessionInvalidated() { m.Inc(MetricSessionInvalidated) }
