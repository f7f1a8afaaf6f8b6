package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AuditMetrics exposes the audit trail side-channel. Appends never fail the
// primary operation, so the counters are the only place failures surface.
type AuditMetrics struct {
	appended *prometheus.CounterVec
	failed   prometheus.Counter
	dropped  prometheus.Counter
}

// NewAuditMetrics registers the audit counters on the provided registerer.
func NewAuditMetrics(reg prometheus.Registerer) *AuditMetrics {
	if reg == nil {
		return &AuditMetrics{}
	}
	appended := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_entries_appended_total",
		Help: "Audit trail entries appended, by action.",
	}, []string{"action"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_append_failures_total",
		Help: "Audit trail appends that failed and were discarded.",
	})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_entries_dropped_total",
		Help: "Audit trail entries dropped because the queue was full.",
	})
	reg.MustRegister(appended, failed, dropped)
	return &AuditMetrics{
		appended: appended,
		failed:   failed,
		dropped:  dropped,
	}
}

// IncAppended counts a successful append for the given action.
func (m *AuditMetrics) IncAppended(action string) {
	if m == nil || m.appended == nil {
		return
	}
	m.appended.WithLabelValues(action).Inc()
}

// IncFailed counts a swallowed append failure.
func (m *AuditMetrics) IncFailed() {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.Inc()
}

// IncDropped counts an entry rejected by a full queue.
func (m *AuditMetrics) IncDropped() {
	if m == nil || m.dropped == nil {
		return
	}
	m.dropped.Inc()
}
