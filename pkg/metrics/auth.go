package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Auth outcomes recorded by the auth service.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// AuthMetrics counts authentication attempts by operation and outcome.
type AuthMetrics struct {
	attempts *prometheus.CounterVec
}

// NewAuthMetrics registers the auth counters on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	if reg == nil {
		return &AuthMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Authentication attempts by operation and outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(attempts)
	return &AuthMetrics{attempts: attempts}
}

// Observe increments the counter for operation/outcome.
func (a *AuthMetrics) Observe(operation, outcome string) {
	if a == nil || a.attempts == nil {
		return
	}
	a.attempts.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
