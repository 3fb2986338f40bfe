// Package metrics provides observability for the verification agent.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks verification outcomes and latency. All methods are nil-safe
// so tests can pass a nil receiver.
type Metrics struct {
	VerificationOutcome *prometheus.CounterVec
	RuleOutcome         *prometheus.CounterVec
	VerifyLatency       prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		VerificationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "citizengate_verification_outcomes_total",
			Help: "Verification runs by service and verdict",
		}, []string{"service", "verdict"}),

		RuleOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "citizengate_verification_rule_outcomes_total",
			Help: "Individual rule outcomes by rule id and status",
		}, []string{"rule_id", "status"}),

		VerifyLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "citizengate_verification_duration_seconds",
			Help:    "Duration of a full verification run",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}
}

// IncrementOutcome records one verification verdict.
func (m *Metrics) IncrementOutcome(service, verdict string) {
	if m != nil {
		m.VerificationOutcome.WithLabelValues(service, verdict).Inc()
	}
}

// IncrementRule records one rule evaluation outcome.
func (m *Metrics) IncrementRule(ruleID, status string) {
	if m != nil {
		m.RuleOutcome.WithLabelValues(ruleID, status).Inc()
	}
}

// ObserveVerifyLatency records a full run's duration.
func (m *Metrics) ObserveVerifyLatency(d time.Duration) {
	if m != nil {
		m.VerifyLatency.Observe(d.Seconds())
	}
}
