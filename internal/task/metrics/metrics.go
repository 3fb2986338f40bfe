// Package metrics provides observability for the task engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks task lifecycle transitions and the creation gate. Nil-safe.
type Metrics struct {
	Transitions *prometheus.CounterVec
	GateOutcome *prometheus.CounterVec
	GateLatency prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "citizengate_task_transitions_total",
			Help: "Task state transitions by service and transition",
		}, []string{"service", "transition"}),

		GateOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "citizengate_task_gate_outcomes_total",
			Help: "Gated creation outcomes by service and result",
		}, []string{"service", "result"}),

		GateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "citizengate_task_gate_duration_seconds",
			Help:    "Duration of the gated creation path including both checks",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementTransition records one lifecycle transition.
func (m *Metrics) IncrementTransition(service, transition string) {
	if m != nil {
		m.Transitions.WithLabelValues(service, transition).Inc()
	}
}

// IncrementGate records one gated creation outcome.
func (m *Metrics) IncrementGate(service, result string) {
	if m != nil {
		m.GateOutcome.WithLabelValues(service, result).Inc()
	}
}

// ObserveGateLatency records the gate path duration.
func (m *Metrics) ObserveGateLatency(d time.Duration) {
	if m != nil {
		m.GateLatency.Observe(d.Seconds())
	}
}
