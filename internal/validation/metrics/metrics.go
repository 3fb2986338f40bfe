// Package metrics provides observability for the profile validator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks validation outcomes. Nil-safe.
type Metrics struct {
	ValidationOutcome *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		ValidationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "citizengate_validation_outcomes_total",
			Help: "Validation runs by service and verdict",
		}, []string{"service", "verdict"}),
	}
}

// IncrementOutcome records one validation verdict.
func (m *Metrics) IncrementOutcome(service, verdict string) {
	if m != nil {
		m.ValidationOutcome.WithLabelValues(service, verdict).Inc()
	}
}
