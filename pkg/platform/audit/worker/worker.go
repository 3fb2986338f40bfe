// Package worker drains the audit outbox into an external sink.
package worker

import (
	"context"
	"log/slog"

	audit "citizengate/pkg/platform/audit"
	"citizengate/pkg/platform/circuit"
)

// Sink is anything that can receive an audit event (e.g. a Kafka producer).
type Sink interface {
	Publish(ctx context.Context, event audit.Event) error
}

// probeEvery is how many events are skipped between probes while the
// breaker is open.
const probeEvery = 10

// Worker consumes audit events from a channel and hands them to the sink.
// A circuit breaker guards the sink: after repeated publish failures the
// worker stops hammering the broker and only probes every probeEvery
// events. Dropped events are not retried; the store copy made by the
// Publisher remains the durable record.
type Worker struct {
	sink    Sink
	inbox   <-chan audit.Event
	logger  *slog.Logger
	breaker *circuit.Breaker
	skipped int
}

func New(sink Sink, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	return &Worker{
		sink:   sink,
		inbox:  inbox,
		logger: logger,
		breaker: circuit.New("audit-sink",
			circuit.WithFailureThreshold(5),
			circuit.WithSuccessThreshold(2),
		),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			w.deliver(ctx, event)
		}
	}
}

func (w *Worker) deliver(ctx context.Context, event audit.Event) {
	if w.breaker.IsOpen() {
		w.skipped++
		if w.skipped%probeEvery != 0 {
			return
		}
	}

	if err := w.sink.Publish(ctx, event); err != nil {
		_, change := w.breaker.RecordFailure()
		if change.Opened {
			w.logger.ErrorContext(ctx, "audit sink unhealthy, circuit opened",
				"breaker", w.breaker.Name(),
				"error", err,
			)
		} else if !w.breaker.IsOpen() {
			w.logger.ErrorContext(ctx, "audit sink publish failed",
				"action", event.Action,
				"user_id", event.UserID,
				"error", err,
			)
		}
		return
	}

	_, change := w.breaker.RecordSuccess()
	if change.Closed {
		w.logger.InfoContext(ctx, "audit sink recovered, circuit closed",
			"breaker", w.breaker.Name(),
			"skipped", w.skipped,
		)
		w.skipped = 0
	}
}
