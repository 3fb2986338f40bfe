package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Publisher records audit events. Appending to the store is synchronous and
// must succeed; fan-out to an external sink happens through a buffered outbox
// drained by a Worker, so a slow broker never stalls request handling.
type Publisher struct {
	store  Store
	outbox chan<- Event
	logger *slog.Logger
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithOutbox attaches the channel a Worker drains into an external sink.
func WithOutbox(outbox chan<- Event) Option {
	return func(p *Publisher) {
		p.outbox = outbox
	}
}

// WithLogger sets a logger for dropped-event reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit persists an event, assigning id and timestamp when unset. When an
// outbox is configured the event is also queued for the external sink;
// a full outbox drops the copy rather than blocking the caller.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	if p.outbox != nil {
		select {
		case p.outbox <- event:
		default:
			if p.logger != nil {
				p.logger.WarnContext(ctx, "audit outbox full, dropping sink copy",
					"action", event.Action,
					"user_id", event.UserID,
				)
			}
		}
	}
	return nil
}

// List returns a user's audit trail.
func (p *Publisher) List(ctx context.Context, userID string) ([]Event, error) {
	return p.store.ListByUser(ctx, userID)
}
