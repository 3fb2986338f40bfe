package audit

import (
	"context"
	"database/sql"
	"fmt"

	txcontext "citizengate/pkg/platform/tx"
)

// PostgresStore persists audit events in the audit_events table. Rows are
// append-only and queried newest first. Appends join a caller's transaction
// when one is in the context.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	query := `
		INSERT INTO audit_events (
			id, timestamp, user_id, action, service_type,
			task_id, decision, reason, request_id, client_ip
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.execer(ctx).ExecContext(ctx, query,
		event.ID,
		event.Timestamp,
		event.UserID,
		string(event.Action),
		event.ServiceType,
		event.TaskID,
		event.Decision,
		event.Reason,
		event.RequestID,
		event.ClientIP,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]Event, error) {
	query := `
		SELECT id, timestamp, user_id, action, service_type,
			   task_id, decision, reason, request_id, client_ip
		FROM audit_events
		WHERE user_id = $1
		ORDER BY timestamp DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			event  Event
			action string
		)
		err := rows.Scan(
			&event.ID,
			&event.Timestamp,
			&event.UserID,
			&action,
			&event.ServiceType,
			&event.TaskID,
			&event.Decision,
			&event.Reason,
			&event.RequestID,
			&event.ClientIP,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Action = Action(action)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
