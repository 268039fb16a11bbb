package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"valuelife/internal/domain/entities"
	"valuelife/internal/ports/output"
)

var _ output.EventLog = (*EventLog)(nil)

// EventLog implements output.EventLog on PostgreSQL. A bigserial seq
// column preserves append order across restarts.
type EventLog struct {
	pool *pgxpool.Pool
}

// NewEventLog creates an EventLog.
func NewEventLog(pool *pgxpool.Pool) *EventLog {
	return &EventLog{pool: pool}
}

func (l *EventLog) Append(ctx context.Context, event entities.AuditEvent) error {
	_, err := l.pool.Exec(ctx,
		`INSERT INTO audit_events (id, kind, message, occurred_at) VALUES ($1, $2, $3, $4)`,
		event.ID, event.Kind, event.Message,
		pgtype.Timestamptz{Time: event.OccurredAt, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (l *EventLog) List(ctx context.Context) ([]entities.AuditEvent, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT id, kind, message, occurred_at FROM audit_events ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("select audit events: %w", err)
	}
	defer rows.Close()

	var out []entities.AuditEvent
	for rows.Next() {
		var (
			event      entities.AuditEvent
			occurredAt pgtype.Timestamptz
		)
		if err := rows.Scan(&event.ID, &event.Kind, &event.Message, &occurredAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.OccurredAt = pgtypeToTime(occurredAt)
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return out, nil
}
