package output

import (
	"context"

	"valuelife/internal/domain/entities"
)

// EventLog is the append-only audit trail. Entries are never mutated or
// reordered after append; List returns them in append order.
type EventLog interface {
	Append(ctx context.Context, event entities.AuditEvent) error
	List(ctx context.Context) ([]entities.AuditEvent, error)
}
