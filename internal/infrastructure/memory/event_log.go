package memory

import (
	"context"
	"sync"

	"valuelife/internal/domain/entities"
	"valuelife/internal/ports/output"
)

var _ output.EventLog = (*EventLog)(nil)

// EventLog is the in-memory audit trail used when no database is
// configured, and by tests. Append-only; entries are never reordered.
type EventLog struct {
	mu     sync.RWMutex
	events []entities.AuditEvent
}

// NewEventLog creates an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

func (l *EventLog) Append(ctx context.Context, event entities.AuditEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

func (l *EventLog) List(ctx context.Context) ([]entities.AuditEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]entities.AuditEvent, len(l.events))
	copy(out, l.events)
	return out, nil
}
