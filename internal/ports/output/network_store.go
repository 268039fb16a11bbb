package output

import (
	"context"

	"valuelife/internal/domain/entities"
)

// NetworkStore persists participant rows so the engine can rehydrate its
// tree on boot. The in-memory engine stays authoritative: a store failure
// is reported to the caller but never rolls back engine state.
type NetworkStore interface {
	// SaveParticipant inserts or updates one participant row.
	SaveParticipant(ctx context.Context, p *entities.Participant) error
	// LoadParticipants returns all rows in ascending ID order, which is
	// also insertion order since IDs are assigned sequentially.
	LoadParticipants(ctx context.Context) ([]entities.Participant, error)
}
