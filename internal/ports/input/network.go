package input

import (
	"context"

	"valuelife/internal/domain/entities"
)

// NetworkUseCase is the command/query surface of the compensation engine
// consumed by the Discord and HTTP adapters.
type NetworkUseCase interface {
	// AddParticipant places a new participant under sponsorID using
	// spillover placement and pays the placement parent its direct bonus.
	AddParticipant(ctx context.Context, sponsorID uint, name string) (*entities.Participant, error)
	// MarkActive flips a participant to active and returns the audit
	// events the activation produced. An already-active participant
	// yields domain.ErrAlreadyActive with no state change.
	MarkActive(ctx context.Context, id uint) ([]entities.AuditEvent, error)

	GetParticipant(ctx context.Context, id uint) (*entities.Participant, error)
	ListParticipants(ctx context.Context) ([]entities.Participant, error)
	GetTree(ctx context.Context) (*entities.TreeNode, error)
	ListEvents(ctx context.Context) ([]entities.AuditEvent, error)
	Stats(ctx context.Context) (entities.NetworkStats, error)
}
