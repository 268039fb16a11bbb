package entities

import "time"

// Audit event kinds.
const (
	EventRoot        = "root"
	EventPlacement   = "placement"
	EventDirectBonus = "direct_bonus"
	EventActivation  = "activation"
	EventPairBonus   = "pair_bonus"
)

// AuditEvent is one line of the append-only audit trail. Message is the
// human-readable record; Kind exists so stores and metrics can classify
// entries without parsing it.
type AuditEvent struct {
	ID         string
	Kind       string
	Message    string
	OccurredAt time.Time
}
