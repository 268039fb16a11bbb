package application

import (
	"context"
	"fmt"
	"time"

	"valuelife/internal/domain"
	"valuelife/internal/domain/entities"
	"valuelife/internal/observability"
)

// MarkActive flips a participant to active, exactly once. On success it
// evaluates pairing eligibility at the placement parent (the only place
// a pairing bonus is ever granted) and refreshes subtree volumes for the
// whole tree before returning.
//
// An already-active participant is a benign no-op: the returned event
// slice is empty and the error is domain.ErrAlreadyActive so callers can
// tell "nothing changed" apart from success.
func (s *NetworkService) MarkActive(ctx context.Context, id uint) ([]entities.AuditEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.nodes[id]
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	if p.Active {
		return nil, domain.ErrAlreadyActive
	}

	p.Active = true
	p.ActivatedAt = time.Now()
	observability.Engine().ActivationRecorded()

	events := []entities.AuditEvent{
		s.record(ctx, entities.EventActivation, fmt.Sprintf("%s activated", p.Name)),
	}

	changed := []*entities.Participant{p}
	if p.ParentID != 0 {
		parent := s.nodes[p.ParentID]
		if s.checkPair(parent) {
			left, right := s.nodes[parent.LeftID], s.nodes[parent.RightID]
			events = append(events, s.record(ctx, entities.EventPairBonus,
				fmt.Sprintf("pairing bonus awarded to %s for left: %s and right: %s",
					parent.Name, left.Name, right.Name)))
			observability.Engine().PairBonusRecorded()
			changed = append(changed, parent)
		}
	}

	// Derived volumes must be fresh before the next read.
	s.recompute(s.rootID)

	s.persist(ctx, changed...)
	return events, nil
}
