package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"valuelife/internal/domain"
	"valuelife/internal/domain/entities"
	"valuelife/internal/observability"
)

// AddParticipant places a new participant into the tree using spillover
// placement and immediately pays the placement parent its direct bonus,
// regardless of the newcomer's activation status.
//
// Validation happens before any mutation, so a failed call leaves the
// tree, ledger and audit log untouched.
func (s *NetworkService) AddParticipant(ctx context.Context, sponsorID uint, name string) (*entities.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sponsor, ok := s.nodes[sponsorID]
	if !ok {
		return nil, domain.ErrSponsorNotFound
	}
	if s.maxParticipants > 0 && len(s.nodes) >= s.maxParticipants {
		return nil, domain.ErrTreeFull
	}
	parent, side, err := s.findSlot(sponsor)
	if err != nil {
		return nil, err
	}

	p := &entities.Participant{
		ID:        s.nextID,
		Name:      name,
		SponsorID: sponsorID,
		ParentID:  parent.ID,
		Side:      side,
		PaidPairs: make(map[string]struct{}),
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.nodes[p.ID] = p
	s.order = append(s.order, p.ID)
	if side == entities.SideLeft {
		parent.LeftID = p.ID
	} else {
		parent.RightID = p.ID
	}

	// Direct bonus is credited at placement time, to the placement
	// parent rather than the sponsor. Inherited behavior; see DESIGN.md.
	parent.DirectReferralCount++
	parent.Earnings.Direct += s.directBonus
	parent.Earnings.Total = parent.Earnings.Direct + parent.Earnings.Pair

	s.record(ctx, entities.EventPlacement,
		fmt.Sprintf("%s added under %s on %s", p.Name, parent.Name, side))
	s.record(ctx, entities.EventDirectBonus,
		fmt.Sprintf("direct bonus of %d awarded to %s for %s", s.directBonus, parent.Name, p.Name))
	observability.Engine().PlacementRecorded()
	observability.Engine().DirectBonusRecorded()

	s.persist(ctx, p, parent)
	return p.Clone(), nil
}

// findSlot resolves spillover placement: the sponsor's own first open
// slot wins; otherwise the first open slot in breadth-first, left-first
// order from the root. The exhaustion branch is unreachable on an
// unbounded binary tree but remains a defined outcome.
func (s *NetworkService) findSlot(sponsor *entities.Participant) (*entities.Participant, entities.Side, error) {
	if side, ok := sponsor.OpenSide(); ok {
		return sponsor, side, nil
	}
	queue := []uint{s.rootID}
	for len(queue) > 0 {
		n := s.nodes[queue[0]]
		queue = queue[1:]
		if side, ok := n.OpenSide(); ok {
			return n, side, nil
		}
		queue = append(queue, n.LeftID, n.RightID)
	}
	return nil, "", domain.ErrTreeFull
}
