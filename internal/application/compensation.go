package application

import (
	"context"

	"valuelife/internal/domain"
	"valuelife/internal/domain/entities"
)

// CheckPair evaluates pairing eligibility at one node and reports whether
// a bonus was awarded. It exists as a public operation so callers can
// reconcile a node whose children activated through other paths; the
// activation flow calls the same logic internally.
func (s *NetworkService) CheckPair(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.nodes[id]
	if !ok {
		return false, domain.ErrParticipantNotFound
	}
	return s.checkPair(p), nil
}

// Recompute refreshes every node's subtree volumes and returns the
// network's total active count. Commands already recompute on write;
// this exists for callers that want an explicit reconciliation pass.
// An empty tree is a no-op returning zero.
func (s *NetworkService) Recompute(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recompute(s.rootID), nil
}

// checkPair grants the pairing bonus at most once per concrete
// (left id, right id) sibling pair. Both children must exist and be
// active; paidPairs is the double-payment guard. Caller holds the write
// lock.
func (s *NetworkService) checkPair(p *entities.Participant) bool {
	if p.LeftID == 0 || p.RightID == 0 {
		return false
	}
	left, right := s.nodes[p.LeftID], s.nodes[p.RightID]
	if !left.Active || !right.Active {
		return false
	}
	key := entities.PairKey(p.LeftID, p.RightID)
	if _, paid := p.PaidPairs[key]; paid {
		return false
	}
	p.PaidPairs[key] = struct{}{}
	p.PairCount++
	p.Earnings.Pair += s.pairBonus
	p.Earnings.Total = p.Earnings.Direct + p.Earnings.Pair
	return true
}

// recompute refreshes LeftVolume/RightVolume for the subtree rooted at id
// by post-order traversal and returns the subtree's active count.
//
// It deliberately does NOT derive pair earnings from min(left, right)
// volumes: checkPair's per-pair ledger is the canonical source of pair
// compensation, and overwriting it here would defeat the double-payment
// guard. Volumes are display data only.
func (s *NetworkService) recompute(id uint) int {
	if id == 0 {
		return 0
	}
	n := s.nodes[id]
	n.LeftVolume = s.recompute(n.LeftID)
	n.RightVolume = s.recompute(n.RightID)
	total := n.LeftVolume + n.RightVolume
	if n.Active {
		total++
	}
	return total
}
