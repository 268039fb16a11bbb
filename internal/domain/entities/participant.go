package entities

import (
	"fmt"
	"time"
)

// Side identifies one of the two child slots of a binary-tree node.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Earnings accumulates a participant's compensation. Total is always
// Direct + Pair; the engine recomputes it after every award.
type Earnings struct {
	Direct int64
	Pair   int64
	Total  int64
}

// Participant is a node of the binary placement tree. SponsorID records
// who referred the participant; ParentID/Side record where spillover
// actually placed them. The two may differ.
//
// A zero ID in ParentID, LeftID or RightID means "none": the root has no
// parent and an unfilled slot has no child. Slots are set once and never
// reassigned.
type Participant struct {
	ID        uint
	Name      string
	SponsorID uint
	ParentID  uint
	Side      Side

	LeftID  uint
	RightID uint

	Active              bool
	DirectReferralCount int
	PairCount           int
	Earnings            Earnings

	// Active-node counts per subtree, refreshed by the recompute pass.
	LeftVolume  int
	RightVolume int

	// Sibling pairs already compensated, keyed by PairKey. Guards the
	// pairing bonus against double payment.
	PaidPairs map[string]struct{}

	CreatedAt   time.Time
	ActivatedAt time.Time
}

// PairKey builds the canonical identifier for a sibling pair,
// left id first.
func PairKey(leftID, rightID uint) string {
	return fmt.Sprintf("%d-%d", leftID, rightID)
}

// OpenSide reports the first unfilled child slot, left before right.
func (p *Participant) OpenSide() (Side, bool) {
	if p.LeftID == 0 {
		return SideLeft, true
	}
	if p.RightID == 0 {
		return SideRight, true
	}
	return "", false
}

// Clone returns a deep copy, so readers never share mutable state with
// the engine.
func (p *Participant) Clone() *Participant {
	c := *p
	c.PaidPairs = make(map[string]struct{}, len(p.PaidPairs))
	for k := range p.PaidPairs {
		c.PaidPairs[k] = struct{}{}
	}
	return &c
}

// TreeNode is the nested read model returned by tree queries.
type TreeNode struct {
	Participant Participant
	Left        *TreeNode
	Right       *TreeNode
}

// NetworkStats aggregates the whole network for dashboards.
type NetworkStats struct {
	Participants int
	Active       int
	PairsFormed  int
	DirectPaid   int64
	PairPaid     int64
	TotalPaid    int64
}
