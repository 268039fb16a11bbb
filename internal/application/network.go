package application

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"valuelife/internal/domain"
	"valuelife/internal/domain/entities"
	"valuelife/internal/ports/input"
	"valuelife/internal/ports/output"
)

// Ensure NetworkService implements the input port.
var _ input.NetworkUseCase = (*NetworkService)(nil)

// Config carries the engine's tunables and collaborators.
type Config struct {
	// Flat bonus units. DirectBonus goes to the placement parent on
	// placement; PairBonus goes to a node when a sibling pair forms.
	DirectBonus int64
	PairBonus   int64
	// MaxParticipants caps the tree size; 0 means unlimited.
	MaxParticipants int

	Events output.EventLog
	// Store is optional; nil disables persistence.
	Store output.NetworkStore
}

// NetworkService owns the binary placement tree and the compensation
// ledger. All mutations take the write lock, so a command is a single
// atomic transition from any reader's perspective; subtree volumes are
// recomputed before the lock is released.
type NetworkService struct {
	mu     sync.RWMutex
	nodes  map[uint]*entities.Participant
	order  []uint
	rootID uint
	nextID uint

	directBonus     int64
	pairBonus       int64
	maxParticipants int

	events output.EventLog
	store  output.NetworkStore
}

// NewNetworkService creates an empty engine. Call Restore and/or
// Bootstrap before serving commands.
func NewNetworkService(cfg Config) *NetworkService {
	return &NetworkService{
		nodes:           make(map[uint]*entities.Participant),
		nextID:          1,
		directBonus:     cfg.DirectBonus,
		pairBonus:       cfg.PairBonus,
		maxParticipants: cfg.MaxParticipants,
		events:          cfg.Events,
		store:           cfg.Store,
	}
}

// Bootstrap creates the network root as an already-active participant.
// It is idempotent: on a non-empty tree it returns the existing root.
func (s *NetworkService) Bootstrap(ctx context.Context, rootName string) (*entities.Participant, error) {
	rootName = strings.TrimSpace(rootName)
	if rootName == "" {
		return nil, domain.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rootID != 0 {
		return s.nodes[s.rootID].Clone(), nil
	}

	now := time.Now()
	root := &entities.Participant{
		ID:          s.nextID,
		Name:        rootName,
		Active:      true,
		PaidPairs:   make(map[string]struct{}),
		CreatedAt:   now,
		ActivatedAt: now,
	}
	s.nextID++
	s.rootID = root.ID
	s.nodes[root.ID] = root
	s.order = append(s.order, root.ID)

	s.record(ctx, entities.EventRoot, fmt.Sprintf("%s created as network root", root.Name))
	s.persist(ctx, root)
	return root.Clone(), nil
}

// Restore rehydrates the tree from the store and returns the number of
// participants loaded. Volumes are recomputed rather than trusted from
// the rows. A nil store restores nothing.
func (s *NetworkService) Restore(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, nil
	}
	rows, err := s.store.LoadParticipants(ctx)
	if err != nil {
		return 0, fmt.Errorf("load participants: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = make(map[uint]*entities.Participant, len(rows))
	s.order = make([]uint, 0, len(rows))
	s.rootID = 0
	s.nextID = 1
	for i := range rows {
		p := rows[i].Clone()
		if p.PaidPairs == nil {
			p.PaidPairs = make(map[string]struct{})
		}
		s.nodes[p.ID] = p
		s.order = append(s.order, p.ID)
		if p.ParentID == 0 {
			s.rootID = p.ID
		}
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	s.recompute(s.rootID)
	return len(rows), nil
}

// GetParticipant returns a copy of one participant.
func (s *NetworkService) GetParticipant(ctx context.Context, id uint) (*entities.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.nodes[id]
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	return p.Clone(), nil
}

// ListParticipants returns copies of all participants in placement order.
func (s *NetworkService) ListParticipants(ctx context.Context) ([]entities.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.Participant, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.nodes[id].Clone())
	}
	return out, nil
}

// GetTree returns the whole tree as a nested read model. An empty tree
// yields nil without error.
func (s *NetworkService) GetTree(ctx context.Context) (*entities.TreeNode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.subtree(s.rootID), nil
}

func (s *NetworkService) subtree(id uint) *entities.TreeNode {
	if id == 0 {
		return nil
	}
	n := s.nodes[id]
	return &entities.TreeNode{
		Participant: *n.Clone(),
		Left:        s.subtree(n.LeftID),
		Right:       s.subtree(n.RightID),
	}
}

// ListEvents returns the audit trail in append order.
func (s *NetworkService) ListEvents(ctx context.Context) ([]entities.AuditEvent, error) {
	return s.events.List(ctx)
}

// Stats aggregates the network for dashboards.
func (s *NetworkService) Stats(ctx context.Context) (entities.NetworkStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats entities.NetworkStats
	stats.Participants = len(s.nodes)
	for _, p := range s.nodes {
		if p.Active {
			stats.Active++
		}
		stats.PairsFormed += p.PairCount
		stats.DirectPaid += p.Earnings.Direct
		stats.PairPaid += p.Earnings.Pair
		stats.TotalPaid += p.Earnings.Total
	}
	return stats, nil
}

// record appends one audit event; a log failure is reported but never
// fails the command that produced the event.
func (s *NetworkService) record(ctx context.Context, kind, message string) entities.AuditEvent {
	event := entities.AuditEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		Message:    message,
		OccurredAt: time.Now(),
	}
	if err := s.events.Append(ctx, event); err != nil {
		log.Printf("⚠️ audit log: append failed (kind=%s): %v", kind, err)
	}
	return event
}

// persist writes participants to the store, best effort. The in-memory
// tree is authoritative; failures are logged and the command proceeds.
func (s *NetworkService) persist(ctx context.Context, participants ...*entities.Participant) {
	if s.store == nil {
		return
	}
	for _, p := range participants {
		if err := s.store.SaveParticipant(ctx, p); err != nil {
			log.Printf("⚠️ store: save participant %d failed: %v", p.ID, err)
		}
	}
}
