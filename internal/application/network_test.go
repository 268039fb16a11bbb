package application_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"valuelife/internal/application"
	"valuelife/internal/domain/entities"
	"valuelife/internal/infrastructure/memory"
)

// fakeStore is an in-memory output.NetworkStore for rehydration tests.
type fakeStore struct {
	rows map[uint]entities.Participant
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[uint]entities.Participant)}
}

func (s *fakeStore) SaveParticipant(ctx context.Context, p *entities.Participant) error {
	s.rows[p.ID] = *p.Clone()
	return nil
}

func (s *fakeStore) LoadParticipants(ctx context.Context) ([]entities.Participant, error) {
	out := make([]entities.Participant, 0, len(s.rows))
	for id := uint(1); len(out) < len(s.rows); id++ {
		if row, ok := s.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func TestAuditTrailOrderAndContent(t *testing.T) {
	svc, log := newNetwork(t)
	ctx := context.Background()

	_, err := svc.AddParticipant(ctx, 1, "B")
	require.NoError(t, err)
	_, err = svc.AddParticipant(ctx, 1, "C")
	require.NoError(t, err)
	_, err = svc.MarkActive(ctx, 2)
	require.NoError(t, err)
	_, err = svc.MarkActive(ctx, 3)
	require.NoError(t, err)

	events, err := log.List(ctx)
	require.NoError(t, err)

	messages := make([]string, len(events))
	for i, ev := range events {
		messages[i] = ev.Message
		require.NotEmpty(t, ev.ID)
		require.False(t, ev.OccurredAt.IsZero())
	}
	require.Equal(t, []string{
		"A created as network root",
		"B added under A on left",
		fmt.Sprintf("direct bonus of %d awarded to A for B", unitDirect),
		"C added under A on right",
		fmt.Sprintf("direct bonus of %d awarded to A for C", unitDirect),
		"B activated",
		"C activated",
		"pairing bonus awarded to A for left: B and right: C",
	}, messages)
}

func TestStatsAggregation(t *testing.T) {
	svc, _ := newNetwork(t)
	ctx := context.Background()

	_, err := svc.AddParticipant(ctx, 1, "B")
	require.NoError(t, err)
	_, err = svc.AddParticipant(ctx, 1, "C")
	require.NoError(t, err)
	_, err = svc.MarkActive(ctx, 2)
	require.NoError(t, err)
	_, err = svc.MarkActive(ctx, 3)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, entities.NetworkStats{
		Participants: 3,
		Active:       3, // root bootstraps active
		PairsFormed:  1,
		DirectPaid:   2 * unitDirect,
		PairPaid:     unitPair,
		TotalPaid:    2*unitDirect + unitPair,
	}, stats)
}

func TestGetTreeShape(t *testing.T) {
	svc, _ := newNetwork(t)
	ctx := context.Background()

	_, err := svc.AddParticipant(ctx, 1, "B")
	require.NoError(t, err)
	_, err = svc.AddParticipant(ctx, 1, "C")
	require.NoError(t, err)
	_, err = svc.AddParticipant(ctx, 1, "D")
	require.NoError(t, err)

	tree, err := svc.GetTree(ctx)
	require.NoError(t, err)
	require.NotNil(t, tree)
	require.Equal(t, "A", tree.Participant.Name)
	require.Equal(t, "B", tree.Left.Participant.Name)
	require.Equal(t, "C", tree.Right.Participant.Name)
	require.Equal(t, "D", tree.Left.Left.Participant.Name)
	require.Nil(t, tree.Left.Right)
	require.Nil(t, tree.Right.Left)
}

func TestBootstrapIdempotent(t *testing.T) {
	svc, _ := newNetwork(t)

	again, err := svc.Bootstrap(context.Background(), "Other")
	require.NoError(t, err)
	require.Equal(t, uint(1), again.ID)
	require.Equal(t, "A", again.Name)
}

func TestQueriesReturnCopies(t *testing.T) {
	svc, _ := newNetwork(t)
	ctx := context.Background()

	p, err := svc.GetParticipant(ctx, 1)
	require.NoError(t, err)
	p.Name = "tampered"
	p.PaidPairs["9-9"] = struct{}{}

	fresh, err := svc.GetParticipant(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "A", fresh.Name)
	require.Empty(t, fresh.PaidPairs)
}

func TestRestoreRebuildsTree(t *testing.T) {
	store := newFakeStore()
	log := memory.NewEventLog()
	ctx := context.Background()

	svc := application.NewNetworkService(application.Config{
		DirectBonus: unitDirect,
		PairBonus:   unitPair,
		Events:      log,
		Store:       store,
	})
	_, err := svc.Bootstrap(ctx, "A")
	require.NoError(t, err)
	_, err = svc.AddParticipant(ctx, 1, "B")
	require.NoError(t, err)
	_, err = svc.AddParticipant(ctx, 1, "C")
	require.NoError(t, err)
	_, err = svc.MarkActive(ctx, 2)
	require.NoError(t, err)
	_, err = svc.MarkActive(ctx, 3)
	require.NoError(t, err)

	restored := application.NewNetworkService(application.Config{
		DirectBonus: unitDirect,
		PairBonus:   unitPair,
		Events:      memory.NewEventLog(),
		Store:       store,
	})
	n, err := restored.Restore(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	want, err := svc.ListParticipants(ctx)
	require.NoError(t, err)
	got, err := restored.ListParticipants(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)

	// The paid-pair guard survives the round trip.
	awarded, err := restored.CheckPair(ctx, 1)
	require.NoError(t, err)
	require.False(t, awarded)

	// New ids continue after the highest restored one.
	d, err := restored.AddParticipant(ctx, 1, "D")
	require.NoError(t, err)
	require.Equal(t, uint(4), d.ID)
}
