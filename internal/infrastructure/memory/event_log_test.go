package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"valuelife/internal/domain/entities"
	"valuelife/internal/infrastructure/memory"
)

func TestEventLogAppendOrder(t *testing.T) {
	log := memory.NewEventLog()
	ctx := context.Background()

	for _, msg := range []string{"first", "second", "third"} {
		err := log.Append(ctx, entities.AuditEvent{
			ID:         msg,
			Kind:       entities.EventPlacement,
			Message:    msg,
			OccurredAt: time.Now(),
		})
		require.NoError(t, err)
	}

	events, err := log.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, "first", events[0].Message)
	require.Equal(t, "second", events[1].Message)
	require.Equal(t, "third", events[2].Message)
}

func TestEventLogListReturnsCopy(t *testing.T) {
	log := memory.NewEventLog()
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, entities.AuditEvent{ID: "a", Message: "a"}))

	events, err := log.List(ctx)
	require.NoError(t, err)
	events[0].Message = "tampered"

	fresh, err := log.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "a", fresh[0].Message)
}
