package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"valuelife/internal/domain/entities"
	"valuelife/internal/ports/output"
)

var _ output.NetworkStore = (*ParticipantStore)(nil)

// ParticipantStore implements output.NetworkStore on PostgreSQL via pgx.
type ParticipantStore struct {
	pool *pgxpool.Pool
}

// NewParticipantStore creates a ParticipantStore.
func NewParticipantStore(pool *pgxpool.Pool) *ParticipantStore {
	return &ParticipantStore{pool: pool}
}

const upsertParticipantSQL = `
INSERT INTO participants (
	id, name, sponsor_id, parent_id, side, left_id, right_id,
	active, direct_referrals, pair_count, direct_earnings, pair_earnings,
	paid_pairs, created_at, activated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	left_id = EXCLUDED.left_id,
	right_id = EXCLUDED.right_id,
	active = EXCLUDED.active,
	direct_referrals = EXCLUDED.direct_referrals,
	pair_count = EXCLUDED.pair_count,
	direct_earnings = EXCLUDED.direct_earnings,
	pair_earnings = EXCLUDED.pair_earnings,
	paid_pairs = EXCLUDED.paid_pairs,
	activated_at = EXCLUDED.activated_at`

func (r *ParticipantStore) SaveParticipant(ctx context.Context, p *entities.Participant) error {
	_, err := r.pool.Exec(ctx, upsertParticipantSQL,
		int64(p.ID), p.Name, int64(p.SponsorID), int64(p.ParentID), string(p.Side),
		int64(p.LeftID), int64(p.RightID),
		p.Active, p.DirectReferralCount, p.PairCount,
		p.Earnings.Direct, p.Earnings.Pair,
		paidPairsToSlice(p.PaidPairs),
		timeToPgtype(p.CreatedAt), timeToPgtype(p.ActivatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert participant: %w", err)
	}
	return nil
}

const selectParticipantsSQL = `
SELECT id, name, sponsor_id, parent_id, side, left_id, right_id,
	active, direct_referrals, pair_count, direct_earnings, pair_earnings,
	paid_pairs, created_at, activated_at
FROM participants
ORDER BY id`

func (r *ParticipantStore) LoadParticipants(ctx context.Context) ([]entities.Participant, error) {
	rows, err := r.pool.Query(ctx, selectParticipantsSQL)
	if err != nil {
		return nil, fmt.Errorf("select participants: %w", err)
	}
	defer rows.Close()

	var out []entities.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return out, nil
}
