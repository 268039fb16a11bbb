package database

import (
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"valuelife/internal/domain/entities"
)

func timeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: !t.IsZero()}
}

func pgtypeToTime(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return time.Time{}
	}
	return ts.Time
}

func paidPairsToSlice(pairs map[string]struct{}) []string {
	out := make([]string, 0, len(pairs))
	for k := range pairs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sliceToPaidPairs(keys []string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

func scanParticipant(row pgx.Row) (entities.Participant, error) {
	var p entities.Participant
	var id, sponsorID, parentID, leftID, rightID int64
	var side string
	var paidPairs []string
	var createdAt, activatedAt pgtype.Timestamptz
	err := row.Scan(
		&id, &p.Name, &sponsorID, &parentID, &side, &leftID, &rightID,
		&p.Active, &p.DirectReferralCount, &p.PairCount,
		&p.Earnings.Direct, &p.Earnings.Pair,
		&paidPairs, &createdAt, &activatedAt,
	)
	if err != nil {
		return entities.Participant{}, err
	}
	p.ID = uint(id)
	p.SponsorID = uint(sponsorID)
	p.ParentID = uint(parentID)
	p.LeftID = uint(leftID)
	p.RightID = uint(rightID)
	p.Side = entities.Side(side)
	p.Earnings.Total = p.Earnings.Direct + p.Earnings.Pair
	p.PaidPairs = sliceToPaidPairs(paidPairs)
	p.CreatedAt = pgtypeToTime(createdAt)
	p.ActivatedAt = pgtypeToTime(activatedAt)
	return p, nil
}
