package referral

import (
	"context"
	"errors"
	"fmt"
)

// Query is the read side of the ledger, keyed by auth identity for the
// API layer. A user with no downline gets empty maps, not an error.
type Query struct {
	profiles ProfileStore
	ledger   Ledger
}

func NewQuery(profiles ProfileStore, ledger Ledger) *Query {
	return &Query{profiles: profiles, ledger: ledger}
}

// CountByLevel returns how many commissions userID has earned per level.
func (q *Query) CountByLevel(ctx context.Context, userID string) (map[int]int, error) {
	profile, err := q.profiles.ProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return map[int]int{}, nil
		}
		return nil, fmt.Errorf("count by level: %w", err)
	}
	counts, err := q.ledger.CountByLevel(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("count by level: %w", err)
	}
	if counts == nil {
		counts = map[int]int{}
	}
	return counts, nil
}

// DetailsByLevel returns userID's commission rows grouped by level, most
// recent first, enriched for presentation.
func (q *Query) DetailsByLevel(ctx context.Context, userID string) (map[int][]Record, error) {
	profile, err := q.profiles.ProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return map[int][]Record{}, nil
		}
		return nil, fmt.Errorf("details by level: %w", err)
	}
	details, err := q.ledger.DetailsByLevel(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("details by level: %w", err)
	}
	if details == nil {
		details = map[int][]Record{}
	}
	return details, nil
}
