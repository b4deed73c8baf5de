package models

import (
	"context"
	"time"

	"github.com/Amanjain8795/matratv-connect-main-sub001/database"
)

// UserProfile carries the referral tree node and the balances. The balance
// columns are written only by the commission distributor's transaction and
// by withdrawal processing.
type UserProfile struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	ReferralCode     string    `json:"referral_code" db:"referral_code"`
	ReferredBy       *string   `json:"referred_by,omitempty" db:"referred_by"`
	AvailableBalance float64   `json:"available_balance" db:"available_balance"`
	TotalEarnings    float64   `json:"total_earnings" db:"total_earnings"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

func GetProfileByUserID(ctx context.Context, userID string) (*UserProfile, error) {
	var p UserProfile
	err := database.Pool.QueryRow(ctx, `
		SELECT id, user_id, referral_code, referred_by, available_balance, total_earnings, created_at, updated_at
		FROM user_profiles WHERE user_id = $1
	`, userID).Scan(
		&p.ID, &p.UserID, &p.ReferralCode, &p.ReferredBy,
		&p.AvailableBalance, &p.TotalEarnings, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func GetProfileByID(ctx context.Context, id string) (*UserProfile, error) {
	var p UserProfile
	err := database.Pool.QueryRow(ctx, `
		SELECT id, user_id, referral_code, referred_by, available_balance, total_earnings, created_at, updated_at
		FROM user_profiles WHERE id = $1
	`, id).Scan(
		&p.ID, &p.UserID, &p.ReferralCode, &p.ReferredBy,
		&p.AvailableBalance, &p.TotalEarnings, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CountTeamByLevel returns how many profiles sit at each level of the
// user's downline, up to seven levels deep.
func CountTeamByLevel(ctx context.Context, profileID string) (map[int]int, error) {
	rows, err := database.Pool.Query(ctx, `
		WITH RECURSIVE team AS (
			SELECT id, 1 AS level FROM user_profiles WHERE referred_by = $1
			UNION ALL
			SELECT p.id, t.level + 1 FROM user_profiles p
			JOIN team t ON p.referred_by = t.id
			WHERE t.level < 7
		)
		SELECT level, COUNT(*) FROM team GROUP BY level ORDER BY level
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var level, count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, err
		}
		counts[level] = count
	}
	return counts, rows.Err()
}
