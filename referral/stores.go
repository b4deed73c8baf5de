package referral

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by stores when a profile does not exist. The
// walker treats it as the end of the chain, not as a failure.
var ErrNotFound = errors.New("referral: profile not found")

// Profile is the slice of a user profile the referral engine needs.
type Profile struct {
	ID           string  // profile identity (referral tree node)
	UserID       string  // auth identity
	Name         string
	ReferralCode string
	ReferredBy   *string // profile id of the direct upline, nil for roots
}

// Record is one row of the commission ledger. Rows are append-only and at
// most one exists per (RefereeID, TriggerUserID, Level).
type Record struct {
	ID            string    `json:"id"`
	ReferrerID    string    `json:"referrer_id"`
	RefereeID     string    `json:"referee_id"`
	Level         int       `json:"level"`
	Amount        float64   `json:"commission_amount"`
	TriggerType   string    `json:"trigger_type"`
	TriggerUserID string    `json:"trigger_user_id"`
	CreatedAt     time.Time `json:"created_at"`

	// Presentation fields filled by DetailsByLevel
	RefereeName string `json:"referee_name,omitempty"`
	RefereeCode string `json:"referee_code,omitempty"`
}

// ProfileStore resolves profiles by either identity.
type ProfileStore interface {
	ProfileByUserID(ctx context.Context, userID string) (*Profile, error)
	ProfileByID(ctx context.Context, id string) (*Profile, error)
}

// Ledger is the commission ledger plus the referrer balance it credits.
type Ledger interface {
	// Credit inserts rec if no row exists for (rec.RefereeID,
	// rec.TriggerUserID, rec.Level) and, in the same transaction, adds
	// rec.Amount to the referrer's available_balance and total_earnings.
	// Returns false when the row already existed; the balance is untouched
	// in that case.
	Credit(ctx context.Context, rec Record) (bool, error)

	// CountByLevel returns the number of ledger rows per level for a
	// referrer. Levels with no rows are absent from the map.
	CountByLevel(ctx context.Context, referrerID string) (map[int]int, error)

	// DetailsByLevel returns the ledger rows per level for a referrer,
	// most recent first, enriched with the referee's name and code.
	DetailsByLevel(ctx context.Context, referrerID string) (map[int][]Record, error)
}

// ConfigStore persists the reward table. Load errors are recovered with
// DefaultRewardConfig by the callers, never surfaced to users.
type ConfigStore interface {
	Load(ctx context.Context) (RewardConfig, error)
	Save(ctx context.Context, cfg RewardConfig) error
}
