package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Amanjain8795/matratv-connect-main-sub001/database"
	"github.com/Amanjain8795/matratv-connect-main-sub001/referral"

	"github.com/jackc/pgx/v5"
)

const rewardConfigKey = "referral_reward_config"

// PGProfileStore adapts user_profiles to the referral engine's contract.
type PGProfileStore struct{}

func (PGProfileStore) ProfileByUserID(ctx context.Context, userID string) (*referral.Profile, error) {
	return scanReferralProfile(ctx, `
		SELECT p.id, p.user_id, COALESCE(u.name, ''), p.referral_code, p.referred_by
		FROM user_profiles p JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`, userID)
}

func (PGProfileStore) ProfileByID(ctx context.Context, id string) (*referral.Profile, error) {
	return scanReferralProfile(ctx, `
		SELECT p.id, p.user_id, COALESCE(u.name, ''), p.referral_code, p.referred_by
		FROM user_profiles p JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`, id)
}

func scanReferralProfile(ctx context.Context, query, arg string) (*referral.Profile, error) {
	var p referral.Profile
	err := database.Pool.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.UserID, &p.Name, &p.ReferralCode, &p.ReferredBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, referral.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// PGLedger is the referral_commissions table plus the balance columns it
// credits. Credit relies on the table's unique index over
// (referee_id, trigger_user_id, level) so that concurrent or retried
// distributions cannot double-pay.
type PGLedger struct{}

func (PGLedger) Credit(ctx context.Context, rec referral.Record) (bool, error) {
	tx, err := database.Pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO referral_commissions
			(referrer_id, referee_id, level, commission_amount, trigger_type, trigger_user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (referee_id, trigger_user_id, level) DO NOTHING
	`, rec.ReferrerID, rec.RefereeID, rec.Level, rec.Amount, rec.TriggerType, rec.TriggerUserID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		// Already distributed for this activation and level
		return false, nil
	}

	// Same transaction as the ledger insert: either both land or neither
	tag, err = tx.Exec(ctx, `
		UPDATE user_profiles
		SET available_balance = available_balance + $1,
		    total_earnings = total_earnings + $1,
		    updated_at = NOW()
		WHERE id = $2
	`, rec.Amount, rec.ReferrerID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() != 1 {
		return false, fmt.Errorf("credit: referrer profile %s not found", rec.ReferrerID)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (PGLedger) CountByLevel(ctx context.Context, referrerID string) (map[int]int, error) {
	rows, err := database.Pool.Query(ctx, `
		SELECT level, COUNT(*)
		FROM referral_commissions
		WHERE referrer_id = $1
		GROUP BY level ORDER BY level
	`, referrerID)
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

func (PGLedger) DetailsByLevel(ctx context.Context, referrerID string) (map[int][]referral.Record, error) {
	rows, err := database.Pool.Query(ctx, `
		SELECT rc.id, rc.referrer_id, rc.referee_id, rc.level, rc.commission_amount,
		       rc.trigger_type, rc.trigger_user_id, rc.created_at,
		       COALESCE(u.name, ''), p.referral_code
		FROM referral_commissions rc
		JOIN user_profiles p ON p.id = rc.referee_id
		JOIN users u ON u.id = p.user_id
		WHERE rc.referrer_id = $1
		ORDER BY rc.level ASC, rc.created_at DESC
	`, referrerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make(map[int][]referral.Record)
	for rows.Next() {
		var rec referral.Record
		err := rows.Scan(
			&rec.ID, &rec.ReferrerID, &rec.RefereeID, &rec.Level, &rec.Amount,
			&rec.TriggerType, &rec.TriggerUserID, &rec.CreatedAt,
			&rec.RefereeName, &rec.RefereeCode,
		)
		if err != nil {
			return nil, err
		}
		details[rec.Level] = append(details[rec.Level], rec)
	}
	return details, rows.Err()
}

// PGRewardConfigStore keeps the reward table as a JSONB settings row.
type PGRewardConfigStore struct{}

func (PGRewardConfigStore) Load(ctx context.Context) (referral.RewardConfig, error) {
	var raw []byte
	err := database.Pool.QueryRow(ctx,
		`SELECT value FROM app_settings WHERE key = $1`, rewardConfigKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return referral.DefaultRewardConfig(), nil
		}
		return nil, err
	}

	// Stored as {"level1": 200, ...} to match the admin API payload
	var stored map[string]float64
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("reward config: %w", err)
	}
	cfg := make(referral.RewardConfig, len(stored))
	for key, amount := range stored {
		level, err := strconv.Atoi(strings.TrimPrefix(key, "level"))
		if err != nil {
			return nil, fmt.Errorf("reward config: bad level key %q", key)
		}
		cfg[level] = amount
	}
	return cfg, nil
}

func (PGRewardConfigStore) Save(ctx context.Context, cfg referral.RewardConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	stored := make(map[string]float64, len(cfg))
	for level, amount := range cfg {
		stored["level"+strconv.Itoa(level)] = amount
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	_, err = database.Pool.Exec(ctx, `
		INSERT INTO app_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
	`, rewardConfigKey, raw)
	return err
}
