package referral

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// TriggerSubscriptionActivation is the trigger type recorded when a user's
// subscription transitions to active.
const TriggerSubscriptionActivation = "subscription_activation"

// Result summarizes one distribution run. A retried run for an already
// processed activation reports zero on both fields.
type Result struct {
	TotalDistributed float64 `json:"total_distributed"`
	LevelsProcessed  int     `json:"levels_processed"`
}

// Distributor pays referral commissions up the chain when a subscription
// activates. It holds no in-process locks: idempotency and concurrency
// safety come from the ledger's uniqueness constraint and transactional
// credit, so it is safe to call from multiple processes at once.
type Distributor struct {
	profiles  ProfileStore
	ledger    Ledger
	config    ConfigStore
	walker    *Walker
	log       *zap.Logger
	opTimeout time.Duration
}

func NewDistributor(profiles ProfileStore, ledger Ledger, config ConfigStore, log *zap.Logger, opTimeout time.Duration) *Distributor {
	if log == nil {
		log = zap.NewNop()
	}
	if opTimeout <= 0 {
		opTimeout = 5 * time.Second
	}
	return &Distributor{
		profiles:  profiles,
		ledger:    ledger,
		config:    config,
		walker:    NewWalker(profiles, log, opTimeout),
		log:       log,
		opTimeout: opTimeout,
	}
}

// Distribute walks the activating user's upline and credits one commission
// per level. Calling it again for the same user and trigger inserts nothing
// and distributes nothing, so callers may retry freely after a failure.
//
// A ledger write failure aborts the run and is returned to the caller; the
// subscription activation that triggered the run must not be rolled back
// because of it.
func (d *Distributor) Distribute(ctx context.Context, activatingUserID, triggerType string) (Result, error) {
	var res Result

	cfg := d.loadConfig(ctx)

	refCtx, cancel := context.WithTimeout(ctx, d.opTimeout)
	referee, err := d.profiles.ProfileByUserID(refCtx, activatingUserID)
	cancel()
	if err != nil {
		return res, fmt.Errorf("distribute: resolve activating profile: %w", err)
	}

	// The walker bounds each of its lookups with the same per-call timeout
	chain, err := d.walker.Chain(ctx, activatingUserID)
	if err != nil {
		return res, fmt.Errorf("distribute: walk referral chain: %w", err)
	}

	for _, link := range chain {
		amount := cfg.Amount(link.Level)
		if amount <= 0 {
			continue
		}
		rec := Record{
			ReferrerID:    link.ReferrerID,
			RefereeID:     referee.ID,
			Level:         link.Level,
			Amount:        amount,
			TriggerType:   triggerType,
			TriggerUserID: activatingUserID,
		}

		levelCtx, cancel := context.WithTimeout(ctx, d.opTimeout)
		inserted, err := d.ledger.Credit(levelCtx, rec)
		cancel()
		if err != nil {
			// Abort and surface: the caller logs and retries the whole run,
			// which is safe because levels already credited will conflict
			return res, fmt.Errorf("distribute: credit level %d: %w", link.Level, err)
		}
		if !inserted {
			// Duplicate trigger (retried webhook, double click): skip
			d.log.Debug("commission already distributed",
				zap.String("trigger_user_id", activatingUserID),
				zap.Int("level", link.Level))
			continue
		}
		res.TotalDistributed += amount
		res.LevelsProcessed++
	}

	d.log.Info("commission distribution complete",
		zap.String("trigger_user_id", activatingUserID),
		zap.String("trigger_type", triggerType),
		zap.Int("chain_length", len(chain)),
		zap.Int("levels_processed", res.LevelsProcessed),
		zap.Float64("total_distributed", res.TotalDistributed))
	return res, nil
}

// loadConfig returns the persisted reward table, substituting the default
// on any failure. Distribution must never be blocked by a settings outage.
func (d *Distributor) loadConfig(ctx context.Context) RewardConfig {
	cfgCtx, cancel := context.WithTimeout(ctx, d.opTimeout)
	defer cancel()

	cfg, err := d.config.Load(cfgCtx)
	if err != nil {
		d.log.Warn("reward config unavailable, using defaults", zap.Error(err))
		return DefaultRewardConfig()
	}
	if err := cfg.Validate(); err != nil {
		d.log.Warn("persisted reward config invalid, using defaults", zap.Error(err))
		return DefaultRewardConfig()
	}
	return DefaultRewardConfig().Merge(cfg)
}
