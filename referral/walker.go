package referral

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Link is one entry of a referral chain: the profile that should be paid
// and its distance from the activating user (1 = direct referrer).
type Link struct {
	ReferrerID string
	Level      int
}

// Walker resolves a user's upline chain, at most MaxLevels hops deep.
type Walker struct {
	profiles  ProfileStore
	log       *zap.Logger
	opTimeout time.Duration
}

func NewWalker(profiles ProfileStore, log *zap.Logger, opTimeout time.Duration) *Walker {
	if log == nil {
		log = zap.NewNop()
	}
	if opTimeout <= 0 {
		opTimeout = 5 * time.Second
	}
	return &Walker{profiles: profiles, log: log, opTimeout: opTimeout}
}

// Chain returns the upline of userID ordered by increasing level. A user
// with no referrer yields an empty chain. Any broken link (missing parent
// profile or lookup failure) truncates the chain at that point: partial
// chains are valid, e.g. a level-2 referrer who signed up organically.
//
// Each profile lookup runs under its own deadline so a single slow hop
// cannot stall the whole walk. The walk is hop-bounded to MaxLevels even
// if the referred_by links were ever to form a cycle, so a data bug
// cannot make this loop.
func (w *Walker) Chain(ctx context.Context, userID string) ([]Link, error) {
	start, err := w.lookupByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	chain := make([]Link, 0, MaxLevels)
	current := start
	for level := 1; level <= MaxLevels; level++ {
		if current.ReferredBy == nil {
			break
		}
		parent, err := w.lookupByID(ctx, *current.ReferredBy)
		if err != nil {
			// Broken link: stop here, keep what we resolved so far
			if !errors.Is(err, ErrNotFound) {
				w.log.Warn("referral chain truncated on lookup failure",
					zap.String("user_id", userID),
					zap.Int("level", level),
					zap.Error(err))
			}
			break
		}
		chain = append(chain, Link{ReferrerID: parent.ID, Level: level})
		current = parent
	}
	return chain, nil
}

func (w *Walker) lookupByUserID(ctx context.Context, userID string) (*Profile, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, w.opTimeout)
	defer cancel()
	return w.profiles.ProfileByUserID(lookupCtx, userID)
}

func (w *Walker) lookupByID(ctx context.Context, id string) (*Profile, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, w.opTimeout)
	defer cancel()
	return w.profiles.ProfileByID(lookupCtx, id)
}
