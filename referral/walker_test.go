package referral

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestChain_LevelsIncreaseFromDirectReferrer(t *testing.T) {
	s := newMemStore()
	profiles := s.addChain("root", "mid", "leaf")
	w := NewWalker(s, nil, time.Second)

	chain, err := w.Chain(context.Background(), "user-leaf")
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if len(chain) != 2 {
		t.Fatalf("chain length = %d, want 2", len(chain))
	}
	if chain[0].ReferrerID != profiles[1].ID || chain[0].Level != 1 {
		t.Fatalf("first link = %+v, want direct referrer at level 1", chain[0])
	}
	if chain[1].ReferrerID != profiles[0].ID || chain[1].Level != 2 {
		t.Fatalf("second link = %+v, want root at level 2", chain[1])
	}
}

func TestChain_StopsAtMaxLevels(t *testing.T) {
	s := newMemStore()
	s.addChain("a", "b", "c", "d", "e", "f", "g", "h", "i", "leaf")
	w := NewWalker(s, nil, time.Second)

	chain, err := w.Chain(context.Background(), "user-leaf")
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if len(chain) != MaxLevels {
		t.Fatalf("chain length = %d, want %d", len(chain), MaxLevels)
	}
	for i, link := range chain {
		if link.Level != i+1 {
			t.Fatalf("link %d has level %d, want %d", i, link.Level, i+1)
		}
	}
}

func TestChain_BrokenLinkTruncates(t *testing.T) {
	s := newMemStore()
	profiles := s.addChain("root", "mid", "leaf")
	// Sever the tree above mid: its parent profile no longer resolves
	delete(s.profiles, profiles[0].ID)
	w := NewWalker(s, nil, time.Second)

	chain, err := w.Chain(context.Background(), "user-leaf")
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if len(chain) != 1 {
		t.Fatalf("chain length = %d, want 1 (truncated at broken link)", len(chain))
	}
	if chain[0].ReferrerID != profiles[1].ID {
		t.Fatalf("surviving link = %+v, want mid", chain[0])
	}
}

func TestChain_CycleIsHopBounded(t *testing.T) {
	s := newMemStore()
	a := s.addProfile("a", "")
	b := s.addProfile("b", a.ID)
	// Corrupt the data so a and b refer to each other
	a.ReferredBy = &b.ID
	w := NewWalker(s, nil, time.Second)

	chain, err := w.Chain(context.Background(), "user-b")
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if len(chain) != MaxLevels {
		t.Fatalf("cyclic chain length = %d, want hop bound %d", len(chain), MaxLevels)
	}
}

func TestChain_NoReferrer(t *testing.T) {
	s := newMemStore()
	s.addProfile("solo", "")
	w := NewWalker(s, nil, time.Second)

	chain, err := w.Chain(context.Background(), "user-solo")
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if len(chain) != 0 {
		t.Fatalf("chain length = %d, want 0", len(chain))
	}
}

func TestChain_UnknownUserYieldsEmptyChain(t *testing.T) {
	s := newMemStore()
	w := NewWalker(s, nil, time.Second)

	chain, err := w.Chain(context.Background(), "user-ghost")
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if chain != nil {
		t.Fatalf("chain = %v, want nil", chain)
	}
}

// deadlineStore counts profile lookups that arrive without a deadline.
type deadlineStore struct {
	*memStore
	missing int
}

func (d *deadlineStore) ProfileByUserID(ctx context.Context, userID string) (*Profile, error) {
	if _, ok := ctx.Deadline(); !ok {
		d.missing++
	}
	return d.memStore.ProfileByUserID(ctx, userID)
}

func (d *deadlineStore) ProfileByID(ctx context.Context, id string) (*Profile, error) {
	if _, ok := ctx.Deadline(); !ok {
		d.missing++
	}
	return d.memStore.ProfileByID(ctx, id)
}

func TestChain_EveryLookupIsDeadlineBounded(t *testing.T) {
	s := newMemStore()
	s.addChain("a", "b", "c", "leaf")
	ds := &deadlineStore{memStore: s}
	w := NewWalker(ds, nil, time.Second)

	chain, err := w.Chain(context.Background(), "user-leaf")
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("chain length = %d, want 3", len(chain))
	}
	if ds.missing != 0 {
		t.Fatalf("%d lookups ran without a deadline", ds.missing)
	}
}

func TestChain_LookupFailureAtStartSurfaces(t *testing.T) {
	s := newMemStore()
	s.addProfile("solo", "")
	s.lookupErr = errors.New("connection refused")
	w := NewWalker(s, nil, time.Second)

	_, err := w.Chain(context.Background(), "user-solo")
	if err == nil {
		t.Fatal("expected error when the starting profile cannot be loaded")
	}
}
