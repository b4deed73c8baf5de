package referral

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func newTestDistributor(s *memStore) *Distributor {
	return NewDistributor(s, s, s, nil, time.Second)
}

func TestDistribute_PaysDefaultsUpTheChain(t *testing.T) {
	s := newMemStore()
	chain := s.addChain("a", "b", "c") // c referred by b referred by a
	d := newTestDistributor(s)

	res, err := d.Distribute(context.Background(), "user-c", TriggerSubscriptionActivation)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if res.LevelsProcessed != 2 {
		t.Fatalf("expected 2 levels processed, got %d", res.LevelsProcessed)
	}
	if res.TotalDistributed != 215 { // 200 at level 1 + 15 at level 2
		t.Fatalf("expected total 215, got %.2f", res.TotalDistributed)
	}
	if got := s.balance(chain[1].ID); got != 200 {
		t.Fatalf("direct referrer balance = %.2f, want 200", got)
	}
	if got := s.balance(chain[0].ID); got != 15 {
		t.Fatalf("level-2 referrer balance = %.2f, want 15", got)
	}
}

func TestDistribute_CapsAtSevenLevels(t *testing.T) {
	s := newMemStore()
	// 9 ancestors above the activating user, only 7 get paid
	chain := s.addChain("l9", "l8", "l7", "l6", "l5", "l4", "l3", "l2", "l1", "buyer")
	d := newTestDistributor(s)

	res, err := d.Distribute(context.Background(), "user-buyer", TriggerSubscriptionActivation)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if res.LevelsProcessed != MaxLevels {
		t.Fatalf("expected %d levels, got %d", MaxLevels, res.LevelsProcessed)
	}
	if res.TotalDistributed != 250 { // 200+15+11+9+7+5+3
		t.Fatalf("expected total 250, got %.2f", res.TotalDistributed)
	}
	// l8 and l9 sit beyond the cap
	if got := s.balance(chain[0].ID); got != 0 {
		t.Fatalf("level-9 ancestor balance = %.2f, want 0", got)
	}
	if got := s.balance(chain[1].ID); got != 0 {
		t.Fatalf("level-8 ancestor balance = %.2f, want 0", got)
	}
}

func TestDistribute_RetryInsertsNothing(t *testing.T) {
	s := newMemStore()
	s.addChain("a", "b", "c")
	d := newTestDistributor(s)

	first, err := d.Distribute(context.Background(), "user-c", TriggerSubscriptionActivation)
	if err != nil {
		t.Fatalf("first Distribute: %v", err)
	}
	second, err := d.Distribute(context.Background(), "user-c", TriggerSubscriptionActivation)
	if err != nil {
		t.Fatalf("second Distribute: %v", err)
	}
	if second.LevelsProcessed != 0 || second.TotalDistributed != 0 {
		t.Fatalf("retry distributed %.2f over %d levels, want nothing",
			second.TotalDistributed, second.LevelsProcessed)
	}
	if s.recordCount() != first.LevelsProcessed {
		t.Fatalf("ledger has %d rows after retry, want %d", s.recordCount(), first.LevelsProcessed)
	}
}

func TestDistribute_ConcurrentRunsCreditExactlyOnce(t *testing.T) {
	s := newMemStore()
	chain := s.addChain("a", "b", "c")
	d := newTestDistributor(s)

	const runs = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	var total float64
	errs := make([]error, 0)

	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := d.Distribute(context.Background(), "user-c", TriggerSubscriptionActivation)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			total += res.TotalDistributed
		}()
	}
	wg.Wait()

	if len(errs) != 0 {
		t.Fatalf("concurrent Distribute errors: %v", errs)
	}
	if total != 215 {
		t.Fatalf("runs distributed %.2f in total, want 215 exactly once", total)
	}
	if s.recordCount() != 2 {
		t.Fatalf("ledger has %d rows, want 2", s.recordCount())
	}
	if got := s.balance(chain[1].ID); got != 200 {
		t.Fatalf("direct referrer balance = %.2f, want 200", got)
	}
}

func TestDistribute_NoReferrer(t *testing.T) {
	s := newMemStore()
	s.addProfile("solo", "")
	d := newTestDistributor(s)

	res, err := d.Distribute(context.Background(), "user-solo", TriggerSubscriptionActivation)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if res.LevelsProcessed != 0 || res.TotalDistributed != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
	if s.recordCount() != 0 {
		t.Fatalf("ledger has %d rows, want 0", s.recordCount())
	}
}

func TestDistribute_UnknownUserFails(t *testing.T) {
	s := newMemStore()
	d := newTestDistributor(s)

	_, err := d.Distribute(context.Background(), "user-ghost", TriggerSubscriptionActivation)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDistribute_ConfigLoadFailureUsesDefaults(t *testing.T) {
	s := newMemStore()
	s.addChain("a", "b")
	s.loadErr = errors.New("settings store down")
	d := newTestDistributor(s)

	res, err := d.Distribute(context.Background(), "user-b", TriggerSubscriptionActivation)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if res.TotalDistributed != 200 {
		t.Fatalf("expected default level-1 amount 200, got %.2f", res.TotalDistributed)
	}
}

func TestDistribute_InvalidPersistedConfigUsesDefaults(t *testing.T) {
	s := newMemStore()
	s.addChain("a", "b")
	s.cfg = RewardConfig{1: -50}
	d := newTestDistributor(s)

	res, err := d.Distribute(context.Background(), "user-b", TriggerSubscriptionActivation)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if res.TotalDistributed != 200 {
		t.Fatalf("expected default level-1 amount 200, got %.2f", res.TotalDistributed)
	}
}

func TestDistribute_ZeroAmountLevelIsSkipped(t *testing.T) {
	s := newMemStore()
	chain := s.addChain("a", "b", "c")
	s.cfg = RewardConfig{1: 0}
	d := newTestDistributor(s)

	res, err := d.Distribute(context.Background(), "user-c", TriggerSubscriptionActivation)
	if err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if res.LevelsProcessed != 1 {
		t.Fatalf("expected only level 2 processed, got %d levels", res.LevelsProcessed)
	}
	if res.TotalDistributed != 15 {
		t.Fatalf("expected total 15, got %.2f", res.TotalDistributed)
	}
	if got := s.balance(chain[1].ID); got != 0 {
		t.Fatalf("disabled level still credited %.2f", got)
	}
}

func TestDistribute_RetryAfterPartialFailureCompletes(t *testing.T) {
	s := newMemStore()
	chain := s.addChain("a", "b", "c")
	s.creditErrByLevel = map[int]error{2: errors.New("connection reset")}
	d := newTestDistributor(s)

	_, err := d.Distribute(context.Background(), "user-c", TriggerSubscriptionActivation)
	if err == nil {
		t.Fatal("expected error when level 2 credit fails")
	}
	if s.recordCount() != 1 {
		t.Fatalf("ledger has %d rows after partial run, want 1", s.recordCount())
	}

	// Operator retries once the store recovers: the already credited level
	// conflicts and is skipped, the missing one lands
	s.creditErrByLevel = nil
	res, err := d.Distribute(context.Background(), "user-c", TriggerSubscriptionActivation)
	if err != nil {
		t.Fatalf("retry Distribute: %v", err)
	}
	if res.LevelsProcessed != 1 || res.TotalDistributed != 15 {
		t.Fatalf("retry result = %+v, want only level 2's 15", res)
	}
	if s.recordCount() != 2 {
		t.Fatalf("ledger has %d rows after retry, want 2", s.recordCount())
	}
	if got := s.balance(chain[1].ID); got != 200 {
		t.Fatalf("direct referrer balance = %.2f, want 200 (credited once)", got)
	}
	if got := s.balance(chain[0].ID); got != 15 {
		t.Fatalf("level-2 referrer balance = %.2f, want 15", got)
	}
}

func TestDistribute_CreditFailureAborts(t *testing.T) {
	s := newMemStore()
	s.addChain("a", "b")
	s.creditErr = errors.New("deadlock detected")
	d := newTestDistributor(s)

	_, err := d.Distribute(context.Background(), "user-b", TriggerSubscriptionActivation)
	if err == nil {
		t.Fatal("expected error from failed credit")
	}
	if s.recordCount() != 0 {
		t.Fatalf("ledger has %d rows after failed credit, want 0", s.recordCount())
	}
}
