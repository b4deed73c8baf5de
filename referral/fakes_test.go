package referral

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// memStore backs ProfileStore, Ledger and ConfigStore with maps so the
// engine can be exercised without postgres. The mutex matters: the
// distributor is documented as safe to call concurrently and the tests
// hold it to that.
type memStore struct {
	mu sync.Mutex

	profiles map[string]*Profile // by profile id
	byUser   map[string]string   // user id -> profile id

	records  map[string]Record // by (referee, trigger user, level)
	balances map[string]float64
	nextID   int

	cfg              RewardConfig
	loadErr          error
	creditErr        error
	creditErrByLevel map[int]error
	lookupErr        error
}

func newMemStore() *memStore {
	return &memStore{
		profiles: map[string]*Profile{},
		byUser:   map[string]string{},
		records:  map[string]Record{},
		balances: map[string]float64{},
	}
}

// addProfile registers a profile whose ids are derived from name, referred
// by the previously added parent profile id (empty for roots).
func (s *memStore) addProfile(name, referredBy string) *Profile {
	p := &Profile{
		ID:           "profile-" + name,
		UserID:       "user-" + name,
		Name:         name,
		ReferralCode: "MTV" + name,
	}
	if referredBy != "" {
		p.ReferredBy = &referredBy
	}
	s.profiles[p.ID] = p
	s.byUser[p.UserID] = p.ID
	return p
}

// addChain builds a referral line root-first and returns the profiles in
// the same order: addChain("a", "b", "c") makes c referred by b referred
// by a.
func (s *memStore) addChain(names ...string) []*Profile {
	out := make([]*Profile, 0, len(names))
	parent := ""
	for _, name := range names {
		p := s.addProfile(name, parent)
		out = append(out, p)
		parent = p.ID
	}
	return out
}

func (s *memStore) ProfileByUserID(ctx context.Context, userID string) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	id, ok := s.byUser[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.profiles[id], nil
}

func (s *memStore) ProfileByID(ctx context.Context, id string) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func recordKey(rec Record) string {
	return fmt.Sprintf("%s|%s|%d", rec.RefereeID, rec.TriggerUserID, rec.Level)
}

func (s *memStore) Credit(ctx context.Context, rec Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creditErr != nil {
		return false, s.creditErr
	}
	if err := s.creditErrByLevel[rec.Level]; err != nil {
		return false, err
	}
	key := recordKey(rec)
	if _, exists := s.records[key]; exists {
		return false, nil
	}
	s.nextID++
	rec.ID = fmt.Sprintf("rec-%06d", s.nextID)
	rec.CreatedAt = time.Now()
	s.records[key] = rec
	s.balances[rec.ReferrerID] += rec.Amount
	return true, nil
}

func (s *memStore) CountByLevel(ctx context.Context, referrerID string) (map[int]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[int]int{}
	for _, rec := range s.records {
		if rec.ReferrerID == referrerID {
			counts[rec.Level]++
		}
	}
	return counts, nil
}

func (s *memStore) DetailsByLevel(ctx context.Context, referrerID string) (map[int][]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	details := map[int][]Record{}
	for _, rec := range s.records {
		if rec.ReferrerID == referrerID {
			details[rec.Level] = append(details[rec.Level], rec)
		}
	}
	// Newest first, same contract as the postgres read
	for level := range details {
		sort.Slice(details[level], func(i, j int) bool {
			return details[level][i].ID > details[level][j].ID
		})
	}
	return details, nil
}

func (s *memStore) Load(ctx context.Context) (RewardConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.cfg == nil {
		return DefaultRewardConfig(), nil
	}
	return s.cfg, nil
}

func (s *memStore) Save(ctx context.Context, cfg RewardConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	return nil
}

func (s *memStore) recordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *memStore) balance(profileID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[profileID]
}
