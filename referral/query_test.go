package referral

import (
	"context"
	"testing"
	"time"
)

func TestQuery_CountByLevelAfterDistribution(t *testing.T) {
	s := newMemStore()
	s.addChain("root", "mid", "leaf")
	d := NewDistributor(s, s, s, nil, time.Second)
	if _, err := d.Distribute(context.Background(), "user-leaf", TriggerSubscriptionActivation); err != nil {
		t.Fatalf("Distribute: %v", err)
	}

	q := NewQuery(s, s)

	counts, err := q.CountByLevel(context.Background(), "user-mid")
	if err != nil {
		t.Fatalf("CountByLevel: %v", err)
	}
	if counts[1] != 1 || len(counts) != 1 {
		t.Fatalf("mid counts = %v, want {1:1}", counts)
	}

	counts, err = q.CountByLevel(context.Background(), "user-root")
	if err != nil {
		t.Fatalf("CountByLevel: %v", err)
	}
	if counts[2] != 1 || len(counts) != 1 {
		t.Fatalf("root counts = %v, want {2:1}", counts)
	}
}

func TestQuery_DetailsByLevel(t *testing.T) {
	s := newMemStore()
	profiles := s.addChain("root", "mid", "leaf")
	d := NewDistributor(s, s, s, nil, time.Second)
	if _, err := d.Distribute(context.Background(), "user-leaf", TriggerSubscriptionActivation); err != nil {
		t.Fatalf("Distribute: %v", err)
	}

	q := NewQuery(s, s)
	details, err := q.DetailsByLevel(context.Background(), "user-mid")
	if err != nil {
		t.Fatalf("DetailsByLevel: %v", err)
	}
	rows := details[1]
	if len(rows) != 1 {
		t.Fatalf("mid level-1 rows = %d, want 1", len(rows))
	}
	if rows[0].RefereeID != profiles[2].ID {
		t.Fatalf("referee = %s, want %s", rows[0].RefereeID, profiles[2].ID)
	}
	if rows[0].Amount != 200 {
		t.Fatalf("amount = %.2f, want 200", rows[0].Amount)
	}
}

func TestQuery_DetailsByLevelNewestFirst(t *testing.T) {
	s := newMemStore()
	root := s.addProfile("root", "")
	mid := s.addProfile("mid", root.ID)
	first := s.addProfile("first", mid.ID)
	second := s.addProfile("second", mid.ID)

	d := NewDistributor(s, s, s, nil, time.Second)
	if _, err := d.Distribute(context.Background(), first.UserID, TriggerSubscriptionActivation); err != nil {
		t.Fatalf("Distribute(first): %v", err)
	}
	if _, err := d.Distribute(context.Background(), second.UserID, TriggerSubscriptionActivation); err != nil {
		t.Fatalf("Distribute(second): %v", err)
	}

	q := NewQuery(s, s)
	details, err := q.DetailsByLevel(context.Background(), mid.UserID)
	if err != nil {
		t.Fatalf("DetailsByLevel: %v", err)
	}
	rows := details[1]
	if len(rows) != 2 {
		t.Fatalf("mid level-1 rows = %d, want 2", len(rows))
	}
	if rows[0].RefereeID != second.ID || rows[1].RefereeID != first.ID {
		t.Fatalf("rows not newest first: got [%s, %s], want [%s, %s]",
			rows[0].RefereeID, rows[1].RefereeID, second.ID, first.ID)
	}
}

func TestQuery_UnknownUserGetsEmptyMaps(t *testing.T) {
	s := newMemStore()
	q := NewQuery(s, s)

	counts, err := q.CountByLevel(context.Background(), "user-ghost")
	if err != nil {
		t.Fatalf("CountByLevel: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("counts = %v, want empty", counts)
	}

	details, err := q.DetailsByLevel(context.Background(), "user-ghost")
	if err != nil {
		t.Fatalf("DetailsByLevel: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("details = %v, want empty", details)
	}
}
