package referral

import "testing"

func TestDefaultRewardConfig(t *testing.T) {
	cfg := DefaultRewardConfig()
	want := map[int]float64{1: 200, 2: 15, 3: 11, 4: 9, 5: 7, 6: 5, 7: 3}
	for level, amount := range want {
		if cfg.Amount(level) != amount {
			t.Fatalf("level %d = %.2f, want %.2f", level, cfg.Amount(level), amount)
		}
	}
	if cfg.Amount(0) != 0 || cfg.Amount(8) != 0 {
		t.Fatal("levels outside the table should pay 0")
	}
}

func TestRewardConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RewardConfig
		wantErr bool
	}{
		{"defaults", DefaultRewardConfig(), false},
		{"empty", RewardConfig{}, false},
		{"zero amount disables a level", RewardConfig{3: 0}, false},
		{"negative amount", RewardConfig{1: -10}, true},
		{"level zero", RewardConfig{0: 100}, true},
		{"level above cap", RewardConfig{8: 100}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRewardConfigMerge(t *testing.T) {
	base := DefaultRewardConfig()
	merged := base.Merge(RewardConfig{1: 500, 7: 0})

	if merged.Amount(1) != 500 {
		t.Fatalf("overridden level 1 = %.2f, want 500", merged.Amount(1))
	}
	if merged.Amount(7) != 0 {
		t.Fatalf("overridden level 7 = %.2f, want 0", merged.Amount(7))
	}
	if merged.Amount(2) != 15 {
		t.Fatalf("untouched level 2 = %.2f, want 15", merged.Amount(2))
	}
	if base.Amount(1) != 200 {
		t.Fatal("Merge must not modify the receiver")
	}
}
