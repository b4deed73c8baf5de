package referral

import "fmt"

// MaxLevels is how far up the referral tree a single activation pays out.
const MaxLevels = 7

// RewardConfig maps a referral level (1 = direct referrer) to the flat
// reward, in INR, paid to the referrer at that level.
type RewardConfig map[int]float64

// DefaultRewardConfig is the built-in reward table used whenever no
// configuration is persisted or the settings store cannot be reached.
func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		1: 200,
		2: 15,
		3: 11,
		4: 9,
		5: 7,
		6: 5,
		7: 3,
	}
}

// Amount returns the reward for level, or 0 for levels outside the table.
func (c RewardConfig) Amount(level int) float64 {
	return c[level]
}

// Validate rejects rewards for levels outside 1..MaxLevels and negative
// amounts. A zero amount is allowed - it disables payouts for that level.
func (c RewardConfig) Validate() error {
	for level, amount := range c {
		if level < 1 || level > MaxLevels {
			return fmt.Errorf("reward config: level %d out of range 1..%d", level, MaxLevels)
		}
		if amount < 0 {
			return fmt.Errorf("reward config: negative amount %.2f for level %d", amount, level)
		}
	}
	return nil
}

// Merge overlays partial on top of c and returns the result. Neither input
// is modified; levels absent from partial keep their current value.
func (c RewardConfig) Merge(partial RewardConfig) RewardConfig {
	merged := make(RewardConfig, MaxLevels)
	for level, amount := range c {
		merged[level] = amount
	}
	for level, amount := range partial {
		merged[level] = amount
	}
	return merged
}
