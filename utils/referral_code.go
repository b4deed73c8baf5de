package utils

import (
	"strings"

	"github.com/google/uuid"
)

const referralCodePrefix = "MTV"

// GenerateReferralCode returns a human-friendly code like "MTV4F9A2C1B".
// Uniqueness is enforced by the user_profiles.referral_code constraint;
// the uuid entropy makes collisions practically irrelevant.
func GenerateReferralCode() string {
	id := uuid.New().String()
	compact := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	return referralCodePrefix + compact[:8]
}
