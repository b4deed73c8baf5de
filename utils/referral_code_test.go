package utils

import (
	"strings"
	"testing"
)

func TestGenerateReferralCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := GenerateReferralCode()
		if !strings.HasPrefix(code, "MTV") {
			t.Fatalf("code %q missing MTV prefix", code)
		}
		if len(code) != 11 {
			t.Fatalf("code %q has length %d, want 11", code, len(code))
		}
		if code != strings.ToUpper(code) {
			t.Fatalf("code %q is not uppercase", code)
		}
		if seen[code] {
			t.Fatalf("code %q generated twice in 100 draws", code)
		}
		seen[code] = true
	}
}
