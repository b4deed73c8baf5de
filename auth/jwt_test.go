package auth

import (
	"testing"
	"time"

	"github.com/Amanjain8795/matratv-connect-main-sub001/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-access-secret",
		JWTRefreshSecret: "test-refresh-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func TestTokenPairRoundTrip(t *testing.T) {
	cfg := testConfig()

	access, refresh, err := GenerateTokenPair(cfg, "user-1", "a@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	claims, err := ValidateAccessToken(cfg, access)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@example.com" || claims.Role != "user" {
		t.Fatalf("unexpected access claims: %+v", claims)
	}

	claims, err = ValidateRefreshToken(cfg, refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("unexpected refresh claims: %+v", claims)
	}
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	cfg := testConfig()

	access, refresh, err := GenerateTokenPair(cfg, "user-1", "a@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if _, err := ValidateAccessToken(cfg, refresh); err == nil {
		t.Fatal("refresh token accepted as access token")
	}
	if _, err := ValidateRefreshToken(cfg, access); err == nil {
		t.Fatal("access token accepted as refresh token")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	cfg := testConfig()
	cfg.JWTAccessExpiry = -time.Minute

	access, _, err := GenerateTokenPair(cfg, "user-1", "a@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if _, err := ValidateAccessToken(cfg, access); err == nil {
		t.Fatal("expired token accepted")
	}
}
