package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/halleyx/commerce-backend/pkg/config"
	"github.com/halleyx/commerce-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "commerce-backend",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	subject := uuid.New()
	now := time.Now().UTC()

	signed, err := MintAccessToken(cfg, now, AccessTokenPayload{
		SubjectID: subject,
		Email:     "shopper@example.com",
		Role:      enums.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Email != "shopper@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if claims.Role != enums.RoleCustomer {
		t.Fatalf("unexpected role %q", claims.Role)
	}
	parsed, err := claims.SubjectID()
	if err != nil {
		t.Fatalf("subject parse failed: %v", err)
	}
	if parsed != subject {
		t.Fatalf("subject mismatch: want %s got %s", subject, parsed)
	}

	wantExp := now.Add(time.Hour).Unix()
	if claims.ExpiresAt == nil || claims.ExpiresAt.Unix() != wantExp {
		t.Fatalf("expected 1h expiry, got %v", claims.ExpiresAt)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		SubjectID: uuid.New(),
		Email:     "shopper@example.com",
		Role:      enums.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	other := cfg
	other.Secret = "a-different-secret"
	if _, err := ParseAccessToken(other, signed); err == nil {
		t.Fatal("expected parse to fail with wrong secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{
		SubjectID: uuid.New(),
		Email:     "shopper@example.com",
		Role:      enums.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected parse to fail for expired token")
	}
}

func TestMintValidatesInputs(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	if _, err := MintAccessToken(cfg, now, AccessTokenPayload{SubjectID: uuid.New(), Email: "a@b.c", Role: "MANAGER"}); err == nil {
		t.Fatal("expected error for unknown role")
	}
	if _, err := MintAccessToken(cfg, now, AccessTokenPayload{SubjectID: uuid.New(), Role: enums.RoleAdmin}); err == nil {
		t.Fatal("expected error for missing email")
	}

	noSecret := cfg
	noSecret.Secret = ""
	if _, err := MintAccessToken(noSecret, now, AccessTokenPayload{SubjectID: uuid.New(), Email: "a@b.c", Role: enums.RoleAdmin}); err == nil {
		t.Fatal("expected error for missing secret")
	}
}
