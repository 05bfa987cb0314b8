package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/homestock-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret: "0123456789abcdef0123456789abcdef",
		Issuer: "homestock",
		TTL:    7 * 24 * time.Hour,
	}
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestIssueAndVerify(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewIssuer(testSessionConfig(), fixedClock(now))
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	userID := uuid.New()
	token, expiresAt, err := issuer.Issue(userID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !expiresAt.Equal(now.Add(7 * 24 * time.Hour)) {
		t.Fatalf("unexpected expiry %s", expiresAt)
	}

	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != userID {
		t.Fatalf("expected subject %s got %s", userID, got)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewIssuer(testSessionConfig(), fixedClock(issuedAt))
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	token, _, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	later, err := NewIssuer(testSessionConfig(), fixedClock(issuedAt.Add(8*24*time.Hour)))
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	if _, err := later.Verify(token); err != ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	issuer, err := NewIssuer(testSessionConfig(), nil)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	token, _, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	otherCfg := testSessionConfig()
	otherCfg.Secret = "ffffffffffffffffffffffffffffffff"
	other, err := NewIssuer(otherCfg, nil)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	if _, err := other.Verify(token); err != ErrInvalidSession {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestVerifyRejectsMalformedAndUnsignedTokens(t *testing.T) {
	issuer, err := NewIssuer(testSessionConfig(), nil)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.Verify(raw); err != ErrInvalidSession {
			t.Fatalf("token %q: expected ErrInvalidSession, got %v", raw, err)
		}
	}

	claims := SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		Issuer:    "homestock",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := issuer.Verify(unsigned); err != ErrInvalidSession {
		t.Fatalf("expected alg=none to be rejected, got %v", err)
	}
}

func TestNewIssuerRejectsShortSecret(t *testing.T) {
	cfg := testSessionConfig()
	cfg.Secret = "too-short"
	_, err := NewIssuer(cfg, nil)
	if err == nil || !strings.Contains(err.Error(), "at least 16 bytes") {
		t.Fatalf("expected short secret error, got %v", err)
	}
}
