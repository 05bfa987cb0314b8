package security_test

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/angelmondragon/homestock-backend/pkg/config"
	"github.com/angelmondragon/homestock-backend/pkg/security"
	"golang.org/x/crypto/argon2"
)

var testCfg = config.PasswordConfig{BcryptCost: config.MinBcryptCost}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("very-secure-password", testCfg)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}

	ok, err := security.VerifyPassword("very-secure-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("VerifyPassword failed for the correct password")
	}

	ok, err = security.VerifyPassword("bogus-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for invalid password: %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}

	if security.NeedsRehash(hash, testCfg) {
		t.Fatal("fresh hash should not need rehash")
	}
}

func TestHashPasswordRejectsWeakCost(t *testing.T) {
	if _, err := security.HashPassword("password123", config.PasswordConfig{BcryptCost: 4}); err != security.ErrWeakCost {
		t.Fatalf("expected ErrWeakCost, got %v", err)
	}
	if _, err := security.HashPassword("", testCfg); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if _, err := security.VerifyPassword("irrelevant", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
	if _, err := security.VerifyPassword("irrelevant", "$argon2id$v=19$m=abc$salt$hash"); err == nil {
		t.Fatal("expected error for malformed argon hash")
	}
}

func TestVerifyLegacyArgonHash(t *testing.T) {
	salt := []byte("0123456789abcdef")
	key := argon2.IDKey([]byte("legacy-pass"), salt, 1, 8*1024, 1, 32)
	encoded := fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		8*1024, 1, 1,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	ok, err := security.VerifyPassword("legacy-pass", encoded)
	if err != nil || !ok {
		t.Fatalf("expected legacy hash to verify, ok=%v err=%v", ok, err)
	}
	ok, err = security.VerifyPassword("wrong", encoded)
	if err != nil || ok {
		t.Fatalf("expected mismatch, ok=%v err=%v", ok, err)
	}
	if !security.NeedsRehash(encoded, testCfg) {
		t.Fatal("argon hashes should be flagged for rehash")
	}
}

func TestHashPasswordCountsBytes(t *testing.T) {
	// 40 runes, 80 bytes.
	long := strings.Repeat("é", 40)
	if _, err := security.HashPassword(long, testCfg); !errors.Is(err, security.ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if _, err := security.HashPassword(strings.Repeat("é", 36), testCfg); err != nil {
		t.Fatalf("72-byte password should hash, got %v", err)
	}
}

func TestDummyCompareDoesNotPanic(t *testing.T) {
	security.DummyCompare("anything", testCfg)
	security.DummyCompare("", testCfg)
}
