package security

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/angelmondragon/homestock-backend/pkg/config"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidHash signals a stored hash in an unrecognised or malformed format.
var ErrInvalidHash = errors.New("invalid password hash")

// ErrPasswordTooLong is returned for passwords bcrypt would reject.
var ErrPasswordTooLong = fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)

// ErrWeakCost is returned when the configured bcrypt cost is below the floor.
var ErrWeakCost = fmt.Errorf("bcrypt cost must be at least %d", config.MinBcryptCost)

const argonPrefix = "$argon2id$"

// MaxPasswordBytes is the bcrypt input limit. It counts bytes, not runes.
const MaxPasswordBytes = 72

// HashPassword returns a bcrypt hash of password using the configured cost.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	if cfg.BcryptCost < config.MinBcryptCost {
		return "", ErrWeakCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches encoded. Mismatch is not an
// error; only malformed hashes are. Argon2id hashes imported from older
// accounts are still accepted.
func VerifyPassword(password, encoded string) (bool, error) {
	if strings.HasPrefix(encoded, argonPrefix) {
		return verifyArgon(password, encoded)
	}
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrInvalidHash
	}
}

// NeedsRehash reports whether encoded should be replaced with a fresh bcrypt
// hash at the configured cost.
func NeedsRehash(encoded string, cfg config.PasswordConfig) bool {
	if strings.HasPrefix(encoded, argonPrefix) {
		return true
	}
	cost, err := bcrypt.Cost([]byte(encoded))
	return err != nil || cost < cfg.BcryptCost
}

var (
	dummyMu     sync.Mutex
	dummyHashes = map[int][]byte{}
)

// DummyCompare burns the same time as a real verification at the configured
// cost. Callers use it when no stored hash exists so response latency does
// not reveal whether an account is present.
func DummyCompare(password string, cfg config.PasswordConfig) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(cfg.BcryptCost), []byte(password))
}

func dummyHash(cost int) []byte {
	if cost < config.MinBcryptCost {
		cost = config.MinBcryptCost
	}
	dummyMu.Lock()
	defer dummyMu.Unlock()
	if hash, ok := dummyHashes[cost]; ok {
		return hash
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte("homestock-dummy-password"), cost)
	dummyHashes[cost] = hash
	return hash
}

type argonParams struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
}

func verifyArgon(password, encoded string) (bool, error) {
	params, salt, hash, err := decodeArgon(encoded)
	if err != nil {
		return false, err
	}
	computed := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Parallelism, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, computed) == 1, nil
}

func decodeArgon(encoded string) (argonParams, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return argonParams{}, nil, nil, ErrInvalidHash
	}

	var params argonParams
	for _, token := range strings.Split(parts[3], ",") {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			return argonParams{}, nil, nil, ErrInvalidHash
		}
		var bits int
		switch key {
		case "m", "t":
			bits = 32
		case "p":
			bits = 8
		default:
			continue
		}
		v, err := strconv.ParseUint(value, 10, bits)
		if err != nil {
			return argonParams{}, nil, nil, ErrInvalidHash
		}
		switch key {
		case "m":
			params.Memory = uint32(v)
		case "t":
			params.Time = uint32(v)
		case "p":
			params.Parallelism = uint8(v)
		}
	}
	if params.Memory == 0 || params.Time == 0 || params.Parallelism == 0 {
		return argonParams{}, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return argonParams{}, nil, nil, ErrInvalidHash
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return argonParams{}, nil, nil, ErrInvalidHash
	}
	return params, salt, hash, nil
}
