package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/homestock-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// ErrInvalidSession is the only error Verify returns. Bad signatures, expiry,
// malformed input and unexpected algorithms are intentionally indistinguishable.
var ErrInvalidSession = errors.New("invalid session")

// Clock returns the current time. Tests inject fixed clocks.
type Clock func() time.Time

// Issuer mints and verifies stateless session tokens.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    Clock
}

// NewIssuer validates the signing configuration. A nil clock uses time.Now.
func NewIssuer(cfg config.SessionConfig, clock Clock) (*Issuer, error) {
	if len(cfg.Secret) < config.MinSessionSecretBytes {
		return nil, fmt.Errorf("session secret must be at least %d bytes", config.MinSessionSecretBytes)
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	if clock == nil {
		clock = time.Now
	}
	return &Issuer{
		secret: []byte(cfg.Secret),
		issuer: strings.TrimSpace(cfg.Issuer),
		ttl:    cfg.TTL,
		now:    clock,
	}, nil
}

// Issue signs a token for userID that expires TTL from now.
func (i *Issuer) Issue(userID uuid.UUID) (string, time.Time, error) {
	if userID == uuid.Nil {
		return "", time.Time{}, fmt.Errorf("user id is required")
	}
	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, issuer and expiry and returns the subject.
func (i *Issuer) Verify(token string) (uuid.UUID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return uuid.Nil, ErrInvalidSession
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	}, opts...)
	if err != nil {
		return uuid.Nil, ErrInvalidSession
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, ErrInvalidSession
	}
	return userID, nil
}
