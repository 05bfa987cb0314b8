package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/homestock-backend/internal/users"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/homestock-backend/pkg/errors"
	"google.golang.org/api/idtoken"
)

// ExternalIdentity is a verified identity asserted by an OAuth provider.
type ExternalIdentity struct {
	Provider      enums.CredentialProvider
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       *string
}

// DisplayName falls back to the email's local part when the provider sent no name.
func (e ExternalIdentity) DisplayName() string {
	if name := strings.TrimSpace(e.Name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(users.NormalizeEmail(e.Email), "@")
	return local
}

type idTokenValidator interface {
	Validate(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)
}

// GoogleVerifier checks Google ID tokens against the configured OAuth client.
type GoogleVerifier struct {
	validator idTokenValidator
	clientID  string
}

// NewGoogleVerifier builds a verifier backed by Google's public certificates.
func NewGoogleVerifier(ctx context.Context, clientID string) (*GoogleVerifier, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, fmt.Errorf("google client id required")
	}
	validator, err := idtoken.NewValidator(ctx)
	if err != nil {
		return nil, fmt.Errorf("create google id token validator: %w", err)
	}
	return &GoogleVerifier{validator: validator, clientID: clientID}, nil
}

func (g *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*ExternalIdentity, error) {
	payload, err := g.validator.Validate(ctx, rawToken, g.clientID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthenticated, err, "Invalid Google token")
	}

	identity := &ExternalIdentity{
		Provider:      enums.CredentialProviderGoogle,
		Subject:       payload.Subject,
		Email:         claimString(payload.Claims, "email"),
		EmailVerified: claimBool(payload.Claims, "email_verified"),
		Name:          claimString(payload.Claims, "name"),
	}
	if picture := claimString(payload.Claims, "picture"); picture != "" {
		identity.Picture = &picture
	}
	if identity.Subject == "" || identity.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, "Invalid Google token")
	}
	return identity, nil
}

func claimString(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func claimBool(claims map[string]any, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}
