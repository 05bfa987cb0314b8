package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/homestock-backend/internal/users"
	"github.com/angelmondragon/homestock-backend/pkg/db"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/homestock-backend/pkg/errors"
	"github.com/angelmondragon/homestock-backend/pkg/metrics"
	"github.com/angelmondragon/homestock-backend/pkg/security"
	"github.com/google/uuid"
)

const (
	invalidCredentialsMessage = "Invalid email or password"
	userNotFoundMessage       = "User not found"
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Session, error)
	Login(ctx context.Context, req LoginRequest) (*Session, error)
	GoogleLogin(ctx context.Context, req GoogleLoginRequest) (*Session, error)
	Me(ctx context.Context, userID uuid.UUID) (*users.PublicUser, error)
}

type userLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type credentialStore interface {
	Verify(ctx context.Context, userID uuid.UUID, provider enums.CredentialProvider, candidate string) (bool, error)
	EnsureProvider(ctx context.Context, userID uuid.UUID, provider enums.CredentialProvider, subject string) error
	DummyVerify(candidate string)
}

type accountCreator interface {
	CreatePasswordAccount(ctx context.Context, email, displayName, password string) (*models.User, error)
	CreateOAuthAccount(ctx context.Context, identity ExternalIdentity) (*models.User, error)
}

type profileReader interface {
	Get(ctx context.Context, id uuid.UUID) (*users.PublicUser, error)
}

type tokenIssuer interface {
	Issue(userID uuid.UUID) (string, time.Time, error)
}

type identityVerifier interface {
	Verify(ctx context.Context, rawToken string) (*ExternalIdentity, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Users       userLookup
	Credentials credentialStore
	Accounts    accountCreator
	Profiles    profileReader
	Tokens      tokenIssuer
	// Google is optional; GoogleLogin reports NOT_FOUND when it is nil.
	Google  identityVerifier
	Metrics *metrics.AuthMetrics
}

type service struct {
	users       userLookup
	credentials credentialStore
	accounts    accountCreator
	profiles    profileReader
	tokens      tokenIssuer
	google      identityVerifier
	metrics     *metrics.AuthMetrics
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if params.Credentials == nil {
		return nil, fmt.Errorf("credential store required")
	}
	if params.Accounts == nil {
		return nil, fmt.Errorf("account store required")
	}
	if params.Profiles == nil {
		return nil, fmt.Errorf("profile reader required")
	}
	if params.Tokens == nil {
		return nil, fmt.Errorf("token issuer required")
	}
	return &service{
		users:       params.Users,
		credentials: params.Credentials,
		accounts:    params.Accounts,
		profiles:    params.Profiles,
		tokens:      params.Tokens,
		google:      params.Google,
		metrics:     params.Metrics,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "displayName is required")
	}
	if len(req.Password) > security.MaxPasswordBytes {
		err := pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"password": fmt.Sprintf("must be at most %d bytes", security.MaxPasswordBytes)})
		s.observe("register", err)
		return nil, err
	}
	user, err := s.accounts.CreatePasswordAccount(ctx, users.NormalizeEmail(req.Email), req.DisplayName, req.Password)
	if err != nil {
		s.observe("register", err)
		return nil, err
	}
	session, err := s.startSession(ctx, user.ID)
	s.observe("register", err)
	return session, err
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		s.observe("login", err)
		return nil, err
	}
	session, err := s.startSession(ctx, user.ID)
	s.observe("login", err)
	return session, err
}

func (s *service) authenticate(ctx context.Context, req LoginRequest) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if db.IsNotFound(err) {
			s.credentials.DummyVerify(req.Password)
			return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	ok, err := s.credentials.Verify(ctx, user.ID, enums.CredentialProviderPassword, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, invalidCredentialsMessage)
	}
	return user, nil
}

// GoogleLogin signs in with a Google ID token, creating the account on first
// use and linking the provider to an existing account with the same email.
func (s *service) GoogleLogin(ctx context.Context, req GoogleLoginRequest) (*Session, error) {
	if s.google == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "google sign-in is not enabled")
	}
	identity, err := s.google.Verify(ctx, req.IDToken)
	if err != nil {
		s.observe("google_login", err)
		return nil, err
	}
	if !identity.EmailVerified {
		err := pkgerrors.New(pkgerrors.CodeUnauthenticated, "Google account email is not verified")
		s.observe("google_login", err)
		return nil, err
	}
	identity.Email = users.NormalizeEmail(identity.Email)

	user, err := s.resolveExternal(ctx, *identity)
	if err != nil {
		s.observe("google_login", err)
		return nil, err
	}
	session, err := s.startSession(ctx, user.ID)
	s.observe("google_login", err)
	return session, err
}

func (s *service) resolveExternal(ctx context.Context, identity ExternalIdentity) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		if err := s.credentials.EnsureProvider(ctx, user.ID, identity.Provider, identity.Subject); err != nil {
			return nil, err
		}
		return user, nil
	case !db.IsNotFound(err):
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	user, err = s.accounts.CreateOAuthAccount(ctx, identity)
	if pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		// a concurrent sign-in created the account first
		existing, findErr := s.users.FindByEmail(ctx, identity.Email)
		if findErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, findErr, "lookup user")
		}
		if err := s.credentials.EnsureProvider(ctx, existing.ID, identity.Provider, identity.Subject); err != nil {
			return nil, err
		}
		return existing, nil
	}
	return user, err
}

// Me resolves the public profile for an authenticated user. A session whose
// user no longer exists is treated as unauthenticated.
func (s *service) Me(ctx context.Context, userID uuid.UUID) (*users.PublicUser, error) {
	user, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthenticated, userNotFoundMessage)
		}
		return nil, err
	}
	return user, nil
}

func (s *service) startSession(ctx context.Context, userID uuid.UUID) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue session token")
	}
	user, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *service) observe(operation string, err error) {
	switch {
	case err == nil:
		s.metrics.Observe(operation, metrics.OutcomeSuccess)
	case pkgerrors.HasCode(err, pkgerrors.CodeConflict):
		s.metrics.Observe(operation, metrics.OutcomeConflict)
	case pkgerrors.HasCode(err, pkgerrors.CodeUnauthenticated), pkgerrors.HasCode(err, pkgerrors.CodeValidation):
		s.metrics.Observe(operation, metrics.OutcomeRejected)
	default:
		s.metrics.Observe(operation, metrics.OutcomeError)
	}
}
