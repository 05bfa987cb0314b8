package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/homestock-backend/internal/repo"
	"github.com/angelmondragon/homestock-backend/pkg/config"
	"github.com/angelmondragon/homestock-backend/pkg/db"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/homestock-backend/pkg/errors"
	"github.com/angelmondragon/homestock-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store persists credentials keyed by (user, provider). Password hashes never
// leave this package.
type Store struct {
	repo.Base
	passwordCfg config.PasswordConfig
}

// NewStore binds the store to db, which may be a transaction.
func NewStore(db *gorm.DB, passwordCfg config.PasswordConfig) *Store {
	return &Store{Base: repo.NewBase(db), passwordCfg: passwordCfg}
}

// Create stores a credential for userID. For the password provider secret is
// hashed; other providers store secret as the provider subject. An existing
// record for the pair yields CONFLICT.
func (s *Store) Create(ctx context.Context, userID uuid.UUID, provider enums.CredentialProvider, secret string) error {
	if !provider.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid credential provider")
	}

	cred := &models.Credential{UserID: userID, Provider: provider}
	if provider == enums.CredentialProviderPassword {
		hash, err := security.HashPassword(secret, s.passwordCfg)
		if err != nil {
			if errors.Is(err, security.ErrPasswordTooLong) {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, security.ErrPasswordTooLong.Error()).
					WithDetails(map[string]string{"password": "must be at most 72 bytes"})
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		cred.PasswordHash = &hash
	} else if subject := strings.TrimSpace(secret); subject != "" {
		cred.ProviderSubject = &subject
		cred.EmailVerified = true
	}

	if err := s.DB(ctx).Create(cred).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "credential already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create credential")
	}
	return nil
}

// Verify compares candidate against the stored password hash. A missing
// record or a record without a hash is a normal mismatch; the comparison cost
// is still paid so timing does not reveal which case applied.
func (s *Store) Verify(ctx context.Context, userID uuid.UUID, provider enums.CredentialProvider, candidate string) (bool, error) {
	cred, err := s.find(ctx, userID, provider)
	if err != nil {
		if db.IsNotFound(err) {
			s.DummyVerify(candidate)
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load credential")
	}
	if cred.PasswordHash == nil || *cred.PasswordHash == "" {
		s.DummyVerify(candidate)
		return false, nil
	}

	ok, err := security.VerifyPassword(candidate, *cred.PasswordHash)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify credential")
	}
	if ok && security.NeedsRehash(*cred.PasswordHash, s.passwordCfg) {
		if err := s.rehash(ctx, cred.ID, candidate); err != nil {
			return false, err
		}
	}
	return ok, nil
}

// DummyVerify pays the cost of a password comparison without a stored hash.
func (s *Store) DummyVerify(candidate string) {
	security.DummyCompare(candidate, s.passwordCfg)
}

// EnsureProvider links an external identity provider to userID. It is a no-op
// when the link already exists.
func (s *Store) EnsureProvider(ctx context.Context, userID uuid.UUID, provider enums.CredentialProvider, subject string) error {
	if provider == enums.CredentialProviderPassword {
		return fmt.Errorf("password credentials must be created with a secret")
	}
	_, err := s.find(ctx, userID, provider)
	switch {
	case err == nil:
		return nil
	case !db.IsNotFound(err):
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load credential")
	}

	err = s.Create(ctx, userID, provider, subject)
	if pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		// lost a race with a concurrent sign-in; the link exists now
		return nil
	}
	return err
}

func (s *Store) find(ctx context.Context, userID uuid.UUID, provider enums.CredentialProvider) (*models.Credential, error) {
	var cred models.Credential
	err := s.DB(ctx).
		Where("user_id = ? AND provider = ?", userID, provider).
		First(&cred).Error
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (s *Store) rehash(ctx context.Context, credentialID uuid.UUID, password string) error {
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rehash password")
	}
	err = s.DB(ctx).
		Model(&models.Credential{}).
		Where("id = ?", credentialID).
		Update("password_hash", hash).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store rehashed password")
	}
	return nil
}
