package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/homestock-backend/internal/credentials"
	"github.com/angelmondragon/homestock-backend/internal/users"
	"github.com/angelmondragon/homestock-backend/pkg/config"
	"github.com/angelmondragon/homestock-backend/pkg/db"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/homestock-backend/pkg/errors"
	"gorm.io/gorm"
)

const emailInUseMessage = "Email already in use"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AccountStore creates a user together with its first credential in one
// transaction, so a user never exists without a usable credential.
type AccountStore struct {
	db          txRunner
	passwordCfg config.PasswordConfig
}

func NewAccountStore(client txRunner, passwordCfg config.PasswordConfig) (*AccountStore, error) {
	if client == nil {
		return nil, fmt.Errorf("database client required")
	}
	return &AccountStore{db: client, passwordCfg: passwordCfg}, nil
}

// CreatePasswordAccount inserts the user and a password credential. A taken
// email surfaces as CONFLICT, including when a concurrent registration wins
// the unique index.
func (a *AccountStore) CreatePasswordAccount(ctx context.Context, email, displayName, password string) (*models.User, error) {
	return a.create(ctx, users.CreateUserDTO{
		Email:       email,
		DisplayName: strings.TrimSpace(displayName),
	}, enums.CredentialProviderPassword, password)
}

// CreateOAuthAccount inserts the user and an external provider credential.
func (a *AccountStore) CreateOAuthAccount(ctx context.Context, identity ExternalIdentity) (*models.User, error) {
	return a.create(ctx, users.CreateUserDTO{
		Email:       identity.Email,
		DisplayName: identity.DisplayName(),
		AvatarURL:   identity.Picture,
	}, identity.Provider, identity.Subject)
}

func (a *AccountStore) create(ctx context.Context, dto users.CreateUserDTO, provider enums.CredentialProvider, secret string) (*models.User, error) {
	var created *models.User
	err := a.db.WithTx(ctx, func(tx *gorm.DB) error {
		user, err := users.NewRepository(tx).Create(ctx, dto)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, emailInUseMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		if err := credentials.NewStore(tx, a.passwordCfg).Create(ctx, user.ID, provider, secret); err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) == nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create account")
		}
		return nil, err
	}
	return created, nil
}
