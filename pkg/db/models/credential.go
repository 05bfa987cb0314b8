package models

import (
	"time"

	"github.com/angelmondragon/homestock-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Credential stores proof material for a single (user, provider) pair.
// PasswordHash is only set for the password provider.
type Credential struct {
	ID              uuid.UUID                `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID                `gorm:"column:user_id;type:uuid;not null;uniqueIndex:credentials_user_provider_key,priority:1"`
	Provider        enums.CredentialProvider `gorm:"column:provider;type:text;not null;uniqueIndex:credentials_user_provider_key,priority:2"`
	PasswordHash    *string                  `gorm:"column:password_hash"`
	ProviderSubject *string                  `gorm:"column:provider_subject"`
	EmailVerified   bool                     `gorm:"column:email_verified;not null;default:false"`

	// Lockout and reset columns are persisted but not enforced.
	FailedLoginAttempts int        `gorm:"column:failed_login_attempts;not null;default:0"`
	LockedUntil         *time.Time `gorm:"column:locked_until"`
	ResetToken          *string    `gorm:"column:reset_token"`
	ResetTokenExpiresAt *time.Time `gorm:"column:reset_token_expires_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Credential) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}
