package models

import (
	"time"

	"github.com/angelmondragon/homestock-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HomeMember links a user to a home with a role and lifecycle status.
type HomeMember struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey"`
	HomeID    uuid.UUID              `gorm:"column:home_id;type:uuid;not null;uniqueIndex:home_members_home_user_key,priority:1"`
	UserID    uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:home_members_home_user_key,priority:2"`
	Role      enums.MemberRole       `gorm:"column:role;type:text;not null"`
	Status    enums.MembershipStatus `gorm:"column:status;type:text;not null"`
	InvitedBy *uuid.UUID             `gorm:"column:invited_by;type:uuid"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (HomeMember) TableName() string {
	return "home_members"
}

func (m *HomeMember) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}
