package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
)

// PublicUser is the client-facing projection of a user. It never carries
// credential material.
type PublicUser struct {
	ID              uuid.UUID        `json:"id"`
	Email           string           `json:"email"`
	DisplayName     string           `json:"displayName"`
	AvatarURL       *string          `json:"avatarUrl,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
	HomeMemberships []HomeMembership `json:"homeMemberships"`
}

// HomeMembership is one entry of a user's membership list.
type HomeMembership struct {
	HomeID    uuid.UUID              `json:"homeId"`
	Role      enums.MemberRole       `json:"role"`
	Status    enums.MembershipStatus `json:"status"`
	InvitedBy *uuid.UUID             `json:"invitedBy,omitempty"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email       string
	DisplayName string
	AvatarURL   *string
}

// UpdateProfileRequest is the PATCH /api/users/me payload.
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName" validate:"omitempty,min=1,max=80"`
	AvatarURL   *string `json:"avatarUrl" validate:"omitempty,url,max=2048"`
}

func FromModel(u *models.User, memberships []models.HomeMember) *PublicUser {
	if u == nil {
		return nil
	}

	out := &PublicUser{
		ID:              u.ID,
		Email:           u.Email,
		DisplayName:     u.DisplayName,
		AvatarURL:       u.AvatarURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
		HomeMemberships: make([]HomeMembership, 0, len(memberships)),
	}
	for _, m := range memberships {
		out.HomeMemberships = append(out.HomeMemberships, HomeMembership{
			HomeID:    m.HomeID,
			Role:      m.Role,
			Status:    m.Status,
			InvitedBy: m.InvitedBy,
		})
	}
	return out
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Email:       NormalizeEmail(c.Email),
		DisplayName: c.DisplayName,
		AvatarURL:   c.AvatarURL,
	}
}
