package memberships

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
)

// MembershipDTO is the transport shape for a raw membership record, as
// embedded in a home.
type MembershipDTO struct {
	UserID    uuid.UUID              `json:"userId"`
	Role      enums.MemberRole       `json:"role"`
	Status    enums.MembershipStatus `json:"status"`
	InvitedBy *uuid.UUID             `json:"invitedBy,omitempty"`
}

// MemberDTO mixes membership metadata with the member's profile.
type MemberDTO struct {
	UserID      uuid.UUID              `json:"userId"`
	Email       string                 `json:"email"`
	DisplayName string                 `json:"displayName"`
	Role        enums.MemberRole       `json:"role"`
	Status      enums.MembershipStatus `json:"status"`
	InvitedBy   *uuid.UUID             `json:"invitedBy,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// ToDTO converts a model to the external DTO.
func ToDTO(m models.HomeMember) MembershipDTO {
	return MembershipDTO{
		UserID:    m.UserID,
		Role:      m.Role,
		Status:    m.Status,
		InvitedBy: copyUUIDPointer(m.InvitedBy),
	}
}

func copyUUIDPointer(src *uuid.UUID) *uuid.UUID {
	if src == nil {
		return nil
	}
	dst := *src
	return &dst
}
