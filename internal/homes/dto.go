package homes

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/homestock-backend/internal/memberships"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
)

// HomeDTO exposes a home together with its member list and the caller's own
// role and status in it.
type HomeDTO struct {
	ID        uuid.UUID                   `json:"id"`
	Name      string                      `json:"name"`
	CreatedBy uuid.UUID                   `json:"createdBy"`
	Role      enums.MemberRole            `json:"role,omitempty"`
	Status    enums.MembershipStatus      `json:"status,omitempty"`
	Members   []memberships.MembershipDTO `json:"members"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}

// CreateHomeRequest is the POST /api/homes payload.
type CreateHomeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// RenameHomeRequest is the PATCH /api/homes/{homeId} payload.
type RenameHomeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// InviteMemberRequest invites an existing user by email. Role defaults to member.
type InviteMemberRequest struct {
	Email string           `json:"email" validate:"required,email"`
	Role  enums.MemberRole `json:"role,omitempty" validate:"omitempty,oneof=admin member"`
}

// FromModel maps a home and its memberships into a DTO from actorID's view.
func FromModel(home *models.Home, members []models.HomeMember, actorID uuid.UUID) *HomeDTO {
	if home == nil {
		return nil
	}
	dto := &HomeDTO{
		ID:        home.ID,
		Name:      home.Name,
		CreatedBy: home.CreatedBy,
		Members:   make([]memberships.MembershipDTO, 0, len(members)),
		CreatedAt: home.CreatedAt,
		UpdatedAt: home.UpdatedAt,
	}
	for _, m := range members {
		if m.HomeID != home.ID {
			continue
		}
		dto.Members = append(dto.Members, memberships.ToDTO(m))
		if m.UserID == actorID {
			dto.Role = m.Role
			dto.Status = m.Status
		}
	}
	return dto
}
