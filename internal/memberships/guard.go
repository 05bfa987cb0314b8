package memberships

import (
	"context"
	"fmt"

	"github.com/angelmondragon/homestock-backend/pkg/db"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/homestock-backend/pkg/errors"
	"github.com/google/uuid"
)

type accessRepository interface {
	FindHome(ctx context.Context, homeID uuid.UUID) (*models.Home, error)
	GetMembership(ctx context.Context, homeID, userID uuid.UUID) (*models.HomeMember, error)
}

// Access is the result of a successful check: the home and the actor's
// active membership in it.
type Access struct {
	Home   *models.Home
	Member *models.HomeMember
}

// IsOwner reports whether the actor owns the home, either as its creator or
// through the owner role.
func (a *Access) IsOwner() bool {
	if a == nil || a.Home == nil || a.Member == nil {
		return false
	}
	return a.Home.CreatedBy == a.Member.UserID || a.Member.Role == enums.MemberRoleOwner
}

// Guard enforces home-scoped authorization. A missing home is NOT_FOUND; an
// existing home the actor may not touch is FORBIDDEN.
type Guard struct {
	repo accessRepository
}

func NewGuard(repo accessRepository) (*Guard, error) {
	if repo == nil {
		return nil, fmt.Errorf("memberships repository required")
	}
	return &Guard{repo: repo}, nil
}

// RequireActiveMember allows any active member of the home.
func (g *Guard) RequireActiveMember(ctx context.Context, homeID, userID uuid.UUID) (*Access, error) {
	home, err := g.repo.FindHome(ctx, homeID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "home not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load home")
	}

	member, err := g.repo.GetMembership(ctx, homeID, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not a member of this home")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load membership")
	}
	if member.Status != enums.MembershipStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "membership is not active")
	}
	return &Access{Home: home, Member: member}, nil
}

// RequireRole allows active members whose role is at least min.
func (g *Guard) RequireRole(ctx context.Context, homeID, userID uuid.UUID, min enums.MemberRole) (*Access, error) {
	access, err := g.RequireActiveMember(ctx, homeID, userID)
	if err != nil {
		return nil, err
	}
	if !access.Member.Role.AtLeast(min) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient home role")
	}
	return access, nil
}

// RequireOwner allows only the user recorded as the home's creator. It does
// not require an active membership so the creator can always clean up.
func (g *Guard) RequireOwner(ctx context.Context, homeID, userID uuid.UUID) (*models.Home, error) {
	home, err := g.repo.FindHome(ctx, homeID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "home not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load home")
	}
	if home.CreatedBy != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the home owner can do this")
	}
	return home, nil
}

// RequireOwnerOrCreator allows the home owner or the user who created the
// resource. Both must still be active members.
func (g *Guard) RequireOwnerOrCreator(ctx context.Context, homeID, userID, createdBy uuid.UUID) (*Access, error) {
	access, err := g.RequireActiveMember(ctx, homeID, userID)
	if err != nil {
		return nil, err
	}
	if access.IsOwner() || createdBy == userID {
		return access, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the home owner or the creator can do this")
}
