package homes

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/homestock-backend/internal/memberships"
	"github.com/angelmondragon/homestock-backend/internal/users"
	"github.com/angelmondragon/homestock-backend/pkg/db"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/homestock-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type homeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Home, error)
	ListForMember(ctx context.Context, userID uuid.UUID, status enums.MembershipStatus) ([]models.Home, error)
	Rename(ctx context.Context, id uuid.UUID, name string) (bool, error)
}

type membershipsRepository interface {
	GetMembership(ctx context.Context, homeID, userID uuid.UUID) (*models.HomeMember, error)
	CreateMembership(ctx context.Context, homeID, userID uuid.UUID, role enums.MemberRole, invitedBy *uuid.UUID, status enums.MembershipStatus) (*models.HomeMember, error)
	UpdateStatus(ctx context.Context, homeID, userID uuid.UUID, from, to enums.MembershipStatus) (bool, error)
	DeleteMembership(ctx context.Context, homeID, userID uuid.UUID) error
	ListHomeMembers(ctx context.Context, homeID uuid.UUID) ([]memberships.MemberDTO, error)
	ListForHomes(ctx context.Context, homeIDs []uuid.UUID) ([]models.HomeMember, error)
}

type usersRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type accessGuard interface {
	RequireActiveMember(ctx context.Context, homeID, userID uuid.UUID) (*memberships.Access, error)
	RequireRole(ctx context.Context, homeID, userID uuid.UUID, min enums.MemberRole) (*memberships.Access, error)
	RequireOwner(ctx context.Context, homeID, userID uuid.UUID) (*models.Home, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes home and membership operations.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, req CreateHomeRequest) (*HomeDTO, error)
	List(ctx context.Context, actorID uuid.UUID) ([]HomeDTO, error)
	ListInvitations(ctx context.Context, actorID uuid.UUID) ([]HomeDTO, error)
	Get(ctx context.Context, actorID, homeID uuid.UUID) (*HomeDTO, error)
	Rename(ctx context.Context, actorID, homeID uuid.UUID, req RenameHomeRequest) (*HomeDTO, error)
	Delete(ctx context.Context, actorID, homeID uuid.UUID) error
	ListMembers(ctx context.Context, actorID, homeID uuid.UUID) ([]memberships.MemberDTO, error)
	Invite(ctx context.Context, actorID, homeID uuid.UUID, req InviteMemberRequest) (*memberships.MemberDTO, error)
	AcceptInvitation(ctx context.Context, actorID, homeID uuid.UUID) (*HomeDTO, error)
	RemoveMember(ctx context.Context, actorID, homeID, targetID uuid.UUID) error
}

// ServiceParams bundles the dependencies required to build a homes service.
type ServiceParams struct {
	DB          txRunner
	Homes       homeRepository
	Memberships membershipsRepository
	Users       usersRepository
	Guard       accessGuard
}

type service struct {
	db          txRunner
	homes       homeRepository
	memberships membershipsRepository
	users       usersRepository
	guard       accessGuard
}

// NewService builds a homes service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client required")
	}
	if params.Homes == nil {
		return nil, fmt.Errorf("homes repository required")
	}
	if params.Memberships == nil {
		return nil, fmt.Errorf("memberships repository required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.Guard == nil {
		return nil, fmt.Errorf("access guard required")
	}
	return &service{
		db:          params.DB,
		homes:       params.Homes,
		memberships: params.Memberships,
		users:       params.Users,
		guard:       params.Guard,
	}, nil
}

// Create inserts the home and the creator's active owner membership together.
func (s *service) Create(ctx context.Context, actorID uuid.UUID, req CreateHomeRequest) (*HomeDTO, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}

	home := &models.Home{Name: name, CreatedBy: actorID}
	var owner *models.HomeMember
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := NewRepository(tx).Create(ctx, home); err != nil {
			return err
		}
		owner, err = memberships.NewRepository(tx).CreateMembership(ctx, home.ID, actorID, enums.MemberRoleOwner, nil, enums.MembershipStatusActive)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create home")
	}
	return FromModel(home, []models.HomeMember{*owner}, actorID), nil
}

func (s *service) List(ctx context.Context, actorID uuid.UUID) ([]HomeDTO, error) {
	return s.listForMember(ctx, actorID, enums.MembershipStatusActive)
}

func (s *service) ListInvitations(ctx context.Context, actorID uuid.UUID) ([]HomeDTO, error) {
	return s.listForMember(ctx, actorID, enums.MembershipStatusInvited)
}

func (s *service) listForMember(ctx context.Context, actorID uuid.UUID, status enums.MembershipStatus) ([]HomeDTO, error) {
	homes, err := s.homes.ListForMember(ctx, actorID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list homes")
	}
	ids := make([]uuid.UUID, 0, len(homes))
	for _, h := range homes {
		ids = append(ids, h.ID)
	}
	members, err := s.memberships.ListForHomes(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list home members")
	}

	out := make([]HomeDTO, 0, len(homes))
	for i := range homes {
		out = append(out, *FromModel(&homes[i], members, actorID))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, actorID, homeID uuid.UUID) (*HomeDTO, error) {
	access, err := s.guard.RequireActiveMember(ctx, homeID, actorID)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, access.Home, actorID)
}

// Rename requires an owner or admin.
func (s *service) Rename(ctx context.Context, actorID, homeID uuid.UUID, req RenameHomeRequest) (*HomeDTO, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	access, err := s.guard.RequireRole(ctx, homeID, actorID, enums.MemberRoleAdmin)
	if err != nil {
		return nil, err
	}
	ok, err := s.homes.Rename(ctx, homeID, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rename home")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "home not found")
	}
	access.Home.Name = name
	return s.toDTO(ctx, access.Home, actorID)
}

// Delete is reserved to the creator and removes members, catalog and
// inventory with the home.
func (s *service) Delete(ctx context.Context, actorID, homeID uuid.UUID) error {
	if _, err := s.guard.RequireOwner(ctx, homeID, actorID); err != nil {
		return err
	}
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return NewRepository(tx).DeleteCascade(ctx, homeID)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete home")
	}
	return nil
}

func (s *service) ListMembers(ctx context.Context, actorID, homeID uuid.UUID) ([]memberships.MemberDTO, error) {
	if _, err := s.guard.RequireActiveMember(ctx, homeID, actorID); err != nil {
		return nil, err
	}
	members, err := s.memberships.ListHomeMembers(ctx, homeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list home members")
	}
	return members, nil
}

// Invite adds an existing user as an invited member. The unique
// (home, user) index decides races between concurrent invites.
func (s *service) Invite(ctx context.Context, actorID, homeID uuid.UUID, req InviteMemberRequest) (*memberships.MemberDTO, error) {
	role := enums.MemberRoleMember
	if raw := strings.ToLower(strings.TrimSpace(string(req.Role))); raw != "" {
		parsed, err := enums.ParseMemberRole(raw)
		if err != nil || parsed == enums.MemberRoleOwner {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be admin or member")
		}
		role = parsed
	}
	email := users.NormalizeEmail(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	access, err := s.guard.RequireRole(ctx, homeID, actorID, enums.MemberRoleAdmin)
	if err != nil {
		return nil, err
	}
	if role == enums.MemberRoleAdmin && !access.IsOwner() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the home owner can invite admins")
	}

	target, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	membership, err := s.memberships.CreateMembership(ctx, homeID, target.ID, role, &actorID, enums.MembershipStatusInvited)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "user is already a member of this home")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create membership")
	}

	return &memberships.MemberDTO{
		UserID:      target.ID,
		Email:       target.Email,
		DisplayName: target.DisplayName,
		Role:        membership.Role,
		Status:      membership.Status,
		InvitedBy:   membership.InvitedBy,
		CreatedAt:   membership.CreatedAt,
	}, nil
}

// AcceptInvitation activates the caller's pending membership. Accepting an
// already active membership is a no-op.
func (s *service) AcceptInvitation(ctx context.Context, actorID, homeID uuid.UUID) (*HomeDTO, error) {
	home, err := s.findHome(ctx, homeID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findMembership(ctx, homeID, actorID, "invitation not found"); err != nil {
		return nil, err
	}
	if _, err := s.memberships.UpdateStatus(ctx, homeID, actorID, enums.MembershipStatusInvited, enums.MembershipStatusActive); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "accept invitation")
	}
	return s.toDTO(ctx, home, actorID)
}

// RemoveMember lets a member leave (or decline an invitation) and lets owners
// and admins remove others. The owner can never be removed; admins can only
// remove plain members.
func (s *service) RemoveMember(ctx context.Context, actorID, homeID, targetID uuid.UUID) error {
	home, err := s.findHome(ctx, homeID)
	if err != nil {
		return err
	}

	if actorID != targetID {
		access, err := s.guard.RequireRole(ctx, homeID, actorID, enums.MemberRoleAdmin)
		if err != nil {
			return err
		}
		target, err := s.findMembership(ctx, homeID, targetID, "member not found")
		if err != nil {
			return err
		}
		if isHomeOwner(home, target) {
			return pkgerrors.New(pkgerrors.CodeConflict, "the home owner cannot be removed")
		}
		if target.Role == enums.MemberRoleAdmin && !access.IsOwner() {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only the home owner can remove admins")
		}
	} else {
		self, err := s.findMembership(ctx, homeID, actorID, "member not found")
		if err != nil {
			return err
		}
		if isHomeOwner(home, self) {
			return pkgerrors.New(pkgerrors.CodeConflict, "the home owner cannot leave; delete the home instead")
		}
	}

	if err := s.memberships.DeleteMembership(ctx, homeID, targetID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete membership")
	}
	return nil
}

func (s *service) findHome(ctx context.Context, homeID uuid.UUID) (*models.Home, error) {
	home, err := s.homes.FindByID(ctx, homeID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "home not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load home")
	}
	return home, nil
}

func (s *service) findMembership(ctx context.Context, homeID, userID uuid.UUID, notFound string) (*models.HomeMember, error) {
	membership, err := s.memberships.GetMembership(ctx, homeID, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, notFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load membership")
	}
	return membership, nil
}

func (s *service) toDTO(ctx context.Context, home *models.Home, actorID uuid.UUID) (*HomeDTO, error) {
	members, err := s.memberships.ListForHomes(ctx, []uuid.UUID{home.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list home members")
	}
	return FromModel(home, members, actorID), nil
}

func isHomeOwner(home *models.Home, member *models.HomeMember) bool {
	return home.CreatedBy == member.UserID || member.Role == enums.MemberRoleOwner
}

func normalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	return trimmed, nil
}
