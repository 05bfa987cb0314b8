package memberships

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/homestock-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubAccessRepo struct {
	homes   map[uuid.UUID]*models.Home
	members map[[2]uuid.UUID]*models.HomeMember
	err     error
}

func newStubAccessRepo() *stubAccessRepo {
	return &stubAccessRepo{
		homes:   map[uuid.UUID]*models.Home{},
		members: map[[2]uuid.UUID]*models.HomeMember{},
	}
}

func (s *stubAccessRepo) FindHome(ctx context.Context, homeID uuid.UUID) (*models.Home, error) {
	if s.err != nil {
		return nil, s.err
	}
	if h, ok := s.homes[homeID]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAccessRepo) GetMembership(ctx context.Context, homeID, userID uuid.UUID) (*models.HomeMember, error) {
	if m, ok := s.members[[2]uuid.UUID{homeID, userID}]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubAccessRepo) add(homeID, userID uuid.UUID, role enums.MemberRole, status enums.MembershipStatus) {
	s.members[[2]uuid.UUID{homeID, userID}] = &models.HomeMember{HomeID: homeID, UserID: userID, Role: role, Status: status}
}

func TestGuardChecks(t *testing.T) {
	repo := newStubAccessRepo()
	guard, err := NewGuard(repo)
	if err != nil {
		t.Fatalf("new guard: %v", err)
	}

	owner, admin, member, invited, stranger := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()
	homeID := uuid.New()
	repo.homes[homeID] = &models.Home{ID: homeID, Name: "Lake Cabin", CreatedBy: owner}
	repo.add(homeID, owner, enums.MemberRoleOwner, enums.MembershipStatusActive)
	repo.add(homeID, admin, enums.MemberRoleAdmin, enums.MembershipStatusActive)
	repo.add(homeID, member, enums.MemberRoleMember, enums.MembershipStatusActive)
	repo.add(homeID, invited, enums.MemberRoleMember, enums.MembershipStatusInvited)

	ctx := context.Background()
	expectCode := func(name string, err error, code pkgerrors.Code) {
		t.Helper()
		if !pkgerrors.HasCode(err, code) {
			t.Fatalf("%s: expected %s, got %v", name, code, err)
		}
	}

	if _, err := guard.RequireActiveMember(ctx, homeID, member); err != nil {
		t.Fatalf("active member rejected: %v", err)
	}
	_, err = guard.RequireActiveMember(ctx, homeID, invited)
	expectCode("invited member", err, pkgerrors.CodeForbidden)
	_, err = guard.RequireActiveMember(ctx, homeID, stranger)
	expectCode("stranger", err, pkgerrors.CodeForbidden)
	_, err = guard.RequireActiveMember(ctx, uuid.New(), owner)
	expectCode("missing home", err, pkgerrors.CodeNotFound)

	if _, err := guard.RequireRole(ctx, homeID, admin, enums.MemberRoleAdmin); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	_, err = guard.RequireRole(ctx, homeID, member, enums.MemberRoleAdmin)
	expectCode("member as admin", err, pkgerrors.CodeForbidden)

	if _, err := guard.RequireOwner(ctx, homeID, owner); err != nil {
		t.Fatalf("owner rejected: %v", err)
	}
	_, err = guard.RequireOwner(ctx, homeID, admin)
	expectCode("admin as owner", err, pkgerrors.CodeForbidden)

	if _, err := guard.RequireOwnerOrCreator(ctx, homeID, member, member); err != nil {
		t.Fatalf("creator rejected: %v", err)
	}
	if _, err := guard.RequireOwnerOrCreator(ctx, homeID, owner, member); err != nil {
		t.Fatalf("owner rejected for member's item: %v", err)
	}
	_, err = guard.RequireOwnerOrCreator(ctx, homeID, admin, member)
	expectCode("admin deleting member's item", err, pkgerrors.CodeForbidden)
}

func TestGuardWrapsStorageErrors(t *testing.T) {
	repo := newStubAccessRepo()
	repo.err = errors.New("connection reset")
	guard, _ := NewGuard(repo)

	_, err := guard.RequireActiveMember(context.Background(), uuid.New(), uuid.New())
	if !pkgerrors.HasCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
