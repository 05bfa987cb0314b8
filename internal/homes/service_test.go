package homes

import (
	"context"
	"testing"

	"github.com/angelmondragon/homestock-backend/internal/memberships"
	"github.com/angelmondragon/homestock-backend/internal/users"
	"github.com/angelmondragon/homestock-backend/pkg/db"
	"github.com/angelmondragon/homestock-backend/pkg/db/dbtest"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/homestock-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := dbtest.Open(t)
	membershipsRepo := memberships.NewRepository(client.DB())
	guard, err := memberships.NewGuard(membershipsRepo)
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{
		DB:          client,
		Homes:       NewRepository(client.DB()),
		Memberships: membershipsRepo,
		Users:       users.NewRepository(client.DB()),
		Guard:       guard,
	})
	require.NoError(t, err)
	return svc, client
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	require.Equal(t, code, typed.Code())
}

func TestCreateMakesCreatorActiveOwner(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	alice := dbtest.SeedUser(t, client, "alice@example.com")

	home, err := svc.Create(ctx, alice.ID, CreateHomeRequest{Name: "  Lake Cabin "})
	require.NoError(t, err)
	require.Equal(t, "Lake Cabin", home.Name)
	require.Equal(t, alice.ID, home.CreatedBy)
	require.Equal(t, enums.MemberRoleOwner, home.Role)
	require.Len(t, home.Members, 1)
	require.Equal(t, enums.MembershipStatusActive, home.Members[0].Status)

	list, err := svc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, home.ID, list[0].ID)
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), uuid.New(), CreateHomeRequest{Name: "   "})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestDeleteByNonMemberIsForbiddenAndOwnerDeleteCascades(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	alice := dbtest.SeedUser(t, client, "alice@example.com")
	bob := dbtest.SeedUser(t, client, "bob@example.com")

	home, err := svc.Create(ctx, alice.ID, CreateHomeRequest{Name: "Lake Cabin"})
	require.NoError(t, err)

	requireCode(t, svc.Delete(ctx, bob.ID, home.ID), pkgerrors.CodeForbidden)

	catalogItem := &models.CatalogItem{HomeID: home.ID, Name: "Milk", CreatedBy: alice.ID}
	require.NoError(t, client.DB().Create(catalogItem).Error)
	require.NoError(t, client.DB().Create(&models.InventoryItem{
		HomeID:        home.ID,
		CatalogItemID: catalogItem.ID,
		CreatedBy:     alice.ID,
	}).Error)

	require.NoError(t, svc.Delete(ctx, alice.ID, home.ID))

	list, err := svc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, list)

	for _, model := range []any{&models.Home{}, &models.HomeMember{}, &models.CatalogItem{}, &models.InventoryItem{}} {
		var count int64
		require.NoError(t, client.DB().Model(model).Count(&count).Error)
		require.Zero(t, count)
	}

	requireCode(t, svc.Delete(ctx, alice.ID, home.ID), pkgerrors.CodeNotFound)
}

func TestGetMissingVersusForbidden(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	alice := dbtest.SeedUser(t, client, "alice@example.com")
	bob := dbtest.SeedUser(t, client, "bob@example.com")
	home := dbtest.SeedHome(t, client, alice.ID, "Lake Cabin")

	_, err := svc.Get(ctx, bob.ID, home.ID)
	requireCode(t, err, pkgerrors.CodeForbidden)

	_, err = svc.Get(ctx, alice.ID, uuid.New())
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestRenameRequiresAdmin(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	alice := dbtest.SeedUser(t, client, "alice@example.com")
	carol := dbtest.SeedUser(t, client, "carol@example.com")
	home := dbtest.SeedHome(t, client, alice.ID, "Lake Cabin")
	dbtest.SeedMember(t, client, home.ID, carol.ID, enums.MemberRoleMember, enums.MembershipStatusActive)

	_, err := svc.Rename(ctx, carol.ID, home.ID, RenameHomeRequest{Name: "Mine"})
	requireCode(t, err, pkgerrors.CodeForbidden)

	renamed, err := svc.Rename(ctx, alice.ID, home.ID, RenameHomeRequest{Name: "Beach House"})
	require.NoError(t, err)
	require.Equal(t, "Beach House", renamed.Name)
	require.Len(t, renamed.Members, 2)
}

func TestInviteAcceptFlow(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	alice := dbtest.SeedUser(t, client, "alice@example.com")
	bob := dbtest.SeedUser(t, client, "bob@example.com")
	home := dbtest.SeedHome(t, client, alice.ID, "Lake Cabin")

	invited, err := svc.Invite(ctx, alice.ID, home.ID, InviteMemberRequest{Email: "Bob@Example.com"})
	require.NoError(t, err)
	require.Equal(t, bob.ID, invited.UserID)
	require.Equal(t, enums.MemberRoleMember, invited.Role)
	require.Equal(t, enums.MembershipStatusInvited, invited.Status)
	require.NotNil(t, invited.InvitedBy)
	require.Equal(t, alice.ID, *invited.InvitedBy)

	_, err = svc.Invite(ctx, alice.ID, home.ID, InviteMemberRequest{Email: "bob@example.com"})
	requireCode(t, err, pkgerrors.CodeConflict)

	_, err = svc.Get(ctx, bob.ID, home.ID)
	requireCode(t, err, pkgerrors.CodeForbidden)

	invitations, err := svc.ListInvitations(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, invitations, 1)
	require.Equal(t, enums.MembershipStatusInvited, invitations[0].Status)

	accepted, err := svc.AcceptInvitation(ctx, bob.ID, home.ID)
	require.NoError(t, err)
	require.Equal(t, enums.MembershipStatusActive, accepted.Status)

	_, err = svc.Get(ctx, bob.ID, home.ID)
	require.NoError(t, err)

	members, err := svc.ListMembers(ctx, bob.ID, home.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, "alice@example.com", members[0].Email)
}

func TestInviteRules(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	alice := dbtest.SeedUser(t, client, "alice@example.com")
	carol := dbtest.SeedUser(t, client, "carol@example.com")
	dbtest.SeedUser(t, client, "dave@example.com")
	home := dbtest.SeedHome(t, client, alice.ID, "Lake Cabin")
	dbtest.SeedMember(t, client, home.ID, carol.ID, enums.MemberRoleMember, enums.MembershipStatusActive)

	_, err := svc.Invite(ctx, alice.ID, home.ID, InviteMemberRequest{Email: "nobody@example.com"})
	requireCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.Invite(ctx, alice.ID, home.ID, InviteMemberRequest{Email: "dave@example.com", Role: enums.MemberRoleOwner})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Invite(ctx, alice.ID, home.ID, InviteMemberRequest{Email: "dave@example.com", Role: "viewer"})
	requireCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Invite(ctx, carol.ID, home.ID, InviteMemberRequest{Email: "dave@example.com"})
	requireCode(t, err, pkgerrors.CodeForbidden)

	admin, err := svc.Invite(ctx, alice.ID, home.ID, InviteMemberRequest{Email: "dave@example.com", Role: " Admin "})
	require.NoError(t, err)
	require.Equal(t, enums.MemberRoleAdmin, admin.Role)
}

func TestRemoveMember(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()
	alice := dbtest.SeedUser(t, client, "alice@example.com")
	admin := dbtest.SeedUser(t, client, "admin@example.com")
	carol := dbtest.SeedUser(t, client, "carol@example.com")
	dave := dbtest.SeedUser(t, client, "dave@example.com")
	home := dbtest.SeedHome(t, client, alice.ID, "Lake Cabin")
	dbtest.SeedMember(t, client, home.ID, admin.ID, enums.MemberRoleAdmin, enums.MembershipStatusActive)
	dbtest.SeedMember(t, client, home.ID, carol.ID, enums.MemberRoleMember, enums.MembershipStatusActive)
	dbtest.SeedMember(t, client, home.ID, dave.ID, enums.MemberRoleMember, enums.MembershipStatusInvited)

	requireCode(t, svc.RemoveMember(ctx, carol.ID, home.ID, admin.ID), pkgerrors.CodeForbidden)
	requireCode(t, svc.RemoveMember(ctx, admin.ID, home.ID, alice.ID), pkgerrors.CodeConflict)
	requireCode(t, svc.RemoveMember(ctx, alice.ID, home.ID, alice.ID), pkgerrors.CodeConflict)
	requireCode(t, svc.RemoveMember(ctx, admin.ID, home.ID, uuid.New()), pkgerrors.CodeNotFound)

	require.NoError(t, svc.RemoveMember(ctx, dave.ID, home.ID, dave.ID))
	require.NoError(t, svc.RemoveMember(ctx, admin.ID, home.ID, carol.ID))
	require.NoError(t, svc.RemoveMember(ctx, alice.ID, home.ID, admin.ID))

	members, err := svc.ListMembers(ctx, alice.ID, home.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
}
