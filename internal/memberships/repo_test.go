package memberships

import (
	"context"
	"testing"

	"github.com/angelmondragon/homestock-backend/pkg/db/dbtest"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRepositoryMembershipLifecycle(t *testing.T) {
	conn := dbtest.Open(t).DB()
	repo := NewRepository(conn)
	ctx := context.Background()

	owner := &models.User{Email: "owner@example.com", DisplayName: "Owner"}
	guest := &models.User{Email: "guest@example.com", DisplayName: "Guest"}
	require.NoError(t, conn.Create(owner).Error)
	require.NoError(t, conn.Create(guest).Error)
	home := &models.Home{Name: "Lake Cabin", CreatedBy: owner.ID}
	require.NoError(t, conn.Create(home).Error)

	_, err := repo.CreateMembership(ctx, home.ID, owner.ID, enums.MemberRoleOwner, nil, enums.MembershipStatusActive)
	require.NoError(t, err)
	_, err = repo.CreateMembership(ctx, home.ID, guest.ID, enums.MemberRoleMember, &owner.ID, enums.MembershipStatusInvited)
	require.NoError(t, err)

	_, err = repo.CreateMembership(ctx, home.ID, guest.ID, enums.MemberRole("viewer"), nil, enums.MembershipStatusActive)
	require.Error(t, err)

	members, err := repo.ListHomeMembers(ctx, home.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	byEmail := map[string]MemberDTO{}
	for _, m := range members {
		byEmail[m.Email] = m
	}
	require.Equal(t, "Guest", byEmail["guest@example.com"].DisplayName)
	require.Equal(t, owner.ID, *byEmail["guest@example.com"].InvitedBy)

	ok, err := repo.UpdateStatus(ctx, home.ID, guest.ID, enums.MembershipStatusInvited, enums.MembershipStatusActive)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.UpdateStatus(ctx, home.ID, guest.ID, enums.MembershipStatusInvited, enums.MembershipStatusActive)
	require.NoError(t, err)
	require.False(t, ok, "second accept should match nothing")

	found, err := repo.GetMembership(ctx, home.ID, guest.ID)
	require.NoError(t, err)
	require.Equal(t, enums.MembershipStatusActive, found.Status)

	rows, err := repo.ListForHomes(ctx, []uuid.UUID{home.ID})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.NoError(t, repo.DeleteMembership(ctx, home.ID, guest.ID))
	_, err = repo.GetMembership(ctx, home.ID, guest.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
