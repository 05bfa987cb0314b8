// Package dbtest opens throwaway SQLite databases migrated with every model,
// for repository and service tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/angelmondragon/homestock-backend/pkg/config"
	"github.com/angelmondragon/homestock-backend/pkg/db"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
	"github.com/google/uuid"
)

// Open returns a client backed by a fresh SQLite file under t.TempDir. The
// connection is closed when the test finishes.
func Open(t testing.TB) *db.Client {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "homestock.db") + "?_busy_timeout=5000"
	client, err := db.New(context.Background(), config.DBConfig{
		Driver:       config.DBDriverSQLite,
		DSN:          dsn,
		MaxOpenConns: 4,
	}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return client
}

// SeedUser inserts a user with the given email.
func SeedUser(t testing.TB, client *db.Client, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, DisplayName: email}
	if err := client.DB().Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// SeedHome inserts a home created by ownerID along with the owner's active
// membership.
func SeedHome(t testing.TB, client *db.Client, ownerID uuid.UUID, name string) *models.Home {
	t.Helper()
	home := &models.Home{Name: name, CreatedBy: ownerID}
	if err := client.DB().Create(home).Error; err != nil {
		t.Fatalf("seed home: %v", err)
	}
	SeedMember(t, client, home.ID, ownerID, enums.MemberRoleOwner, enums.MembershipStatusActive)
	return home
}

// SeedMember inserts a membership row.
func SeedMember(t testing.TB, client *db.Client, homeID, userID uuid.UUID, role enums.MemberRole, status enums.MembershipStatus) *models.HomeMember {
	t.Helper()
	member := &models.HomeMember{HomeID: homeID, UserID: userID, Role: role, Status: status}
	if err := client.DB().Create(member).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return member
}
