package homes

import (
	"context"

	"github.com/angelmondragon/homestock-backend/internal/repo"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes home persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository binds the repo to db, which may be a transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, home *models.Home) error {
	return r.DB(ctx).Create(home).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Home, error) {
	var home models.Home
	if err := r.DB(ctx).First(&home, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &home, nil
}

// ListForMember returns homes in which userID holds a membership with status.
func (r *Repository) ListForMember(ctx context.Context, userID uuid.UUID, status enums.MembershipStatus) ([]models.Home, error) {
	var homes []models.Home
	err := r.DB(ctx).
		Joins("JOIN home_members ON home_members.home_id = homes.id").
		Where("home_members.user_id = ? AND home_members.status = ?", userID, status).
		Order("homes.created_at, homes.id").
		Find(&homes).Error
	return homes, err
}

// Rename updates the home name and reports whether a row matched.
func (r *Repository) Rename(ctx context.Context, id uuid.UUID, name string) (bool, error) {
	res := r.DB(ctx).
		Model(&models.Home{}).
		Where("id = ?", id).
		Update("name", name)
	return res.RowsAffected > 0, res.Error
}

// DeleteCascade removes the home and everything scoped to it. Callers run it
// inside a transaction.
func (r *Repository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	db := r.DB(ctx)
	for _, scoped := range []any{&models.InventoryItem{}, &models.CatalogItem{}, &models.HomeMember{}} {
		if err := db.Where("home_id = ?", id).Delete(scoped).Error; err != nil {
			return err
		}
	}
	return db.Where("id = ?", id).Delete(&models.Home{}).Error
}
