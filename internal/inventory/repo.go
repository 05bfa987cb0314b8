package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/homestock-backend/internal/repo"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes inventory persistence operations.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.DB(ctx).Create(item).Error
}

// FindByID loads an item only if it belongs to homeID.
func (r *Repository) FindByID(ctx context.Context, homeID, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.DB(ctx).
		Where("id = ? AND home_id = ?", id, homeID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns one page of the home's items and the total number matching
// the filters. Expiration filters are evaluated against now.
func (r *Repository) List(ctx context.Context, homeID uuid.UUID, q ListQuery, now time.Time) ([]models.InventoryItem, int64, error) {
	filtered := func() *gorm.DB {
		query := r.DB(ctx).Model(&models.InventoryItem{}).Where("home_id = ?", homeID)
		if q.Location != "" {
			query = query.Where("LOWER(location) = ?", strings.ToLower(q.Location))
		}
		if q.CatalogItemID != nil {
			query = query.Where("catalog_item_id = ?", *q.CatalogItemID)
		}
		return applyStatus(query, q.Status, now)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.InventoryItem
	err := repo.Page(filtered().Order(orderClause(q.Sort, q.Order)), q.Pagination).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func applyStatus(query *gorm.DB, status enums.ExpirationStatus, now time.Time) *gorm.DB {
	today, soonEnd := enums.ExpirationBounds(now)
	switch status {
	case enums.ExpirationStatusNone:
		return query.Where("expires_at IS NULL")
	case enums.ExpirationStatusExpired:
		return query.Where("expires_at < ?", today)
	case enums.ExpirationStatusExpiringSoon:
		return query.Where("expires_at >= ? AND expires_at < ?", today, soonEnd)
	case enums.ExpirationStatusFresh:
		return query.Where("expires_at >= ?", soonEnd)
	default:
		return query
	}
}

// orderClause keeps undated items last whichever way expiresAt is sorted.
func orderClause(sort, order string) string {
	dir := "ASC"
	if order == OrderDesc {
		dir = "DESC"
	}
	switch sort {
	case SortCreatedAt:
		return "created_at " + dir + ", id " + dir
	case SortQuantity:
		return "quantity " + dir + ", id ASC"
	default:
		return "CASE WHEN expires_at IS NULL THEN 1 ELSE 0 END, expires_at " + dir + ", id ASC"
	}
}

// Update writes every mutable column of item.
func (r *Repository) Update(ctx context.Context, item *models.InventoryItem) error {
	return r.DB(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ? AND home_id = ?", item.ID, item.HomeID).
		Updates(map[string]any{
			"quantity":   item.Quantity,
			"location":   item.Location,
			"expires_at": item.ExpiresAt,
			"notes":      item.Notes,
		}).Error
}

func (r *Repository) Delete(ctx context.Context, homeID, id uuid.UUID) error {
	return r.DB(ctx).
		Where("id = ? AND home_id = ?", id, homeID).
		Delete(&models.InventoryItem{}).Error
}
