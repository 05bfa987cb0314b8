package catalog

import (
	"context"
	"strings"

	"github.com/angelmondragon/homestock-backend/internal/repo"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Repository exposes catalog persistence operations.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, item *models.CatalogItem) error {
	return r.DB(ctx).Create(item).Error
}

// FindByID loads an item only if it belongs to homeID.
func (r *Repository) FindByID(ctx context.Context, homeID, id uuid.UUID) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := r.DB(ctx).
		Where("id = ? AND home_id = ?", id, homeID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) List(ctx context.Context, homeID uuid.UUID, filters ListFilters) ([]models.CatalogItem, error) {
	query := r.DB(ctx).Where("home_id = ?", homeID)
	if q := models.CatalogNameKey(filters.Query); q != "" {
		query = query.Where(`name_key LIKE ? ESCAPE '\'`, "%"+escapeLike(q)+"%")
	}
	if category := strings.TrimSpace(filters.Category); category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(category))
	}

	var items []models.CatalogItem
	err := query.Order("name_key, id").Find(&items).Error
	return items, err
}

// Update writes every mutable column of item.
func (r *Repository) Update(ctx context.Context, item *models.CatalogItem) error {
	return r.DB(ctx).
		Model(&models.CatalogItem{}).
		Where("id = ? AND home_id = ?", item.ID, item.HomeID).
		Updates(map[string]any{
			"name":        item.Name,
			"name_key":    models.CatalogNameKey(item.Name),
			"category":    item.Category,
			"unit":        item.Unit,
			"barcode":     item.Barcode,
			"notes":       item.Notes,
			"description": item.Description,
			"image_url":   item.ImageURL,
			"tags":        normalizedTagArray(item.Tags),
		}).Error
}

func (r *Repository) Delete(ctx context.Context, homeID, id uuid.UUID) error {
	return r.DB(ctx).
		Where("id = ? AND home_id = ?", id, homeID).
		Delete(&models.CatalogItem{}).Error
}

// CountInventoryReferences counts inventory rows pointing at the item.
func (r *Repository) CountInventoryReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.InventoryItem{}).
		Where("catalog_item_id = ?", id).
		Count(&count).Error
	return count, err
}

func normalizedTagArray(tags pq.StringArray) pq.StringArray {
	if tags == nil {
		return pq.StringArray{}
	}
	return tags
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
