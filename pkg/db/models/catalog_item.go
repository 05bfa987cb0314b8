package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// CatalogItem is a home-scoped item type. NameKey holds the lower-cased name
// and carries the per-home uniqueness constraint. Tags is never nil once
// persisted.
type CatalogItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	HomeID      uuid.UUID      `gorm:"column:home_id;type:uuid;not null;uniqueIndex:catalog_items_home_name_key,priority:1"`
	Name        string         `gorm:"column:name;not null"`
	NameKey     string         `gorm:"column:name_key;not null;uniqueIndex:catalog_items_home_name_key,priority:2"`
	Category    string         `gorm:"column:category;not null;default:''"`
	Unit        string         `gorm:"column:unit;not null;default:''"`
	Barcode     *string        `gorm:"column:barcode"`
	Notes       *string        `gorm:"column:notes"`
	Description *string        `gorm:"column:description"`
	ImageURL    *string        `gorm:"column:image_url"`
	Tags        pq.StringArray `gorm:"column:tags;type:text[];not null;default:'{}'"`
	CreatedBy   uuid.UUID      `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func CatalogNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (c *CatalogItem) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	c.NameKey = CatalogNameKey(c.Name)
	if c.Tags == nil {
		c.Tags = pq.StringArray{}
	}
	return nil
}

func (c *CatalogItem) BeforeSave(*gorm.DB) error {
	c.NameKey = CatalogNameKey(c.Name)
	return nil
}
