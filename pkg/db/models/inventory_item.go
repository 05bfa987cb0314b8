package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem tracks a quantity of a catalog item stored somewhere in a home.
type InventoryItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HomeID        uuid.UUID       `gorm:"column:home_id;type:uuid;not null;index"`
	CatalogItemID uuid.UUID       `gorm:"column:catalog_item_id;type:uuid;not null;index"`
	Quantity      decimal.Decimal `gorm:"column:quantity;type:numeric(12,3);not null"`
	Location      string          `gorm:"column:location;not null;default:''"`
	ExpiresAt     *time.Time      `gorm:"column:expires_at"`
	Notes         *string         `gorm:"column:notes"`
	CreatedBy     uuid.UUID       `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (i *InventoryItem) BeforeCreate(*gorm.DB) error {
	assignID(&i.ID)
	return nil
}
