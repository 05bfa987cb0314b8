package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Home struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (h *Home) BeforeCreate(*gorm.DB) error {
	assignID(&h.ID)
	return nil
}
