package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/enums"
	"github.com/angelmondragon/homestock-backend/pkg/pagination"
	"github.com/angelmondragon/homestock-backend/pkg/types"
)

// ItemDTO is the API shape of an inventory item. Quantity is serialized as a
// decimal string.
type ItemDTO struct {
	ID               uuid.UUID              `json:"id"`
	HomeID           uuid.UUID              `json:"homeId"`
	CatalogItemID    uuid.UUID              `json:"catalogItemId"`
	Quantity         decimal.Decimal        `json:"quantity"`
	Location         string                 `json:"location"`
	ExpiresAt        *time.Time             `json:"expiresAt,omitempty"`
	ExpirationStatus enums.ExpirationStatus `json:"expirationStatus"`
	Notes            *string                `json:"notes,omitempty"`
	CreatedBy        uuid.UUID              `json:"createdBy"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

// CreateItemRequest is the POST /api/homes/{homeId}/inventory payload.
// ExpiresAt accepts YYYY-MM-DD or an RFC 3339 timestamp.
type CreateItemRequest struct {
	CatalogItemID uuid.UUID        `json:"catalogItemId" validate:"required"`
	Quantity      *decimal.Decimal `json:"quantity" validate:"required"`
	Location      string           `json:"location" validate:"max=80"`
	ExpiresAt     *string          `json:"expiresAt,omitempty"`
	Notes         *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// UpdateItemRequest patches an inventory item. ExpiresAt and Notes may be
// cleared with an explicit null.
type UpdateItemRequest struct {
	Quantity  *decimal.Decimal       `json:"quantity,omitempty"`
	Location  *string                `json:"location,omitempty" validate:"omitempty,max=80"`
	ExpiresAt types.Nullable[string] `json:"expiresAt"`
	Notes     types.Nullable[string] `json:"notes"`
}

// ListResult is a page of inventory items.
type ListResult struct {
	Items []ItemDTO       `json:"items"`
	Page  pagination.Page `json:"page"`
}

// FromModel maps the persisted item into a DTO, deriving its expiration
// status relative to now.
func FromModel(m *models.InventoryItem, now time.Time) *ItemDTO {
	if m == nil {
		return nil
	}
	var expiresAt *time.Time
	if m.ExpiresAt != nil {
		v := m.ExpiresAt.UTC()
		expiresAt = &v
	}
	return &ItemDTO{
		ID:               m.ID,
		HomeID:           m.HomeID,
		CatalogItemID:    m.CatalogItemID,
		Quantity:         m.Quantity,
		Location:         m.Location,
		ExpiresAt:        expiresAt,
		ExpirationStatus: enums.ExpirationStatusAt(expiresAt, now),
		Notes:            m.Notes,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
