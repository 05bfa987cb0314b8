package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	"github.com/angelmondragon/homestock-backend/pkg/types"
)

// ItemDTO is the API shape of a catalog item. Tags is always an array.
type ItemDTO struct {
	ID          uuid.UUID `json:"id"`
	HomeID      uuid.UUID `json:"homeId"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Unit        string    `json:"unit"`
	Barcode     *string   `json:"barcode,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"imageUrl"`
	Tags        []string  `json:"tags"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateItemRequest is the POST /api/homes/{homeId}/catalog payload.
type CreateItemRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=120"`
	Category    string   `json:"category" validate:"max=60"`
	Unit        string   `json:"unit" validate:"max=30"`
	Barcode     *string  `json:"barcode,omitempty" validate:"omitempty,max=64"`
	Notes       *string  `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	ImageURL    *string  `json:"imageUrl,omitempty" validate:"omitempty,url,max=2048"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=40"`
}

// UpdateItemRequest patches a catalog item. Barcode, notes, description and
// imageUrl may be cleared with an explicit null. A tags array replaces the
// stored tags; an empty array clears them.
type UpdateItemRequest struct {
	Name        *string                `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Category    *string                `json:"category,omitempty" validate:"omitempty,max=60"`
	Unit        *string                `json:"unit,omitempty" validate:"omitempty,max=30"`
	Barcode     types.Nullable[string] `json:"barcode" validate:"omitempty,max=64"`
	Notes       types.Nullable[string] `json:"notes" validate:"omitempty,max=1000"`
	Description types.Nullable[string] `json:"description" validate:"omitempty,max=1000"`
	ImageURL    types.Nullable[string] `json:"imageUrl" validate:"omitempty,url,max=2048"`
	Tags        *[]string              `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=40"`
}

// ListFilters narrows the catalog list. Query matches names case-insensitively.
type ListFilters struct {
	Query    string
	Category string
}

// FromModel maps the persisted item into a DTO.
func FromModel(m *models.CatalogItem) *ItemDTO {
	if m == nil {
		return nil
	}
	return &ItemDTO{
		ID:          m.ID,
		HomeID:      m.HomeID,
		Name:        m.Name,
		Category:    m.Category,
		Unit:        m.Unit,
		Barcode:     m.Barcode,
		Notes:       m.Notes,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Tags:        tagsOrEmpty(m.Tags),
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
