package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/homestock-backend/internal/memberships"
	"github.com/angelmondragon/homestock-backend/pkg/db"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/homestock-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const duplicateNameMessage = "a catalog item with this name already exists"

type catalogRepository interface {
	Create(ctx context.Context, item *models.CatalogItem) error
	FindByID(ctx context.Context, homeID, id uuid.UUID) (*models.CatalogItem, error)
	List(ctx context.Context, homeID uuid.UUID, filters ListFilters) ([]models.CatalogItem, error)
	Update(ctx context.Context, item *models.CatalogItem) error
	Delete(ctx context.Context, homeID, id uuid.UUID) error
	CountInventoryReferences(ctx context.Context, id uuid.UUID) (int64, error)
}

type accessGuard interface {
	RequireActiveMember(ctx context.Context, homeID, userID uuid.UUID) (*memberships.Access, error)
	RequireOwnerOrCreator(ctx context.Context, homeID, userID, createdBy uuid.UUID) (*memberships.Access, error)
}

// Service exposes home-scoped catalog operations.
type Service interface {
	List(ctx context.Context, actorID, homeID uuid.UUID, filters ListFilters) ([]ItemDTO, error)
	Get(ctx context.Context, actorID, homeID, itemID uuid.UUID) (*ItemDTO, error)
	Create(ctx context.Context, actorID, homeID uuid.UUID, req CreateItemRequest) (*ItemDTO, error)
	Update(ctx context.Context, actorID, homeID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error)
	Delete(ctx context.Context, actorID, homeID, itemID uuid.UUID) error
}

type service struct {
	repo  catalogRepository
	guard accessGuard
}

func NewService(repo catalogRepository, guard accessGuard) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if guard == nil {
		return nil, fmt.Errorf("access guard required")
	}
	return &service{repo: repo, guard: guard}, nil
}

func (s *service) List(ctx context.Context, actorID, homeID uuid.UUID, filters ListFilters) ([]ItemDTO, error) {
	if _, err := s.guard.RequireActiveMember(ctx, homeID, actorID); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx, homeID, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list catalog items")
	}
	out := make([]ItemDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, actorID, homeID, itemID uuid.UUID) (*ItemDTO, error) {
	if _, err := s.guard.RequireActiveMember(ctx, homeID, actorID); err != nil {
		return nil, err
	}
	item, err := s.find(ctx, homeID, itemID)
	if err != nil {
		return nil, err
	}
	return FromModel(item), nil
}

func (s *service) Create(ctx context.Context, actorID, homeID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if _, err := s.guard.RequireActiveMember(ctx, homeID, actorID); err != nil {
		return nil, err
	}

	item := &models.CatalogItem{
		HomeID:      homeID,
		Name:        name,
		Category:    strings.TrimSpace(req.Category),
		Unit:        strings.TrimSpace(req.Unit),
		Barcode:     trimmedOrNil(req.Barcode),
		Notes:       trimmedOrNil(req.Notes),
		Description: trimmedOrNil(req.Description),
		ImageURL:    trimmedOrNil(req.ImageURL),
		Tags:        normalizeTags(req.Tags),
		CreatedBy:   actorID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, duplicateNameMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create catalog item")
	}
	return FromModel(item), nil
}

// Update is open to any active member, matching who may add items.
func (s *service) Update(ctx context.Context, actorID, homeID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	if _, err := s.guard.RequireActiveMember(ctx, homeID, actorID); err != nil {
		return nil, err
	}
	item, err := s.find(ctx, homeID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
		}
		item.Name = name
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.Unit != nil {
		item.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.Barcode.Set {
		item.Barcode = trimmedOrNil(req.Barcode.Value)
	}
	if req.Notes.Set {
		item.Notes = trimmedOrNil(req.Notes.Value)
	}
	if req.Description.Set {
		item.Description = trimmedOrNil(req.Description.Value)
	}
	if req.ImageURL.Set {
		item.ImageURL = trimmedOrNil(req.ImageURL.Value)
	}
	if req.Tags != nil {
		item.Tags = normalizeTags(*req.Tags)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, duplicateNameMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update catalog item")
	}
	return s.Get(ctx, actorID, homeID, itemID)
}

// Delete is limited to the home owner and the item's creator. Items still
// stocked in the inventory cannot be deleted.
func (s *service) Delete(ctx context.Context, actorID, homeID, itemID uuid.UUID) error {
	if _, err := s.guard.RequireActiveMember(ctx, homeID, actorID); err != nil {
		return err
	}
	item, err := s.find(ctx, homeID, itemID)
	if err != nil {
		return err
	}
	if _, err := s.guard.RequireOwnerOrCreator(ctx, homeID, actorID, item.CreatedBy); err != nil {
		return err
	}

	refs, err := s.repo.CountInventoryReferences(ctx, item.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count inventory references")
	}
	if refs > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "catalog item is still used by inventory items").
			WithDetails(map[string]any{"inventoryItems": refs})
	}

	if err := s.repo.Delete(ctx, homeID, item.ID); err != nil {
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "catalog item is still used by inventory items")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete catalog item")
	}
	return nil
}

func (s *service) find(ctx context.Context, homeID, itemID uuid.UUID) (*models.CatalogItem, error) {
	item, err := s.repo.FindByID(ctx, homeID, itemID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load catalog item")
	}
	return item, nil
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// normalizeTags trims tags, drops blanks and removes case-insensitive
// duplicates, keeping the first spelling.
func normalizeTags(tags []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}
