package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/homestock-backend/internal/memberships"
	"github.com/angelmondragon/homestock-backend/pkg/db"
	"github.com/angelmondragon/homestock-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/homestock-backend/pkg/errors"
	"github.com/angelmondragon/homestock-backend/pkg/pagination"
	"github.com/angelmondragon/homestock-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type inventoryRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	FindByID(ctx context.Context, homeID, id uuid.UUID) (*models.InventoryItem, error)
	List(ctx context.Context, homeID uuid.UUID, q ListQuery, now time.Time) ([]models.InventoryItem, int64, error)
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, homeID, id uuid.UUID) error
}

type catalogLookup interface {
	FindByID(ctx context.Context, homeID, id uuid.UUID) (*models.CatalogItem, error)
}

type accessGuard interface {
	RequireActiveMember(ctx context.Context, homeID, userID uuid.UUID) (*memberships.Access, error)
	RequireOwnerOrCreator(ctx context.Context, homeID, userID, createdBy uuid.UUID) (*memberships.Access, error)
}

// Service exposes home-scoped inventory operations.
type Service interface {
	List(ctx context.Context, actorID, homeID uuid.UUID, q ListQuery) (*ListResult, error)
	Get(ctx context.Context, actorID, homeID, itemID uuid.UUID) (*ItemDTO, error)
	Create(ctx context.Context, actorID, homeID uuid.UUID, req CreateItemRequest) (*ItemDTO, error)
	Update(ctx context.Context, actorID, homeID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error)
	Delete(ctx context.Context, actorID, homeID, itemID uuid.UUID) error
}

// ServiceParams bundles the dependencies required to build an inventory service.
type ServiceParams struct {
	Repo    inventoryRepository
	Catalog catalogLookup
	Guard   accessGuard
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type service struct {
	repo    inventoryRepository
	catalog catalogLookup
	guard   accessGuard
	clock   func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog lookup required")
	}
	if params.Guard == nil {
		return nil, fmt.Errorf("access guard required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{repo: params.Repo, catalog: params.Catalog, guard: params.Guard, clock: clock}, nil
}

func (s *service) List(ctx context.Context, actorID, homeID uuid.UUID, q ListQuery) (*ListResult, error) {
	if _, err := s.guard.RequireActiveMember(ctx, homeID, actorID); err != nil {
		return nil, err
	}
	q.Pagination = q.Pagination.Normalize()
	now := s.clock()

	items, total, err := s.repo.List(ctx, homeID, q, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list inventory items")
	}
	result := &ListResult{
		Items: make([]ItemDTO, 0, len(items)),
		Page:  pagination.PageFor(q.Pagination, total),
	}
	for i := range items {
		result.Items = append(result.Items, *FromModel(&items[i], now))
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, actorID, homeID, itemID uuid.UUID) (*ItemDTO, error) {
	if _, err := s.guard.RequireActiveMember(ctx, homeID, actorID); err != nil {
		return nil, err
	}
	item, err := s.find(ctx, homeID, itemID)
	if err != nil {
		return nil, err
	}
	return FromModel(item, s.clock()), nil
}

// Create stocks a catalog item of the same home.
func (s *service) Create(ctx context.Context, actorID, homeID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if req.CatalogItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalogItemId is required")
	}
	if req.Quantity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity is required")
	}
	if err := validateQuantity(*req.Quantity); err != nil {
		return nil, err
	}
	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		parsed, err := parseExpiry(*req.ExpiresAt)
		if err != nil {
			return nil, err
		}
		expiresAt = parsed
	}

	if _, err := s.guard.RequireActiveMember(ctx, homeID, actorID); err != nil {
		return nil, err
	}
	if _, err := s.catalog.FindByID(ctx, homeID, req.CatalogItemID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalogItemId must reference a catalog item of this home")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load catalog item")
	}

	item := &models.InventoryItem{
		HomeID:        homeID,
		CatalogItemID: req.CatalogItemID,
		Quantity:      *req.Quantity,
		Location:      strings.TrimSpace(req.Location),
		ExpiresAt:     expiresAt,
		Notes:         trimmedOrNil(req.Notes),
		CreatedBy:     actorID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create inventory item")
	}
	return FromModel(item, s.clock()), nil
}

func (s *service) Update(ctx context.Context, actorID, homeID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	if req.Quantity != nil {
		if err := validateQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if _, err := s.guard.RequireActiveMember(ctx, homeID, actorID); err != nil {
		return nil, err
	}
	item, err := s.find(ctx, homeID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Location != nil {
		item.Location = strings.TrimSpace(*req.Location)
	}
	if req.ExpiresAt.Set {
		item.ExpiresAt = nil
		if req.ExpiresAt.Value != nil {
			parsed, err := parseExpiry(*req.ExpiresAt.Value)
			if err != nil {
				return nil, err
			}
			item.ExpiresAt = parsed
		}
	}
	if req.Notes.Set {
		item.Notes = trimmedOrNil(req.Notes.Value)
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update inventory item")
	}
	return s.Get(ctx, actorID, homeID, itemID)
}

// Delete is limited to the home owner and the item's creator.
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
	if err := s.repo.Delete(ctx, homeID, item.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete inventory item")
	}
	return nil
}

func (s *service) find(ctx context.Context, homeID, itemID uuid.UUID) (*models.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, homeID, itemID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory item")
	}
	return item, nil
}

var maxQuantity = decimal.RequireFromString("999999999.999")

func validateQuantity(q decimal.Decimal) error {
	if q.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	if q.GreaterThan(maxQuantity) || !q.Equal(q.Round(3)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must fit 9 digits with up to 3 decimals")
	}
	return nil
}

func parseExpiry(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := types.ParseDateOrTimestamp(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "expiresAt is not a valid date")
	}
	return &t, nil
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
