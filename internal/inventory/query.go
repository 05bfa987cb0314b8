package inventory

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/angelmondragon/homestock-backend/pkg/enums"
	"github.com/angelmondragon/homestock-backend/pkg/pagination"
	"github.com/google/uuid"
)

// Sort fields accepted by the list endpoint.
const (
	SortExpiresAt = "expiresAt"
	SortCreatedAt = "createdAt"
	SortQuantity  = "quantity"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListQuery holds the filters, ordering and page of an inventory listing.
type ListQuery struct {
	Location      string
	Status        enums.ExpirationStatus
	CatalogItemID *uuid.UUID
	Sort          string
	Order         string
	Pagination    pagination.Params
}

// ParseListQuery reads list parameters from a query string. Sorting defaults
// to expiresAt ascending, which puts the soonest expiry first and undated
// items last.
func ParseListQuery(values url.Values) (ListQuery, error) {
	q := ListQuery{
		Location: strings.TrimSpace(values.Get("location")),
		Sort:     SortExpiresAt,
		Order:    OrderAsc,
	}

	if raw := strings.TrimSpace(values.Get("status")); raw != "" {
		status, err := enums.ParseExpirationStatus(raw)
		if err != nil {
			return ListQuery{}, err
		}
		q.Status = status
	}
	if raw := strings.TrimSpace(values.Get("catalogItemId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ListQuery{}, fmt.Errorf("catalogItemId must be a UUID")
		}
		q.CatalogItemID = &id
	}
	if raw := strings.TrimSpace(values.Get("sort")); raw != "" {
		switch raw {
		case SortExpiresAt, SortCreatedAt, SortQuantity:
			q.Sort = raw
		default:
			return ListQuery{}, fmt.Errorf("sort must be one of %s, %s, %s", SortExpiresAt, SortCreatedAt, SortQuantity)
		}
	}
	if raw := strings.ToLower(strings.TrimSpace(values.Get("order"))); raw != "" {
		if raw != OrderAsc && raw != OrderDesc {
			return ListQuery{}, fmt.Errorf("order must be asc or desc")
		}
		q.Order = raw
	}

	page, err := pagination.Parse(values.Get("limit"), values.Get("offset"))
	if err != nil {
		return ListQuery{}, err
	}
	q.Pagination = page
	return q, nil
}
