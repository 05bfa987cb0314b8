package pagination

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
	// MaxOffset keeps offset arithmetic and SQL OFFSET values in range.
	MaxOffset = 1_000_000
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Limit  int
	Offset int
}

// Page is the metadata returned alongside a paginated list.
type Page struct {
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Normalize returns params with the limit clamped and a non-negative offset.
func (p Params) Normalize() Params {
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return Params{Limit: NormalizeLimit(p.Limit), Offset: offset}
}

// PageFor builds the page metadata for a normalized query.
func PageFor(p Params, total int64) Page {
	return Page{
		Limit:   p.Limit,
		Offset:  p.Offset,
		Total:   total,
		HasMore: total-int64(p.Offset) > int64(p.Limit),
	}
}

// Parse reads raw limit/offset query values. Empty values fall back to
// defaults; anything non-numeric or negative is rejected.
func Parse(rawLimit, rawOffset string) (Params, error) {
	var p Params
	if v := strings.TrimSpace(rawLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxLimit {
			return Params{}, fmt.Errorf("limit must be between 1 and %d", MaxLimit)
		}
		p.Limit = n
	}
	if v := strings.TrimSpace(rawOffset); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > MaxOffset {
			return Params{}, fmt.Errorf("offset must be between 0 and %d", MaxOffset)
		}
		p.Offset = n
	}
	return p.Normalize(), nil
}
