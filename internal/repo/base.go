package repo

import (
	"context"

	"github.com/angelmondragon/homestock-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection,
// which may be a transaction handle.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Page applies offset pagination to query.
func Page(query *gorm.DB, p pagination.Params) *gorm.DB {
	p = p.Normalize()
	return query.Limit(p.Limit).Offset(p.Offset)
}
