package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/angelmondragon/homestock-backend/pkg/db/models"
)

type contextKey string

const ctxUser contextKey = "user"

// WithUser stores the authenticated user on the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUser, user)
}

// UserFromContext returns the user resolved by RequireUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(ctxUser).(*models.User)
	return user, ok && user != nil
}

// UserIDFromContext returns the authenticated user's id, or uuid.Nil.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if user, ok := UserFromContext(ctx); ok {
		return user.ID
	}
	return uuid.Nil
}
