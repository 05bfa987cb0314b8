package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/homestock-backend/pkg/logger"
)

// HomeScope tags the request log context with the {homeId} route param.
// Malformed ids are left for the handler to reject.
func HomeScope(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logg != nil {
				if homeID, err := uuid.Parse(chi.URLParam(r, "homeId")); err == nil {
					r = r.WithContext(logg.WithHomeID(r.Context(), homeID.String()))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
