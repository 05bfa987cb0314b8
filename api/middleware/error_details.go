package middleware

import (
	"net/http"

	"github.com/angelmondragon/homestock-backend/api/responses"
)

// ErrorDetails sets whether error responses may carry field-level details.
// The router enables it outside production.
func ErrorDetails(allowed bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(responses.WithErrorDetails(r.Context(), allowed)))
		})
	}
}
