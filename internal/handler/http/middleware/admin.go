package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
)

// AdminOnly allows only tokens carrying the is_admin claim. It must run after AuthRequired.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Invalid token")
			return
		}
		if !claims.IsAdmin {
			response.Forbidden(w, "Admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
