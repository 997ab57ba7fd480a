package middleware

import (
	"net/http"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/pkg/utils"
)

// AdminMiddleware lets only the admin role through.
// MUST be used AFTER AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, ok := AdminFromContext(r.Context())
		if !ok {
			utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if admin.Role != domain.RoleAdmin {
			utils.WriteError(w, http.StatusForbidden, "forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin chains AuthMiddleware and AdminMiddleware around h.
func RequireAdmin(h http.HandlerFunc) http.Handler {
	return AuthMiddleware(AdminMiddleware(h))
}
