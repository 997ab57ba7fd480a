package middleware

import (
	"context"
	"net/http"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/pkg/logger"
	"jbfsport-backend/pkg/utils"
)

// AuthMiddleware accepts a Bearer token or the accessToken cookie and puts the
// admin identity from its claims into the request context.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := utils.ExtractClaims(r)
		if err != nil {
			logger.WithContext(r.Context()).Debug().Err(err).Msg("Rejected admin token")
			utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if claims.UserID == "" {
			utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		// Claims are trusted as-is; /admin/me reloads the row when freshness matters.
		admin := &domain.AdminIdentity{
			ID:       claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
			Role:     claims.Role,
		}
		ctx := context.WithValue(r.Context(), domain.AdminContextKey, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminFromContext returns the identity set by AuthMiddleware.
func AdminFromContext(ctx context.Context) (*domain.AdminIdentity, bool) {
	admin, ok := ctx.Value(domain.AdminContextKey).(*domain.AdminIdentity)
	return admin, ok && admin != nil
}
