package middleware

import (
	"log/slog"
	"net/http"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/auth"
)

// RequirePermissions gates a route group behind at least one of the given
// permissions. The principal must already be on the context, so this always
// sits behind the auth middleware.
func RequirePermissions(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			hasPermission := false
			for _, required := range permissions {
				if user.HasPermission(required) {
					hasPermission = true
					break
				}
			}

			if !hasPermission {
				slog.Warn("access denied: missing permission",
					"user_id", user.ID,
					"required_permissions", permissions,
					"user_permissions", user.Permissions)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
