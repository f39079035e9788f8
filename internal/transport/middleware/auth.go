package middleware

import (
	"net/http"

	"github.com/ronaldsalazarvasquez/Inventario-Taller/internal/auth"
	"github.com/ronaldsalazarvasquez/Inventario-Taller/pkg/logger"
)

// UserContext tags the request logger with the authenticated user. Sits
// behind the auth middleware; anonymous requests pass through untagged.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := auth.UserFromContext(r.Context()); ok && user != nil {
			ctx := logger.With(r.Context(), "userID", user.ID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
