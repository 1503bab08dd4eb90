package middleware

import (
	"net/http"

	"github.com/baharkarakas/budget-backend/internal/api/httpx"
)

// RequireRole allows only principals with the given role. It must run after
// Auth.
func RequireRole(need string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := FromCtx(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeUnauthorized, "authentication required", nil)
				return
			}
			if u.Role != need {
				httpx.WriteError(w, http.StatusForbidden, httpx.CodeForbidden, "insufficient role", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
