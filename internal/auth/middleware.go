package auth

import (
	"net/http"

	"github.com/powersupps/storefront/internal/httpx"
	"github.com/powersupps/storefront/internal/session"
)

// Require rejects requests whose session carries no authenticated user.
func Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := session.FromContext(r.Context())
		if s == nil || !s.Authenticated() {
			httpx.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	}
}
