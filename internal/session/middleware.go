package session

import (
	"context"
	"net/http"
)

type contextKey struct{}

const cookieName = "storefront_session"

// Middleware resolves the caller's session from the request cookie, creating
// a fresh session (and setting the cookie) when none exists or the token is
// stale. Handlers read the session back with FromContext.
func Middleware(store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var s *Session

			if c, err := r.Cookie(cookieName); err == nil {
				s, _ = store.Get(c.Value)
			}

			if s == nil {
				s = store.New()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    s.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
		})
	}
}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session attached by Middleware, or nil when the
// request bypassed it.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}
