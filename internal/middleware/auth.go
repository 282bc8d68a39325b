package middleware

import (
	"net/http"

	"device-checkin-web/internal/session"
)

// AuthMiddleware gates the device pages behind the session's logged-in flag.
type AuthMiddleware struct {
	sessions *session.Manager
}

// NewAuthMiddleware creates the auth gate backed by the session manager.
func NewAuthMiddleware(sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireLogin redirects unauthenticated requests to the login page. The
// original destination is carried in the next query parameter so the login
// handler can return the user where they started.
func (am *AuthMiddleware) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !am.sessions.IsAuthenticated(r) {
			target := "/login"
			if r.Method == http.MethodGet && r.URL.Path != "/" {
				target = "/login?next=" + r.URL.Path
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
