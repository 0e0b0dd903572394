package middleware

import (
	"net/http"
	"strings"

	"github.com/notegrid/notegrid-go/internal/session"
)

// GateConfig classifies page routes for the session gate.
type GateConfig struct {
	// AuthRoutes are reachable only while signed out (login, signup).
	AuthRoutes []string
	// PublicPrefixes always pass through regardless of session state
	// (static assets and the like).
	PublicPrefixes []string
	// HomePath is where an already-authenticated visitor on an auth route
	// is sent.
	HomePath string
	// LoginPath is where an anonymous visitor on a protected route is sent.
	LoginPath string
}

// DefaultGateConfig mirrors the application's route classification: /login
// and /signup are signed-out-only, static assets are always public, and
// everything else is protected.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		AuthRoutes:     []string{"/login", "/signup"},
		PublicPrefixes: []string{"/static/", "/favicon.ico"},
		HomePath:       "/",
		LoginPath:      "/login",
	}
}

// SessionGate redirects requests based solely on the presence of the session
// cookie: authenticated visitors away from the auth routes, anonymous
// visitors away from everything protected. It is a stateless per-request
// decision; whether the cookie still names a real user is checked later,
// when the page resolves its session.
func SessionGate(cfg GateConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			for _, prefix := range cfg.PublicPrefixes {
				if strings.HasPrefix(path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			authed := hasSessionCookie(r)
			authRoute := isAuthRoute(cfg.AuthRoutes, path)

			switch {
			case authed && authRoute:
				http.Redirect(w, r, cfg.HomePath, http.StatusFound)
			case !authed && !authRoute:
				http.Redirect(w, r, cfg.LoginPath, http.StatusFound)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func hasSessionCookie(r *http.Request) bool {
	c, err := r.Cookie(session.CookieName)
	return err == nil && c.Value != ""
}

func isAuthRoute(routes []string, path string) bool {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		trimmed = "/"
	}
	for _, route := range routes {
		if trimmed == route {
			return true
		}
	}
	return false
}
