package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/notegrid/notegrid-go/internal/backend"
	"github.com/notegrid/notegrid-go/internal/model"
)

// CookieName is the session cookie: the user identifier in plain text,
// scoped to the whole site. Its presence alone is what the gate middleware
// checks; validity is only established here, against the backend.
const CookieName = "id"

var (
	// ErrNoSession means no cookie was presented; the visitor is anonymous.
	ErrNoSession = errors.New("no session cookie")

	// ErrSessionExpired means the cookie named a user the backend no longer
	// recognizes. The cookie has already been cleared when this is returned.
	ErrSessionExpired = errors.New("session expired")
)

// Store resolves and manages the session cookie. It keeps no server-side
// session state: the cookie is the session.
type Store struct {
	client *backend.Client
}

// NewStore creates a Store backed by the given repository client.
func NewStore(client *backend.Client) *Store {
	return &Store{client: client}
}

// Resolve returns the user the request's cookie denotes. Without a cookie it
// returns ErrNoSession and makes no backend call. If the backend answers a
// 4xx for the cached identifier the cookie is removed and ErrSessionExpired
// returned so the caller can redirect to login. Transport and 5xx failures
// propagate unchanged and leave the cookie in place.
func (s *Store) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) (model.User, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return model.User{}, ErrNoSession
	}

	user, err := s.client.GetUser(ctx, c.Value)
	if err != nil {
		if backend.IsClientError(err) {
			s.Logout(w)
			return model.User{}, ErrSessionExpired
		}
		return model.User{}, err
	}

	return user, nil
}

// Login records the authenticated user in the cookie. The user record must
// carry its server-assigned identifier.
func (s *Store) Login(w http.ResponseWriter, user model.User) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    user.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Signup is identical to Login; both start a session from a canonical user
// record and have no other side effects.
func (s *Store) Signup(w http.ResponseWriter, user model.User) {
	s.Login(w, user)
}

// Logout removes the session cookie.
func (s *Store) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
