package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/notegrid/notegrid-go/internal/backend"
	"github.com/notegrid/notegrid-go/internal/model"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewStore(backend.New(srv.URL, 5*time.Second))
}

func requestWithCookie(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if id != "" {
		r.AddCookie(&http.Cookie{Name: CookieName, Value: id})
	}
	return r
}

func findCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func TestResolve_NoCookie(t *testing.T) {
	called := false
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	w := httptest.NewRecorder()
	_, err := store.Resolve(context.Background(), w, requestWithCookie(""))

	require.ErrorIs(t, err, ErrNoSession)
	require.False(t, called, "anonymous resolve must not call the backend")
}

func TestResolve_ValidCookie(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/u1", r.URL.Path)
		json.NewEncoder(w).Encode(model.User{ID: "u1", Email: "ada@example.com"})
	})

	w := httptest.NewRecorder()
	user, err := store.Resolve(context.Background(), w, requestWithCookie("u1"))

	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Nil(t, findCookie(t, w), "successful resolve must not touch the cookie")
}

func TestResolve_StaleCookieClearsSession(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	_, err := store.Resolve(context.Background(), w, requestWithCookie("gone"))

	require.ErrorIs(t, err, ErrSessionExpired)

	c := findCookie(t, w)
	require.NotNil(t, c, "expired session must clear the cookie")
	require.Less(t, c.MaxAge, 0)
}

func TestResolve_ServerErrorKeepsSession(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	_, err := store.Resolve(context.Background(), w, requestWithCookie("u1"))

	require.Error(t, err)
	require.NotErrorIs(t, err, ErrSessionExpired)
	require.Nil(t, findCookie(t, w), "5xx must not clear the cookie")
}

func TestLoginAndLogout_CookieLifecycle(t *testing.T) {
	store := NewStore(nil)

	w := httptest.NewRecorder()
	store.Login(w, model.User{ID: "u1"})

	c := findCookie(t, w)
	require.NotNil(t, c)
	require.Equal(t, "u1", c.Value)
	require.Equal(t, "/", c.Path)

	w = httptest.NewRecorder()
	store.Logout(w)

	c = findCookie(t, w)
	require.NotNil(t, c)
	require.Empty(t, c.Value)
	require.Less(t, c.MaxAge, 0)
}
