package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/notegrid/notegrid-go/internal/model"
	"github.com/notegrid/notegrid-go/internal/service"
	"github.com/notegrid/notegrid-go/internal/session"
)

// AuthHandler serves the login and signup pages and their form submissions.
type AuthHandler struct {
	auth     *service.AuthService
	notes    *service.NotesService
	sessions *session.Store
	renderer *Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, notes *service.NotesService, sessions *session.Store, renderer *Renderer) *AuthHandler {
	return &AuthHandler{auth: auth, notes: notes, sessions: sessions, renderer: renderer}
}

type authPage struct {
	Email string
	Error string
}

// ShowLogin handles GET /login requests.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "login", authPage{})
}

// ShowSignup handles GET /signup requests.
func (h *AuthHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "signup", authPage{})
}

// HandleLogin handles POST /login form submissions. Success writes the
// session cookie and redirects home; failure re-renders the form with the
// message and no session side effects.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, http.StatusBadRequest, "login", authPage{Error: "invalid form submission"})
		return
	}

	req := model.LoginRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	user, err := h.auth.Login(r.Context(), req)
	if err != nil {
		status, msg := loginFailure(err)
		h.renderer.Render(w, status, "login", authPage{Email: req.Email, Error: msg})
		return
	}

	h.sessions.Login(w, user)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleSignup handles POST /signup form submissions.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, http.StatusBadRequest, "signup", authPage{Error: "invalid form submission"})
		return
	}

	req := model.SignupRequest{
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	user, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		status, msg := signupFailure(err)
		h.renderer.Render(w, status, "signup", authPage{Email: req.Email, Error: msg})
		return
	}

	h.sessions.Signup(w, user)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout handles POST /logout: drop the working set, clear the cookie,
// back to login.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(session.CookieName); err == nil && c.Value != "" {
		h.notes.Forget(c.Value)
	}

	h.sessions.Logout(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func loginFailure(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrPasswordRequired):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	default:
		slog.Error("login failed", "error", err)
		return http.StatusBadGateway, "something went wrong, please try again"
	}
}

func signupFailure(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordNoSpecial),
		errors.Is(err, service.ErrPasswordMismatch):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, err.Error()
	default:
		slog.Error("signup failed", "error", err)
		return http.StatusBadGateway, "something went wrong, please try again"
	}
}
