package service

import (
	"context"
	"errors"
	"strings"

	"github.com/notegrid/notegrid-go/internal/backend"
	"github.com/notegrid/notegrid-go/internal/crypto"
	"github.com/notegrid/notegrid-go/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrPasswordNoSpecial  = errors.New("password must contain at least 1 special character")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailTaken         = errors.New("email already taken")
)

const specialChars = `!@#$%^&*(),.?":{}|<>`

// AuthService handles signup and login against the remote user store. These
// are validation errors followed by at most one round trip each; no partial
// session is ever created on failure.
type AuthService struct {
	client *backend.Client
}

// NewAuthService creates a new AuthService.
func NewAuthService(client *backend.Client) *AuthService {
	return &AuthService{client: client}
}

// Signup validates the registration form, hashes the password, and creates
// the account. Returns the canonical user record with its server-assigned
// identifier.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.User, error) {
	if err := validateSignup(req); err != nil {
		return model.User{}, err
	}

	_, err := s.client.FindUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return model.User{}, ErrEmailTaken
	case !errors.Is(err, backend.ErrUserNotFound):
		return model.User{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.client.CreateUser(ctx, req.Email, hash)
	if err != nil {
		return model.User{}, err
	}

	user.Password = ""
	return user, nil
}

// Login verifies the credentials against the stored hash. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.User, error) {
	if req.Email == "" {
		return model.User{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.User{}, ErrPasswordRequired
	}

	user, err := s.client.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, backend.ErrUserNotFound) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.Password)
	if err != nil || !match {
		return model.User{}, ErrInvalidCredentials
	}

	user.Password = ""
	return user, nil
}

func validateSignup(req model.SignupRequest) error {
	if req.Email == "" {
		return ErrEmailRequired
	}
	if req.Password == "" {
		return ErrPasswordRequired
	}
	if len(req.Password) < 8 {
		return ErrPasswordTooShort
	}
	if !strings.ContainsAny(req.Password, specialChars) {
		return ErrPasswordNoSpecial
	}
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}
