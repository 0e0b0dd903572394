package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/notegrid/notegrid-go/internal/backend"
	"github.com/notegrid/notegrid-go/internal/crypto"
	"github.com/notegrid/notegrid-go/internal/model"
)

func newTestAuthService(t *testing.T, handler http.HandlerFunc) *AuthService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewAuthService(backend.New(srv.URL, 5*time.Second))
}

func TestSignup_EmptyEmail(t *testing.T) {
	svc := NewAuthService(nil)

	_, err := svc.Signup(context.Background(), model.SignupRequest{
		Email:           "",
		Password:        "password!123",
		ConfirmPassword: "password!123",
	})

	if err != ErrEmailRequired {
		t.Errorf("expected ErrEmailRequired, got %v", err)
	}
}

func TestSignup_PasswordTooShort(t *testing.T) {
	svc := NewAuthService(nil)

	_, err := svc.Signup(context.Background(), model.SignupRequest{
		Email:           "ada@example.com",
		Password:        "ab!",
		ConfirmPassword: "ab!",
	})

	if err != ErrPasswordTooShort {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestSignup_PasswordNoSpecialChar(t *testing.T) {
	svc := NewAuthService(nil)

	_, err := svc.Signup(context.Background(), model.SignupRequest{
		Email:           "ada@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})

	if err != ErrPasswordNoSpecial {
		t.Errorf("expected ErrPasswordNoSpecial, got %v", err)
	}
}

func TestSignup_ConfirmationMismatch(t *testing.T) {
	svc := NewAuthService(nil)

	_, err := svc.Signup(context.Background(), model.SignupRequest{
		Email:           "ada@example.com",
		Password:        "password!123",
		ConfirmPassword: "password!124",
	})

	if err != ErrPasswordMismatch {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestSignup_EmailTaken(t *testing.T) {
	svc := newTestAuthService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.User{{ID: "u1", Email: "ada@example.com"}})
	})

	_, err := svc.Signup(context.Background(), model.SignupRequest{
		Email:           "ada@example.com",
		Password:        "password!123",
		ConfirmPassword: "password!123",
	})

	if err != ErrEmailTaken {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignup_CreatesUserWithHashedPassword(t *testing.T) {
	var stored string
	svc := newTestAuthService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode([]model.User{})
			return
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		stored = body["password"]

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.User{ID: "u7", Email: body["email"], Password: stored})
	})

	user, err := svc.Signup(context.Background(), model.SignupRequest{
		Email:           "ada@example.com",
		Password:        "password!123",
		ConfirmPassword: "password!123",
	})
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	if user.ID != "u7" {
		t.Errorf("expected server-assigned id u7, got %q", user.ID)
	}
	if user.Password != "" {
		t.Error("Signup() leaked the stored credential on the returned user")
	}
	if stored == "password!123" {
		t.Error("Signup() sent the raw password to the backend")
	}
	if match, _ := crypto.VerifyPassword("password!123", stored); !match {
		t.Error("stored credential does not verify against the original password")
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.User{})
	})

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever!",
	})

	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := crypto.HashPassword("right-password!")
	if err != nil {
		t.Fatal(err)
	}

	svc := newTestAuthService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.User{{ID: "u1", Email: "ada@example.com", Password: hash}})
	})

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password!",
	})

	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := crypto.HashPassword("right-password!")
	if err != nil {
		t.Fatal(err)
	}

	svc := newTestAuthService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.User{{ID: "u1", Email: "ada@example.com", Password: hash}})
	})

	user, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ada@example.com",
		Password: "right-password!",
	})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	if user.ID != "u1" {
		t.Errorf("expected user u1, got %q", user.ID)
	}
	if user.Password != "" {
		t.Error("Login() leaked the stored credential on the returned user")
	}
}
