package model

// User represents an account record as returned by the backend. Password
// holds the stored credential (an Argon2id hash written at signup) and is
// only ever inspected during login; it is never rendered or logged.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// SignupRequest represents a signup form submission.
type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest represents a login form submission.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
