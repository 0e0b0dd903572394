package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/notegrid/notegrid-go/internal/model"
)

// ErrUserNotFound is returned when a lookup matches no user.
var ErrUserNotFound = errors.New("user not found")

// APIError carries the HTTP status of a failed backend call so callers can
// distinguish client errors (stale session, missing record) from server or
// transport failures.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s %s returned %d", e.Method, e.Path, e.StatusCode)
}

// IsClientError reports whether err is a backend response in the 4xx range.
func IsClientError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
}

// Client is the repository client for the remote note store. It translates
// the application's operations into calls against the REST backend and
// returns the backend's canonical representations.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ListNotes returns the user's notes in backend order. No client-side sort is
// applied; ordering for display is the partitioner's job.
func (c *Client) ListNotes(ctx context.Context, userID string) ([]model.Note, error) {
	var notes []model.Note
	if err := c.do(ctx, http.MethodGet, c.notesPath(userID), nil, &notes); err != nil {
		return nil, err
	}
	for i := range notes {
		notes[i].UserID = userID
	}
	return notes, nil
}

// CreateNote creates a note and returns the canonical record including the
// server-assigned identifier. Input validation happens before this call.
func (c *Client) CreateNote(ctx context.Context, userID string, input model.NoteInput) (model.Note, error) {
	var note model.Note
	if err := c.do(ctx, http.MethodPost, c.notesPath(userID), input, &note); err != nil {
		return model.Note{}, err
	}
	note.UserID = userID
	return note, nil
}

// UpdateNote replaces a note and returns the full updated record.
func (c *Client) UpdateNote(ctx context.Context, userID, noteID string, input model.NoteInput) (model.Note, error) {
	var note model.Note
	if err := c.do(ctx, http.MethodPut, c.notePath(userID, noteID), input, &note); err != nil {
		return model.Note{}, err
	}
	note.UserID = userID
	return note, nil
}

// DeleteNote deletes a note. Success is the absence of an error.
func (c *Client) DeleteNote(ctx context.Context, userID, noteID string) error {
	return c.do(ctx, http.MethodDelete, c.notePath(userID, noteID), nil, nil)
}

// GetUser fetches a user by identifier.
func (c *Client) GetUser(ctx context.Context, userID string) (model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// FindUserByEmail looks up a user by email. The backend returns an array of
// zero or one matches; zero matches surfaces as ErrUserNotFound.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	q := url.Values{"email": {email}}

	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/users?"+q.Encode(), nil, &users); err != nil {
		return model.User{}, err
	}
	if len(users) == 0 {
		return model.User{}, ErrUserNotFound
	}
	return users[0], nil
}

// CreateUser registers a new account. The password argument is the stored
// credential (already hashed); the backend assigns the identifier.
func (c *Client) CreateUser(ctx context.Context, email, password string) (model.User, error) {
	body := map[string]string{"email": email, "password": password}

	var user model.User
	if err := c.do(ctx, http.MethodPost, "/users", body, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (c *Client) notesPath(userID string) string {
	return "/users/" + url.PathEscape(userID) + "/notes"
}

func (c *Client) notePath(userID, noteID string) string {
	return c.notesPath(userID) + "/" + url.PathEscape(noteID)
}

// do performs one request/response cycle. Any non-2xx status becomes an
// *APIError; a nil out skips body decoding (delete acks are empty).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Method: method, Path: path}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}
