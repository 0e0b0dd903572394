package notes

import (
	"sync"

	"github.com/google/uuid"
)

// Action identifies a kind of mutating request for stale-response tracking.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// InflightTracker records the most recent request token per (user, action).
// A response is applied to the collection only while its token is still the
// latest of its kind; anything older is discarded. This makes "last request
// wins" deterministic even though in-flight requests are never cancelled.
type InflightTracker struct {
	mu     sync.Mutex
	latest map[string]string
}

// NewInflightTracker creates an empty tracker.
func NewInflightTracker() *InflightTracker {
	return &InflightTracker{latest: make(map[string]string)}
}

// Begin registers a new request of the given kind and returns its token.
// Any previously issued token for the same (user, action) becomes stale.
func (t *InflightTracker) Begin(userID string, action Action) string {
	token := uuid.NewString()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest[userID+"/"+string(action)] = token
	return token
}

// Current reports whether the token is still the latest for (user, action).
func (t *InflightTracker) Current(userID string, action Action, token string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[userID+"/"+string(action)] == token
}
