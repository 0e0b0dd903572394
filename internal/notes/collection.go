package notes

import (
	"errors"
	"sync"

	"github.com/notegrid/notegrid-go/internal/model"
)

var (
	ErrDuplicateID = errors.New("note id already present in collection")
	ErrNoteMissing = errors.New("note id not present in collection")
)

// Collection is the ordered in-memory working set of one user's notes. It is
// the single source of truth the views render from; every mutation happens
// only after the backend has confirmed the corresponding operation.
//
// Mutations never re-order unrelated elements: Insert appends, Replace swaps
// in place, Remove closes the gap.
type Collection struct {
	mu    sync.RWMutex
	notes []model.Note
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Reset discards the current contents and adopts the given notes in order.
// Used after a fresh list fetch from the backend.
func (c *Collection) Reset(notes []model.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = append(c.notes[:0:0], notes...)
}

// Insert appends a note to the collection. The note's identifier must not
// already be present.
func (c *Collection) Insert(note model.Note) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(note.ID) >= 0 {
		return ErrDuplicateID
	}
	c.notes = append(c.notes, note)
	return nil
}

// Replace swaps the note with the same identifier, preserving its position.
// A missing identifier is a logic error on the caller's side.
func (c *Collection) Replace(note model.Note) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(note.ID)
	if i < 0 {
		return ErrNoteMissing
	}
	c.notes[i] = note
	return nil
}

// Remove deletes the note with the given identifier. Removing an absent
// identifier is a no-op.
func (c *Collection) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return
	}
	c.notes = append(c.notes[:i], c.notes[i+1:]...)
}

// All returns a copy of the collection in its current order.
func (c *Collection) All() []model.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Note(nil), c.notes...)
}

// Len returns the number of notes held.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.notes)
}

func (c *Collection) indexOf(id string) int {
	for i, n := range c.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Cache maps user identifiers to their collections, creating them on demand.
// Entries are dropped on logout so a returning user starts from a clean fetch.
type Cache struct {
	mu     sync.Mutex
	byUser map[string]*Collection
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{byUser: make(map[string]*Collection)}
}

// Get returns the collection for the given user, creating it if needed.
func (c *Cache) Get(userID string) *Collection {
	c.mu.Lock()
	defer c.mu.Unlock()

	col, ok := c.byUser[userID]
	if !ok {
		col = NewCollection()
		c.byUser[userID] = col
	}
	return col
}

// Drop removes the collection for the given user, if any.
func (c *Cache) Drop(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byUser, userID)
}
