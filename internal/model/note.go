package model

// Priority is the closed set of note priority tags. The zero value is not a
// valid priority, which makes "note without a priority" a representable state
// rather than a silent filter condition.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the three known priority tags.
func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityLow:
		return true
	}
	return false
}

// Note represents a single note as held in the working set. UserID is stamped
// by the backend client from the request path; the wire format omits it.
type Note struct {
	ID       string   `json:"id"`
	UserID   string   `json:"-"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Date     string   `json:"date"`
	Priority Priority `json:"priority"`
}

// NoteInput is the payload for creating or updating a note. The backend
// assigns the identifier; everything else comes from the form.
type NoteInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Date     string   `json:"date"`
	Priority Priority `json:"priority"`
}
