package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/notegrid/notegrid-go/internal/backend"
	"github.com/notegrid/notegrid-go/internal/model"
	"github.com/notegrid/notegrid-go/internal/notes"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
	ErrDateRequired    = errors.New("date is required")
	ErrInvalidPriority = errors.New("priority must be urgent, high or low")
)

// NotesService coordinates note mutations: validate, call the backend, and
// push the canonical server record into the user's collection. The collection
// is never touched before the backend confirms — there are no optimistic
// writes to roll back.
type NotesService struct {
	client      *backend.Client
	collections *notes.Cache
	inflight    *notes.InflightTracker
}

// NewNotesService creates a new NotesService.
func NewNotesService(client *backend.Client, collections *notes.Cache) *NotesService {
	return &NotesService{
		client:      client,
		collections: collections,
		inflight:    notes.NewInflightTracker(),
	}
}

// Refresh fetches the user's notes from the backend and resets the working
// set. Returns the notes in backend order.
func (s *NotesService) Refresh(ctx context.Context, userID string) ([]model.Note, error) {
	list, err := s.client.ListNotes(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.collections.Get(userID).Reset(list)
	return list, nil
}

// Notes returns the current working set without a backend round trip.
func (s *NotesService) Notes(userID string) []model.Note {
	return s.collections.Get(userID).All()
}

// Create validates the input, creates the note on the backend and inserts
// the canonical record into the collection.
func (s *NotesService) Create(ctx context.Context, userID string, input model.NoteInput) (model.Note, error) {
	if err := validateNoteInput(input); err != nil {
		return model.Note{}, err
	}

	token := s.inflight.Begin(userID, notes.ActionCreate)

	note, err := s.client.CreateNote(ctx, userID, input)
	if err != nil {
		return model.Note{}, err
	}

	// A newer create was issued while this one was in flight; the response
	// is stale and must not reach the collection.
	if !s.inflight.Current(userID, notes.ActionCreate, token) {
		slog.Warn("discarding stale create response", "user_id", userID, "note_id", note.ID)
		return note, nil
	}

	// The backend has already committed; a collision means the working set
	// learned this id through an earlier refresh, so adopt the canonical
	// record rather than reporting a failed create.
	col := s.collections.Get(userID)
	if err := col.Insert(note); errors.Is(err, notes.ErrDuplicateID) {
		slog.Warn("created note already in working set, replacing", "user_id", userID, "note_id", note.ID)
		if err := col.Replace(note); err != nil {
			return model.Note{}, err
		}
	}
	return note, nil
}

// Update validates the input, updates the note on the backend and replaces
// the prior entry in the collection, preserving its position. If the working
// set has never been primed the record is inserted instead.
func (s *NotesService) Update(ctx context.Context, userID, noteID string, input model.NoteInput) (model.Note, error) {
	if err := validateNoteInput(input); err != nil {
		return model.Note{}, err
	}

	token := s.inflight.Begin(userID, notes.ActionUpdate)

	note, err := s.client.UpdateNote(ctx, userID, noteID, input)
	if err != nil {
		return model.Note{}, err
	}

	if !s.inflight.Current(userID, notes.ActionUpdate, token) {
		slog.Warn("discarding stale update response", "user_id", userID, "note_id", note.ID)
		return note, nil
	}

	// A miss here means the working set was never primed for this user (the
	// cookie outlived a restart). The backend has already committed the
	// update, so adopt the record instead of reporting a failure.
	col := s.collections.Get(userID)
	if err := col.Replace(note); errors.Is(err, notes.ErrNoteMissing) {
		slog.Warn("updated note absent from working set, adopting", "user_id", userID, "note_id", note.ID)
		if err := col.Insert(note); err != nil {
			return model.Note{}, err
		}
	}
	return note, nil
}

// Delete removes the note on the backend, then from the collection. On
// failure the collection keeps the note.
func (s *NotesService) Delete(ctx context.Context, userID, noteID string) error {
	token := s.inflight.Begin(userID, notes.ActionDelete)

	if err := s.client.DeleteNote(ctx, userID, noteID); err != nil {
		return err
	}

	if !s.inflight.Current(userID, notes.ActionDelete, token) {
		slog.Warn("discarding stale delete response", "user_id", userID, "note_id", noteID)
		return nil
	}

	s.collections.Get(userID).Remove(noteID)
	return nil
}

// Forget drops the user's working set, e.g. on logout.
func (s *NotesService) Forget(userID string) {
	s.collections.Drop(userID)
}

func validateNoteInput(input model.NoteInput) error {
	if input.Title == "" {
		return ErrTitleRequired
	}
	if input.Content == "" {
		return ErrContentRequired
	}
	if input.Date == "" {
		return ErrDateRequired
	}
	if !input.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}
