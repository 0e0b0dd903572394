package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/notegrid/notegrid-go/internal/backend"
	"github.com/notegrid/notegrid-go/internal/model"
	"github.com/notegrid/notegrid-go/internal/notes"
	"github.com/notegrid/notegrid-go/internal/service"
	"github.com/notegrid/notegrid-go/internal/session"
)

// NotesHandler serves the dashboard page and the JSON note API the dialogs
// talk to.
type NotesHandler struct {
	notes    *service.NotesService
	sessions *session.Store
	renderer *Renderer
}

// NewNotesHandler creates a new NotesHandler.
func NewNotesHandler(svc *service.NotesService, sessions *session.Store, renderer *Renderer) *NotesHandler {
	return &NotesHandler{notes: svc, sessions: sessions, renderer: renderer}
}

type dashboardPage struct {
	User    model.User
	View    string
	Empty   bool
	Buckets notes.Buckets
	Flat    []model.Note
}

// ShowDashboard handles GET / requests: resolve the session, refresh the
// working set from the backend, and render the grid or list view.
func (h *NotesHandler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessions.Resolve(r.Context(), w, r)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrSessionExpired) {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		slog.Error("resolving session", "error", err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	list, err := h.notes.Refresh(r.Context(), user.ID)
	if err != nil {
		slog.Error("fetching notes", "user_id", user.ID, "error", err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	view := r.URL.Query().Get("view")
	if view != "list" {
		view = "grid"
	}

	page := dashboardPage{
		User:  user,
		View:  view,
		Empty: len(list) == 0,
	}
	if view == "list" {
		page.Flat = notes.FlattenByPriority(list)
	} else {
		page.Buckets = notes.PartitionByPriority(list)
	}

	h.renderer.Render(w, http.StatusOK, "dashboard", page)
}

// HandleCreateNote handles POST /api/notes requests.
func (h *NotesHandler) HandleCreateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var input model.NoteInput
	if !decodeJSON(w, r, &input) {
		return
	}

	note, err := h.notes.Create(r.Context(), user.ID, input)
	if err != nil {
		h.noteFailure(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// HandleUpdateNote handles PUT /api/notes/{note_id} requests.
func (h *NotesHandler) HandleUpdateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	noteID := chi.URLParam(r, "note_id")
	if noteID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid note id"))
		return
	}

	var input model.NoteInput
	if !decodeJSON(w, r, &input) {
		return
	}

	note, err := h.notes.Update(r.Context(), user.ID, noteID, input)
	if err != nil {
		h.noteFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// HandleDeleteNote handles DELETE /api/notes/{note_id} requests.
func (h *NotesHandler) HandleDeleteNote(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	noteID := chi.URLParam(r, "note_id")
	if noteID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid note id"))
		return
	}

	if err := h.notes.Delete(r.Context(), user.ID, noteID); err != nil {
		h.noteFailure(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// currentUser resolves the session for an API request, answering 401 itself
// when there is none. A stale cookie has already been cleared by the store.
func (h *NotesHandler) currentUser(w http.ResponseWriter, r *http.Request) (model.User, bool) {
	user, err := h.sessions.Resolve(r.Context(), w, r)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrSessionExpired) {
			writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
			return model.User{}, false
		}
		slog.Error("resolving session", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse("backend unavailable"))
		return model.User{}, false
	}
	return user, true
}

func (h *NotesHandler) noteFailure(w http.ResponseWriter, err error) {
	switch {
	case isValidationError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case backend.IsClientError(err):
		writeJSON(w, http.StatusNotFound, errorResponse("note not found"))
	default:
		slog.Error("note operation failed", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse("backend unavailable"))
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrTitleRequired) ||
		errors.Is(err, service.ErrContentRequired) ||
		errors.Is(err, service.ErrDateRequired) ||
		errors.Is(err, service.ErrInvalidPriority)
}
