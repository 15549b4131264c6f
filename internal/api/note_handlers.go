package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/noteleaf/noteleaf-server/internal/domain"
	"github.com/noteleaf/noteleaf-server/internal/http/response"
	"github.com/noteleaf/noteleaf-server/internal/service"
	"github.com/noteleaf/noteleaf-server/internal/store"
)

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Title      string   `json:"title" validate:"required,min=1,max=200"`
	Content    string   `json:"content" validate:"omitempty,max=50000"`
	Tags       []string `json:"tags" validate:"omitempty,dive,max=50"`
	CategoryID string   `json:"categoryId" validate:"required,uuid4"`
	UserID     string   `json:"userId" validate:"required,uuid4"`
	IsFavorite bool     `json:"isFavorite"`
}

// UpdateNoteRequest is the request body for updating a note.
// A nil Tags slice leaves tags untouched; an explicit empty array clears them.
type UpdateNoteRequest struct {
	Title      *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Content    *string  `json:"content" validate:"omitempty,max=50000"`
	Tags       []string `json:"tags" validate:"omitempty,dive,max=50"`
	CategoryID *string  `json:"categoryId" validate:"omitempty,uuid4"`
	IsFavorite *bool    `json:"isFavorite"`
}

// handleListNotes returns notes matching the query filters:
// ?userId, ?category (category ID), ?tag, ?favorites=true, ?search.
func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.NoteFilter{
		UserID:        q.Get("userId"),
		CategoryID:    q.Get("category"),
		Tag:           q.Get("tag"),
		FavoritesOnly: q.Get("favorites") == "true",
		Search:        q.Get("search"),
	}

	for _, id := range []string{filter.UserID, filter.CategoryID} {
		if id != "" {
			if err := uuid.Validate(id); err != nil {
				response.BadRequest(w, "filter ids must be valid UUIDs", s.logger)
				return
			}
		}
	}

	notes, err := s.noteService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, notes, s.logger)
}

// handleListNotesByUser returns all notes owned by one user.
func (s *Server) handleListNotesByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.pathID(w, r, "userId")
	if !ok {
		return
	}

	notes, err := s.noteService.ListByUser(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, notes, s.logger)
}

// handleGetNote returns a single note by ID.
func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	note, err := s.noteService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, note, s.logger)
}

// handleCreateNote creates a new note.
func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	note, err := s.noteService.Create(r.Context(), service.CreateNoteInput{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		CategoryID: req.CategoryID,
		UserID:     req.UserID,
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, note, "Note created successfully", s.logger)
}

// handleUpdateNote applies a partial update to a note.
func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	note, err := s.noteService.Update(r.Context(), id, domain.NotePatch{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		CategoryID: req.CategoryID,
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.SuccessMessage(w, note, "Note updated successfully", s.logger)
}

// handleDeleteNote removes a note.
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.noteService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.SuccessMessage(w, nil, "Note deleted successfully", s.logger)
}
