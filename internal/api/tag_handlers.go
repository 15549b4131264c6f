package api

import (
	"net/http"
	"strconv"

	"github.com/noteleaf/noteleaf-server/internal/domain"
	"github.com/noteleaf/noteleaf-server/internal/http/response"
)

const defaultPopularLimit = 10

// CreateTagRequest is the request body for creating a tag.
type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=50"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateTagRequest is the request body for updating a tag.
type UpdateTagRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=50"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

// handleListTags returns all tags, or the most used ones when
// ?popular=true (with an optional ?limit).
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("popular") == "true" {
		limit := defaultPopularLimit
		if limitStr := q.Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 {
				response.BadRequest(w, "limit must be a positive integer", s.logger)
				return
			}
			limit = parsed
		}

		tags, err := s.tagService.ListPopular(r.Context(), limit)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}
		response.Success(w, tags, s.logger)
		return
	}

	tags, err := s.tagService.List(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, tags, s.logger)
}

// handleGetTag returns a single tag by ID.
func (s *Server) handleGetTag(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	tag, err := s.tagService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, tag, s.logger)
}

// handleCreateTag creates a new tag with a zero count.
func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	tag, err := s.tagService.Create(r.Context(), req.Name, req.Color)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, tag, "Tag created successfully", s.logger)
}

// handleUpdateTag applies a partial update to a tag.
func (s *Server) handleUpdateTag(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTagRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	tag, err := s.tagService.Update(r.Context(), id, domain.TagPatch{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.SuccessMessage(w, tag, "Tag updated successfully", s.logger)
}

// handleDeleteTag removes a tag.
func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.tagService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.SuccessMessage(w, nil, "Tag deleted successfully", s.logger)
}

// handleIncrementTag bumps a tag's usage count by one.
func (s *Server) handleIncrementTag(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	tag, err := s.tagService.Increment(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, tag, s.logger)
}

// handleDecrementTag lowers a tag's usage count by one, clamped at zero.
func (s *Server) handleDecrementTag(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	tag, err := s.tagService.Decrement(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, tag, s.logger)
}

// handleUpdateTagCounts recomputes every tag count from note contents.
func (s *Server) handleUpdateTagCounts(w http.ResponseWriter, r *http.Request) {
	if err := s.tagService.RecountAll(r.Context()); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.SuccessMessage(w, nil, "Tag counts updated successfully", s.logger)
}
