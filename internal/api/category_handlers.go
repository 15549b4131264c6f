package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/noteleaf/noteleaf-server/internal/domain"
	"github.com/noteleaf/noteleaf-server/internal/http/response"
)

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Color  string `json:"color" validate:"required,hexcolor"`
	UserID string `json:"userId" validate:"required,uuid4"`
}

// UpdateCategoryRequest is the request body for updating a category.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

// handleListCategories returns categories, optionally scoped to one user
// via ?userId and enriched with note counts via ?withUsage=true.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID != "" {
		if err := uuid.Validate(userID); err != nil {
			response.BadRequest(w, "userId must be a valid UUID", s.logger)
			return
		}
	}

	if r.URL.Query().Get("withUsage") == "true" {
		categories, err := s.categoryService.ListWithUsage(r.Context(), userID)
		if err != nil {
			response.HandleError(w, err, s.logger)
			return
		}
		response.Success(w, categories, s.logger)
		return
	}

	categories, err := s.categoryService.List(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, categories, s.logger)
}

// handleGetCategory returns a single category by ID.
func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	category, err := s.categoryService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, category, s.logger)
}

// handleCreateCategory creates a new category for a user.
func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	category, err := s.categoryService.Create(r.Context(), req.Name, req.Color, req.UserID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, category, "Category created successfully", s.logger)
}

// handleUpdateCategory applies a partial update to a category.
func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	category, err := s.categoryService.Update(r.Context(), id, domain.CategoryPatch{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.SuccessMessage(w, category, "Category updated successfully", s.logger)
}

// handleDeleteCategory removes a category if no notes reference it.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.categoryService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.SuccessMessage(w, nil, "Category deleted successfully", s.logger)
}
