package api

import (
	"net/http"

	"github.com/noteleaf/noteleaf-server/internal/domain"
	"github.com/noteleaf/noteleaf-server/internal/http/response"
)

// RegisterUserRequest is the request body for registering a user.
type RegisterUserRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Email  string `json:"email" validate:"required,email,max=254"`
	Avatar string `json:"avatar" validate:"omitempty,url,max=500"`
}

// LoginRequest is the request body for email-only login.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// UpdateUserRequest is the request body for updating a user profile.
type UpdateUserRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email  *string `json:"email" validate:"omitempty,email,max=254"`
	Avatar *string `json:"avatar" validate:"omitempty,url,max=500"`
}

// handleListUsers returns all users.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.List(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, users, s.logger)
}

// handleGetUser returns a single user by ID.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := s.userService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, user, s.logger)
}

// handleRegisterUser creates a new user account.
func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := s.userService.Register(r.Context(), req.Name, req.Email, req.Avatar)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, user, "User created successfully", s.logger)
}

// handleLogin looks a user up by email. There is no password in this
// system; login is identification, not authentication.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := s.userService.Login(r.Context(), req.Email)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.SuccessMessage(w, user, "Login successful", s.logger)
}

// handleUpdateUser applies a partial update to a user profile.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := s.userService.Update(r.Context(), id, domain.UserPatch{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.SuccessMessage(w, user, "User updated successfully", s.logger)
}

// handleDeleteUser removes a user along with their notes and categories.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.userService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.SuccessMessage(w, nil, "User deleted successfully", s.logger)
}
