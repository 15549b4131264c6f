// Package api provides the HTTP API server and handlers for the Noteleaf application.
package api

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/noteleaf/noteleaf-server/internal/config"
	"github.com/noteleaf/noteleaf-server/internal/http/response"
	"github.com/noteleaf/noteleaf-server/internal/ratelimit"
	"github.com/noteleaf/noteleaf-server/internal/service"
	"github.com/noteleaf/noteleaf-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	userService     *service.UserService
	categoryService *service.CategoryService
	noteService     *service.NoteService
	tagService      *service.TagService
	validator       *validation.Validator
	limiter         *ratelimit.KeyedRateLimiter
	router          *chi.Mux
	logger          *slog.Logger
	frontendURL     string
	environment     string
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(userService *service.UserService, categoryService *service.CategoryService, noteService *service.NoteService, tagService *service.TagService, cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		userService:     userService,
		categoryService: categoryService,
		noteService:     noteService,
		tagService:      tagService,
		validator:       validation.New(),
		router:          chi.NewRouter(),
		logger:          logger,
		frontendURL:     cfg.Server.FrontendURL,
		environment:     cfg.App.Environment,
	}

	if cfg.RateLimit.Enabled {
		s.limiter = ratelimit.New(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.frontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleRegisterUser)
			r.Post("/login", s.handleLogin)
			r.Get("/{id}", s.handleGetUser)
			r.Put("/{id}", s.handleUpdateUser)
			r.Delete("/{id}", s.handleDeleteUser)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Post("/", s.handleCreateCategory)
			r.Get("/{id}", s.handleGetCategory)
			r.Put("/{id}", s.handleUpdateCategory)
			r.Delete("/{id}", s.handleDeleteCategory)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", s.handleListNotes)
			r.Post("/", s.handleCreateNote)
			r.Get("/user/{userId}", s.handleListNotesByUser)
			r.Get("/{id}", s.handleGetNote)
			r.Put("/{id}", s.handleUpdateNote)
			r.Delete("/{id}", s.handleDeleteNote)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.handleListTags)
			r.Post("/", s.handleCreateTag)
			r.Post("/update-counts", s.handleUpdateTagCounts)
			r.Get("/{id}", s.handleGetTag)
			r.Put("/{id}", s.handleUpdateTag)
			r.Delete("/{id}", s.handleDeleteTag)
			r.Put("/{id}/increment", s.handleIncrementTag)
			r.Put("/{id}/decrement", s.handleDecrementTag)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": s.environment,
	}, s.logger)
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// Writes the error response itself and returns false on failure.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.UnmarshalRead(r.Body, dst); err != nil {
		response.BadRequest(w, "invalid JSON body", s.logger)
		return false
	}
	if err := s.validator.Validate(dst); err != nil {
		response.HandleError(w, err, s.logger)
		return false
	}
	return true
}

// pathID extracts and validates a UUID path parameter.
// Writes a 400 response and returns false when the value is not a UUID.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, param string) (string, bool) {
	id := chi.URLParam(r, param)
	if err := uuid.Validate(id); err != nil {
		response.BadRequest(w, param+" must be a valid UUID", s.logger)
		return "", false
	}
	return id, true
}
