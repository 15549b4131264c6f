// Package service orchestrates the consistency rules between repositories:
// uniqueness pre-checks, referential existence checks, and tag count
// bookkeeping.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/noteleaf/noteleaf-server/internal/domain"
	"github.com/noteleaf/noteleaf-server/internal/store"
)

// UserService orchestrates user account operations.
type UserService struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, logger *slog.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// Register creates a new user account. The email pre-check produces a
// clean conflict message; the store's unique index stays as the final
// arbiter when two registrations race.
func (s *UserService) Register(ctx context.Context, name, email, avatar string) (*domain.User, error) {
	_, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, store.ErrAlreadyExists.WithMessage("email already exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Avatar:    avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race past the pre-check.
			return nil, store.ErrAlreadyExists.WithMessage("email already exists")
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login looks a user up by email. There are no passwords or sessions;
// this is a trivial identity lookup.
func (s *UserService) Login(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound.WithMessage("user not found")
	}
	return user, err
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound.WithMessage("user not found")
	}
	return user, err
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.store.ListUsers(ctx)
}

// Update applies a partial merge to a user. A changed email is pre-checked
// against other accounts before the write.
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	existing, err := s.store.GetUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound.WithMessage("user not found")
	}
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != existing.Email {
		if _, err := s.store.GetUserByEmail(ctx, *patch.Email); err == nil {
			return nil, store.ErrAlreadyExists.WithMessage("email already exists")
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	return s.store.UpdateUser(ctx, id, patch)
}

// Delete removes a user and, through the store, their notes and
// categories. Tag counts are left to the recount operation.
func (s *UserService) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return store.ErrNotFound.WithMessage("user not found")
	}
	if err == nil {
		s.logger.Info("user deleted", "user_id", id)
	}
	return err
}
