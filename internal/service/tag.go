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

// TagService orchestrates global tag operations and count maintenance.
// Tag names are globally unique; unlike categories there is no user
// scoping, and that asymmetry is intentional.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{store: store, logger: logger}
}

// Create makes a new tag with a zero count. The name pre-check produces a
// readable conflict; the unique index settles races.
func (s *TagService) Create(ctx context.Context, name, color string) (*domain.Tag, error) {
	_, err := s.store.GetTagByName(ctx, name)
	if err == nil {
		return nil, store.ErrAlreadyExists.WithMessage("tag name already exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	tag := &domain.Tag{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, store.ErrAlreadyExists.WithMessage("tag name already exists")
		}
		return nil, err
	}

	return tag, nil
}

// Get returns a tag by ID.
func (s *TagService) Get(ctx context.Context, id string) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound.WithMessage("tag not found")
	}
	return tag, err
}

// List returns all tags ordered by name.
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx)
}

// ListPopular returns up to limit tags by descending count.
func (s *TagService) ListPopular(ctx context.Context, limit int) ([]*domain.Tag, error) {
	return s.store.ListPopularTags(ctx, limit)
}

// Update applies a partial merge to a tag. A changed name is pre-checked
// for global uniqueness. Counts cannot be updated through here.
func (s *TagService) Update(ctx context.Context, id string, patch domain.TagPatch) (*domain.Tag, error) {
	existing, err := s.store.GetTag(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound.WithMessage("tag not found")
	}
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && *patch.Name != existing.Name {
		if _, err := s.store.GetTagByName(ctx, *patch.Name); err == nil {
			return nil, store.ErrAlreadyExists.WithMessage("tag name already exists")
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	return s.store.UpdateTag(ctx, id, patch)
}

// Delete removes a tag. Notes keep the name in their tag arrays; counts
// for a recreated tag of the same name are rebuilt by the recount pass.
func (s *TagService) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteTag(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return store.ErrNotFound.WithMessage("tag not found")
	}
	return err
}

// Increment bumps a tag's cached count by one.
func (s *TagService) Increment(ctx context.Context, id string) (*domain.Tag, error) {
	tag, err := s.store.IncrementTagCount(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound.WithMessage("tag not found")
	}
	return tag, err
}

// Decrement lowers a tag's cached count by one, clamped at zero.
func (s *TagService) Decrement(ctx context.Context, id string) (*domain.Tag, error) {
	tag, err := s.store.DecrementTagCount(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound.WithMessage("tag not found")
	}
	return tag, err
}

// RecountAll recomputes every tag count from the notes that actually
// carry it. This is the authoritative repair for drift.
func (s *TagService) RecountAll(ctx context.Context) error {
	if err := s.store.UpdateAllTagCounts(ctx); err != nil {
		return err
	}
	s.logger.Info("tag counts recomputed")
	return nil
}
