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

// CategoryService orchestrates user-scoped category operations.
type CategoryService struct {
	store  store.Store
	logger *slog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(store store.Store, logger *slog.Logger) *CategoryService {
	return &CategoryService{store: store, logger: logger}
}

// Create makes a new category for a user. Uniqueness of (name, userId) is
// enforced twice: the pre-check here yields a readable conflict, and the
// store's unique index catches the race where two creates pass the
// pre-check together.
func (s *CategoryService) Create(ctx context.Context, name, color, userID string) (*domain.Category, error) {
	_, err := s.store.FindCategoryByName(ctx, name, userID)
	if err == nil {
		return nil, store.ErrAlreadyExists.WithMessage("category name already exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	category := &domain.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, store.ErrAlreadyExists.WithMessage("category name already exists")
		}
		return nil, err
	}

	return category, nil
}

// Get returns a category by ID.
func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound.WithMessage("category not found")
	}
	return category, err
}

// List returns categories, optionally scoped to one user.
func (s *CategoryService) List(ctx context.Context, userID string) ([]*domain.Category, error) {
	if userID != "" {
		return s.store.ListCategoriesByUser(ctx, userID)
	}
	return s.store.ListCategories(ctx)
}

// ListWithUsage returns categories together with a live count of the
// notes referencing each.
func (s *CategoryService) ListWithUsage(ctx context.Context, userID string) ([]*domain.CategoryWithUsage, error) {
	categories, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.CategoryWithUsage, 0, len(categories))
	for _, c := range categories {
		usage, err := s.store.CategoryUsageCount(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &domain.CategoryWithUsage{Category: *c, UsageCount: usage})
	}
	return out, nil
}

// Update applies a partial merge to a category. A changed name is
// pre-checked against the user's other categories.
func (s *CategoryService) Update(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	existing, err := s.store.GetCategory(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound.WithMessage("category not found")
	}
	if err != nil {
		return nil, err
	}

	if patch.Name != nil && *patch.Name != existing.Name {
		if _, err := s.store.FindCategoryByName(ctx, *patch.Name, existing.UserID); err == nil {
			return nil, store.ErrAlreadyExists.WithMessage("category name already exists")
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	return s.store.UpdateCategory(ctx, id, patch)
}

// Delete removes a category. The store refuses while notes still
// reference it, so a category can never be deleted out from under its
// notes.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteCategory(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return store.ErrNotFound.WithMessage("category not found")
	}
	return err
}
