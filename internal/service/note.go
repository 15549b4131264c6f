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

// NoteService orchestrates note operations and keeps tag counts roughly
// live. Count adjustments are best effort and not transactional with the
// note write; the recount operation is the correctness backstop.
type NoteService struct {
	store  store.Store
	logger *slog.Logger
}

// NewNoteService creates a new note service.
func NewNoteService(store store.Store, logger *slog.Logger) *NoteService {
	return &NoteService{store: store, logger: logger}
}

// CreateNoteInput carries the fields for a new note.
type CreateNoteInput struct {
	Title      string
	Content    string
	Tags       []string
	CategoryID string
	UserID     string
	IsFavorite bool
}

// Create makes a new note. Both parents are pre-checked so a missing user
// or category surfaces as a not-found instead of a store-level foreign
// key failure.
func (s *NoteService) Create(ctx context.Context, in CreateNoteInput) (*domain.Note, error) {
	if _, err := s.store.GetUser(ctx, in.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound.WithMessage("user not found")
		}
		return nil, err
	}
	if _, err := s.store.GetCategory(ctx, in.CategoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound.WithMessage("category not found")
		}
		return nil, err
	}

	now := time.Now().UTC()
	note := &domain.Note{
		ID:         uuid.NewString(),
		Title:      in.Title,
		Content:    in.Content,
		Tags:       domain.NormalizeTags(in.Tags),
		CategoryID: in.CategoryID,
		UserID:     in.UserID,
		IsFavorite: in.IsFavorite,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	s.adjustTagCounts(ctx, note.Tags, nil)
	return note, nil
}

// Get returns a note by ID.
func (s *NoteService) Get(ctx context.Context, id string) (*domain.Note, error) {
	note, err := s.store.GetNote(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound.WithMessage("note not found")
	}
	return note, err
}

// List returns notes matching the filter. An empty UserID deliberately
// returns notes across all users.
func (s *NoteService) List(ctx context.Context, filter store.NoteFilter) ([]*domain.Note, error) {
	return s.store.ListNotes(ctx, filter)
}

// ListByUser returns one user's notes after confirming the user exists.
func (s *NoteService) ListByUser(ctx context.Context, userID string) ([]*domain.Note, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound.WithMessage("user not found")
		}
		return nil, err
	}
	return s.store.ListNotes(ctx, store.NoteFilter{UserID: userID})
}

// Update applies a partial merge to a note. A changed category is
// pre-checked, tags are deduplicated, and tag counts are adjusted by the
// difference between the old and new tag sets.
func (s *NoteService) Update(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error) {
	existing, err := s.store.GetNote(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrNotFound.WithMessage("note not found")
	}
	if err != nil {
		return nil, err
	}

	if patch.CategoryID != nil {
		if _, err := s.store.GetCategory(ctx, *patch.CategoryID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, store.ErrNotFound.WithMessage("category not found")
			}
			return nil, err
		}
	}
	if patch.Tags != nil {
		patch.Tags = domain.NormalizeTags(patch.Tags)
	}

	note, err := s.store.UpdateNote(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if patch.Tags != nil {
		added, removed := diffTags(existing.Tags, note.Tags)
		s.adjustTagCounts(ctx, added, removed)
	}
	return note, nil
}

// Delete removes a note and decrements the counts of its tags. The
// repository delete itself never touches counts; this is the service-level
// bookkeeping, with the recount pass as backstop.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	existing, err := s.store.GetNote(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return store.ErrNotFound.WithMessage("note not found")
	}
	if err != nil {
		return err
	}

	if err := s.store.DeleteNote(ctx, id); err != nil {
		return err
	}

	s.adjustTagCounts(ctx, nil, existing.Tags)
	return nil
}

// adjustTagCounts bumps counters for added names and lowers them for
// removed ones. Only names with an existing tag row are touched; free-form
// note tags without a tag entity contribute nothing until one is created
// and the recount pass runs. Failures are logged, never propagated; a
// stale count is an accepted gap, not an error.
func (s *NoteService) adjustTagCounts(ctx context.Context, added, removed []string) {
	for _, name := range added {
		tag, err := s.store.GetTagByName(ctx, name)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				s.logger.Warn("tag count increment skipped", "tag", name, "error", err)
			}
			continue
		}
		if _, err := s.store.IncrementTagCount(ctx, tag.ID); err != nil {
			s.logger.Warn("tag count increment failed", "tag", name, "error", err)
		}
	}
	for _, name := range removed {
		tag, err := s.store.GetTagByName(ctx, name)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				s.logger.Warn("tag count decrement skipped", "tag", name, "error", err)
			}
			continue
		}
		if _, err := s.store.DecrementTagCount(ctx, tag.ID); err != nil {
			s.logger.Warn("tag count decrement failed", "tag", name, "error", err)
		}
	}
}

// diffTags returns the names present only in next (added) and only in
// prev (removed). Both inputs are already deduplicated.
func diffTags(prev, next []string) (added, removed []string) {
	prevSet := make(map[string]struct{}, len(prev))
	for _, name := range prev {
		prevSet[name] = struct{}{}
	}
	nextSet := make(map[string]struct{}, len(next))
	for _, name := range next {
		nextSet[name] = struct{}{}
	}

	for _, name := range next {
		if _, ok := prevSet[name]; !ok {
			added = append(added, name)
		}
	}
	for _, name := range prev {
		if _, ok := nextSet[name]; !ok {
			removed = append(removed, name)
		}
	}
	return added, removed
}
