package store

import (
	"context"

	"github.com/noteleaf/noteleaf-server/internal/domain"
)

// Store is the persistence interface consumed by the service layer.
// The sqlite package provides the production implementation.
type Store interface {
	UserStore
	CategoryStore
	NoteStore
	TagStore
}

// UserStore handles user persistence.
type UserStore interface {
	// CreateUser inserts a user. Returns ErrAlreadyExists on duplicate email.
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// UpdateUser applies a partial merge. Returns ErrInvalidInput when the
	// patch is empty and ErrAlreadyExists when the new email is taken.
	UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	// DeleteUser removes the user and cascades removal of their notes and
	// categories in a single transaction.
	DeleteUser(ctx context.Context, id string) error
}

// CategoryStore handles category persistence.
type CategoryStore interface {
	// CreateCategory inserts a category. Returns ErrAlreadyExists when the
	// (name, userId) pair is taken.
	CreateCategory(ctx context.Context, category *domain.Category) error
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	FindCategoryByName(ctx context.Context, name, userID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListCategoriesByUser(ctx context.Context, userID string) ([]*domain.Category, error)
	// CategoryUsageCount is a live COUNT of notes referencing the category.
	// Deliberately not cached: categories are deleted rarely and the count
	// gates deletion.
	CategoryUsageCount(ctx context.Context, id string) (int, error)
	UpdateCategory(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error)
	// DeleteCategory refuses with ErrConflict while notes still reference
	// the category.
	DeleteCategory(ctx context.Context, id string) error
}

// NoteStore handles note persistence.
type NoteStore interface {
	CreateNote(ctx context.Context, note *domain.Note) error
	GetNote(ctx context.Context, id string) (*domain.Note, error)
	ListNotes(ctx context.Context, filter NoteFilter) ([]*domain.Note, error)
	UpdateNote(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error)
	DeleteNote(ctx context.Context, id string) error
	// DeleteNotesByUser removes all of a user's notes. Tag counts are not
	// rebalanced here; that is the recount operation's job.
	DeleteNotesByUser(ctx context.Context, userID string) error
	CountNotesByUser(ctx context.Context, userID string) (int, error)
}

// TagStore handles tag persistence and count maintenance.
type TagStore interface {
	// CreateTag inserts a tag. Returns ErrAlreadyExists on duplicate name.
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	ListPopularTags(ctx context.Context, limit int) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, id string, patch domain.TagPatch) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error
	// IncrementTagCount and DecrementTagCount are atomic read-modify-write
	// operations against the store. Decrement clamps at zero.
	IncrementTagCount(ctx context.Context, id string) (*domain.Tag, error)
	DecrementTagCount(ctx context.Context, id string) (*domain.Tag, error)
	// UpdateAllTagCounts recomputes every tag's count from the notes that
	// actually carry it. Idempotent; safe to run alongside normal traffic.
	UpdateAllTagCounts(ctx context.Context) error
}

// NoteFilter narrows a note listing. Zero-value fields are ignored; an
// empty filter lists everything, newest first.
type NoteFilter struct {
	UserID        string // Scope to one owner
	CategoryID    string // Scope to one category
	Tag           string // Tag-array containment
	FavoritesOnly bool
	Search        string // Case-insensitive substring over title and content
}
