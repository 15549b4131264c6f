package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/noteleaf/noteleaf-server/internal/domain"
	"github.com/noteleaf/noteleaf-server/internal/store"
)

// categoryColumns is the ordered list of columns selected in category
// queries. Must match the scan order in scanCategory.
const categoryColumns = `id, name, color, user_id, created_at, updated_at`

// scanCategory scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Category.
func scanCategory(scanner interface{ Scan(dest ...any) error }) (*domain.Category, error) {
	var c domain.Category

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&c.ID,
		&c.Name,
		&c.Color,
		&c.UserID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateCategory inserts a new category.
// Returns store.ErrAlreadyExists when the (name, userId) pair is taken.
// The unique index is the final arbiter when two requests race past the
// application-level existence check.
func (s *Store) CreateCategory(ctx context.Context, category *domain.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, color, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		category.ID,
		category.Name,
		category.Color,
		category.UserID,
		formatTime(category.CreatedAt),
		formatTime(category.UpdatedAt),
	)
	if err != nil {
		return mapConstraintErr(err)
	}
	return nil
}

// GetCategory retrieves a category by ID.
// Returns store.ErrNotFound if the category does not exist.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindCategoryByName retrieves a category by its (name, userId) pair.
// Returns store.ErrNotFound when the user has no category with that name.
func (s *Store) FindCategoryByName(ctx context.Context, name, userID string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE name = ? AND user_id = ?`,
		name, userID)

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories returns all categories ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.queryCategories(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`)
}

// ListCategoriesByUser returns one user's categories ordered by name.
func (s *Store) ListCategoriesByUser(ctx context.Context, userID string) ([]*domain.Category, error) {
	return s.queryCategories(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = ? ORDER BY name ASC`,
		userID)
}

func (s *Store) queryCategories(ctx context.Context, query string, args ...any) ([]*domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// CategoryUsageCount returns the live number of notes referencing the
// category. Not cached, unlike tag counts: deletions are rare and the
// count gates them, so consistency wins over read latency.
func (s *Store) CategoryUsageCount(ctx context.Context, id string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notes WHERE category_id = ?`, id).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateCategory applies a partial merge: only non-nil patch fields
// overwrite stored values. Returns store.ErrInvalidInput when the patch
// is empty and store.ErrAlreadyExists when the new name collides with
// another of the user's categories.
func (s *Store) UpdateCategory(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	if patch.IsEmpty() {
		return nil, store.ErrInvalidInput.WithMessage("no fields to update")
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *patch.Color)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(time.Now().UTC()), id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, mapConstraintErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}

	return s.GetCategory(ctx, id)
}

// DeleteCategory removes a category. It refuses with store.ErrConflict
// while any note still references the category; the usage check and the
// delete run in one transaction so a racing note create cannot slip in
// between them.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var usage int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notes WHERE category_id = ?`, id).Scan(&usage); err != nil {
		return fmt.Errorf("count category usage: %w", err)
	}
	if usage > 0 {
		return store.ErrConflict.WithMessagef("category is in use by %d note(s)", usage)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	return tx.Commit()
}
