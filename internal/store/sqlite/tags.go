package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/noteleaf/noteleaf-server/internal/domain"
	"github.com/noteleaf/noteleaf-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name, color, count, created_at, updated_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&t.Color,
		&t.Count,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTag inserts a new tag.
// Returns store.ErrAlreadyExists on duplicate name. Tag names are
// globally unique, not user-scoped. The asymmetry with categories is
// intentional.
func (s *Store) CreateTag(ctx context.Context, tag *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, color, count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		tag.ID,
		tag.Name,
		tag.Color,
		tag.Count,
		formatTime(tag.CreatedAt),
		formatTime(tag.UpdatedAt),
	)
	if err != nil {
		return mapConstraintErr(err)
	}
	return nil
}

// GetTag retrieves a tag by ID.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetTagByName retrieves a tag by its globally unique name.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE name = ?`, name)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTags returns all tags ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.queryTags(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY name ASC`)
}

// ListPopularTags returns up to limit tags ordered by descending count,
// then name for a stable order between equally used tags.
func (s *Store) ListPopularTags(ctx context.Context, limit int) ([]*domain.Tag, error) {
	return s.queryTags(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY count DESC, name ASC LIMIT ?`, limit)
}

func (s *Store) queryTags(ctx context.Context, query string, args ...any) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}

// UpdateTag applies a partial merge: only non-nil patch fields overwrite
// stored values. Count is not patchable; it moves only through the
// increment, decrement, and recount operations. Returns
// store.ErrInvalidInput when the patch is empty and
// store.ErrAlreadyExists when the new name is taken.
func (s *Store) UpdateTag(ctx context.Context, id string, patch domain.TagPatch) (*domain.Tag, error) {
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
		`UPDATE tags SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
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

	return s.GetTag(ctx, id)
}

// DeleteTag removes a tag by ID.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
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
	return nil
}

// IncrementTagCount bumps a tag's cached count by one in a single UPDATE,
// atomic against the store, and returns the updated tag.
func (s *Store) IncrementTagCount(ctx context.Context, id string) (*domain.Tag, error) {
	return s.adjustCount(ctx, id, `count = count + 1`)
}

// DecrementTagCount lowers a tag's cached count by one, clamped at zero.
// The clamp lives in SQL so a racing decrement or bookkeeping drift can
// never push the count negative.
func (s *Store) DecrementTagCount(ctx context.Context, id string) (*domain.Tag, error) {
	return s.adjustCount(ctx, id, `count = MAX(count - 1, 0)`)
}

func (s *Store) adjustCount(ctx context.Context, id, setExpr string) (*domain.Tag, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tags SET `+setExpr+`, updated_at = ? WHERE id = ?`,
		formatTime(time.Now().UTC()), id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetTag(ctx, id)
}

// UpdateAllTagCounts recomputes every tag's count as the exact number of
// notes whose tag array contains the tag's name, overwriting the cached
// values. This is the authoritative repair for drift left by unsynced
// note mutations. Idempotent: only rows whose count actually changed are
// touched, so a second run in a row writes nothing.
func (s *Store) UpdateAllTagCounts(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE tags SET
			count = (
				SELECT COUNT(*) FROM notes
				WHERE EXISTS (
					SELECT 1 FROM json_each(notes.tags)
					WHERE json_each.value = tags.name
				)
			),
			updated_at = ?
		WHERE count <> (
			SELECT COUNT(*) FROM notes
			WHERE EXISTS (
				SELECT 1 FROM json_each(notes.tags)
				WHERE json_each.value = tags.name
			)
		)`,
		formatTime(time.Now().UTC()))
	return err
}
