package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/noteleaf/noteleaf-server/internal/domain"
	"github.com/noteleaf/noteleaf-server/internal/store"
)

// noteColumns is the ordered list of columns selected in note queries.
// Must match the scan order in scanNote.
const noteColumns = `id, title, content, tags, category_id, user_id, is_favorite, created_at, updated_at`

// scanNote scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Note.
func scanNote(scanner interface{ Scan(dest ...any) error }) (*domain.Note, error) {
	var n domain.Note

	var (
		content    sql.NullString
		tagsJSON   string
		isFavorite int
		createdAt  string
		updatedAt  string
	)

	err := scanner.Scan(
		&n.ID,
		&n.Title,
		&content,
		&tagsJSON,
		&n.CategoryID,
		&n.UserID,
		&isFavorite,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if content.Valid {
		n.Content = content.String
	}
	if err := json.Unmarshal([]byte(tagsJSON), &n.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	n.IsFavorite = isFavorite != 0

	n.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	n.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

// encodeTags serializes a tag list to the JSON array column format.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

// CreateNote inserts a new note. Foreign key violations on user_id or
// category_id surface as typed store errors; the service layer pre-checks
// both so clients normally see a not-found instead.
func (s *Store) CreateNote(ctx context.Context, note *domain.Note) error {
	tagsJSON, err := encodeTags(note.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, content, tags, category_id, user_id, is_favorite, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		note.ID,
		note.Title,
		nullString(note.Content),
		tagsJSON,
		note.CategoryID,
		note.UserID,
		boolToInt(note.IsFavorite),
		formatTime(note.CreatedAt),
		formatTime(note.UpdatedAt),
	)
	if err != nil {
		return mapConstraintErr(err)
	}
	return nil
}

// GetNote retrieves a note by ID.
// Returns store.ErrNotFound if the note does not exist.
func (s *Store) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)

	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotes returns notes matching the filter, newest first. Zero-value
// filter fields are ignored. Tag containment tests the JSON array column;
// search is a case-insensitive substring match over title and content.
func (s *Store) ListNotes(ctx context.Context, filter store.NoteFilter) ([]*domain.Note, error) {
	where := []string{}
	args := []any{}

	if filter.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.CategoryID != "" {
		where = append(where, "category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.Tag != "" {
		where = append(where, "EXISTS (SELECT 1 FROM json_each(notes.tags) WHERE json_each.value = ?)")
		args = append(args, filter.Tag)
	}
	if filter.FavoritesOnly {
		where = append(where, "is_favorite = 1")
	}
	if filter.Search != "" {
		// instr instead of LIKE so % and _ in the term stay literal.
		where = append(where, "(instr(lower(title), lower(?)) > 0 OR (content IS NOT NULL AND instr(lower(content), lower(?)) > 0))")
		args = append(args, filter.Search, filter.Search)
	}

	query := `SELECT ` + noteColumns + ` FROM notes`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []*domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

// UpdateNote applies a partial merge: only non-nil patch fields overwrite
// stored values. A non-nil empty Tags slice clears the tag list. Returns
// store.ErrInvalidInput when the patch is empty.
func (s *Store) UpdateNote(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error) {
	if patch.IsEmpty() {
		return nil, store.ErrInvalidInput.WithMessage("no fields to update")
	}

	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, nullString(*patch.Content))
	}
	if patch.Tags != nil {
		tagsJSON, err := encodeTags(patch.Tags)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "tags = ?")
		args = append(args, tagsJSON)
	}
	if patch.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *patch.CategoryID)
	}
	if patch.IsFavorite != nil {
		sets = append(sets, "is_favorite = ?")
		args = append(args, boolToInt(*patch.IsFavorite))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(time.Now().UTC()), id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
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

	return s.GetNote(ctx, id)
}

// DeleteNote removes a note by ID.
// Returns store.ErrNotFound if the note does not exist.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
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

// DeleteNotesByUser removes all notes owned by a user. Tag counts are not
// rebalanced synchronously; the recount operation repairs them.
func (s *Store) DeleteNotesByUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE user_id = ?`, userID)
	return err
}

// CountNotesByUser returns how many notes a user owns.
func (s *Store) CountNotesByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notes WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
