package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/noteleaf/noteleaf-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedUser inserts a user fixture.
func seedUser(t *testing.T, s *Store, id, email string) *domain.User {
	t.Helper()
	now := time.Now()
	u := &domain.User{
		ID:        id,
		Name:      "Test User " + id,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	return u
}

// seedCategory inserts a category fixture owned by userID.
func seedCategory(t *testing.T, s *Store, id, name, userID string) *domain.Category {
	t.Helper()
	now := time.Now()
	c := &domain.Category{
		ID:        id,
		Name:      name,
		Color:     "#336699",
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.CreateCategory(context.Background(), c); err != nil {
		t.Fatalf("seed category %s: %v", id, err)
	}
	return c
}

// seedNote inserts a note fixture.
func seedNote(t *testing.T, s *Store, id, userID, categoryID string, tags []string) *domain.Note {
	t.Helper()
	now := time.Now()
	n := &domain.Note{
		ID:         id,
		Title:      "Note " + id,
		Content:    "content of " + id,
		Tags:       tags,
		CategoryID: categoryID,
		UserID:     userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.CreateNote(context.Background(), n); err != nil {
		t.Fatalf("seed note %s: %v", id, err)
	}
	return n
}

// seedTag inserts a tag fixture.
func seedTag(t *testing.T, s *Store, id, name string) *domain.Tag {
	t.Helper()
	now := time.Now()
	tag := &domain.Tag{
		ID:        id,
		Name:      name,
		Color:     "#AA1122",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.CreateTag(context.Background(), tag); err != nil {
		t.Fatalf("seed tag %s: %v", id, err)
	}
	return tag
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	if err := s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify tables exist.
	for _, table := range []string{"users", "categories", "notes", "tags"} {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpenClose(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	// Re-open should work (schema is idempotent).
	s2, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("re-open store: %v", err)
	}
	if err := s2.Close(); err != nil {
		t.Fatalf("close re-opened store: %v", err)
	}
}
