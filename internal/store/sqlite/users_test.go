package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/noteleaf/noteleaf-server/internal/domain"
	"github.com/noteleaf/noteleaf-server/internal/store"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	u := &domain.User{
		ID:        "user-1",
		Name:      "Alice",
		Email:     "alice@example.com",
		Avatar:    "https://example.com/alice.png",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Name != "Alice" {
		t.Errorf("Name: got %q, want %q", got.Name, "Alice")
	}
	if got.Email != "alice@example.com" {
		t.Errorf("Email: got %q, want %q", got.Email, "alice@example.com")
	}
	if got.Avatar != u.Avatar {
		t.Errorf("Avatar: got %q, want %q", got.Avatar, u.Avatar)
	}
	if got.CreatedAt.Unix() != now.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, now)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetUser(ctx, "nonexistent")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var storeErr *store.Error
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected *store.Error, got %T: %v", err, err)
	}
	if storeErr.Code != store.ErrNotFound.Code {
		t.Errorf("expected status %d, got %d", store.ErrNotFound.Code, storeErr.Code)
	}
}

func TestGetUserByEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-email-1", "bob@example.com")

	got, err := s.GetUserByEmail(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != "user-email-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "user-email-1")
	}

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing email, got %v", err)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-dup-1", "carol@example.com")

	now := time.Now()
	dup := &domain.User{
		ID:        "user-dup-2",
		Name:      "Carol Again",
		Email:     "carol@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.CreateUser(ctx, dup)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers on empty store: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("expected empty slice, got %d users", len(users))
	}

	seedUser(t, s, "user-l1", "l1@example.com")
	seedUser(t, s, "user-l2", "l2@example.com")

	users, err = s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-up-1", "dave@example.com")

	name := "Dave Renamed"
	got, err := s.UpdateUser(ctx, "user-up-1", domain.UserPatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if got.Name != "Dave Renamed" {
		t.Errorf("Name: got %q, want %q", got.Name, "Dave Renamed")
	}
	// Untouched fields keep their values.
	if got.Email != "dave@example.com" {
		t.Errorf("Email changed unexpectedly: %q", got.Email)
	}
}

func TestUpdateUser_EmptyPatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-empty-1", "erin@example.com")

	before, err := s.GetUser(ctx, "user-empty-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}

	_, err = s.UpdateUser(ctx, "user-empty-1", domain.UserPatch{})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty patch, got %v", err)
	}

	// No write happened.
	after, err := s.GetUser(ctx, "user-empty-1")
	if err != nil {
		t.Fatalf("GetUser after: %v", err)
	}
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Error("empty patch must not touch the row")
	}
}

func TestUpdateUser_EmailTaken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-e1", "one@example.com")
	seedUser(t, s, "user-e2", "two@example.com")

	email := "one@example.com"
	_, err := s.UpdateUser(ctx, "user-e2", domain.UserPatch{Email: &email})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestDeleteUser_CascadesNotesAndCategories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-del-1", "frank@example.com")
	seedCategory(t, s, "cat-del-1", "Work", "user-del-1")
	seedNote(t, s, "note-del-1", "user-del-1", "cat-del-1", []string{"x"})

	if err := s.DeleteUser(ctx, "user-del-1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if _, err := s.GetUser(ctx, "user-del-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("user should be gone, got %v", err)
	}
	if _, err := s.GetCategory(ctx, "cat-del-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("category should be gone, got %v", err)
	}
	if _, err := s.GetNote(ctx, "note-del-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("note should be gone, got %v", err)
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteUser(context.Background(), "nonexistent")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
