package service

import (
	"context"
	"errors"
	"testing"

	"github.com/noteleaf/noteleaf-server/internal/domain"
	"github.com/noteleaf/noteleaf-server/internal/store"
)

func TestCategoryCreate_DuplicatePerUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, err := env.users.Register(ctx, "Alice", "alice@example.com", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	first, err := env.categories.Create(ctx, "Work", "#112233", alice.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Second create of the same (name, user) pair conflicts.
	_, err = env.categories.Create(ctx, "Work", "#445566", alice.ID)
	var storeErr *store.Error
	if !errors.As(err, &storeErr) || storeErr.Code != store.ErrAlreadyExists.Code {
		t.Fatalf("expected conflict, got %v", err)
	}

	// The first category is still retrievable by name.
	got, err := env.store.FindCategoryByName(ctx, "Work", alice.ID)
	if err != nil {
		t.Fatalf("FindCategoryByName: %v", err)
	}
	if got.ID != first.ID {
		t.Errorf("ID: got %q, want %q", got.ID, first.ID)
	}

	// A different user can reuse the name.
	bob, err := env.users.Register(ctx, "Bob", "bob@example.com", "")
	if err != nil {
		t.Fatalf("Register bob: %v", err)
	}
	if _, err := env.categories.Create(ctx, "Work", "#778899", bob.ID); err != nil {
		t.Errorf("other user should be able to reuse name: %v", err)
	}
}

func TestCategoryUpdate_EmptyPatchAndRename(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, err := env.users.Register(ctx, "Alice", "a@example.com", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	work, err := env.categories.Create(ctx, "Work", "#112233", alice.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := env.categories.Create(ctx, "Home", "#112233", alice.ID); err != nil {
		t.Fatalf("Create Home: %v", err)
	}

	// Empty patch is rejected without a write.
	_, err = env.categories.Update(ctx, work.ID, domain.CategoryPatch{})
	var storeErr *store.Error
	if !errors.As(err, &storeErr) || storeErr.Code != store.ErrInvalidInput.Code {
		t.Fatalf("expected invalid input, got %v", err)
	}

	// Renaming onto an existing name conflicts.
	name := "Home"
	_, err = env.categories.Update(ctx, work.ID, domain.CategoryPatch{Name: &name})
	if !errors.As(err, &storeErr) || storeErr.Code != store.ErrAlreadyExists.Code {
		t.Fatalf("expected conflict, got %v", err)
	}

	// Renaming to a fresh name succeeds.
	fresh := "Deep Work"
	got, err := env.categories.Update(ctx, work.ID, domain.CategoryPatch{Name: &fresh})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != "Deep Work" {
		t.Errorf("Name: got %q", got.Name)
	}
}

func TestCategoryDelete_GuardedByUsage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, err := env.users.Register(ctx, "Alice", "a@example.com", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	work, err := env.categories.Create(ctx, "Work", "#112233", alice.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	note, err := env.notes.Create(ctx, CreateNoteInput{
		Title: "Standup", CategoryID: work.ID, UserID: alice.ID,
	})
	if err != nil {
		t.Fatalf("Create note: %v", err)
	}

	err = env.categories.Delete(ctx, work.ID)
	var storeErr *store.Error
	if !errors.As(err, &storeErr) || storeErr.Code != store.ErrConflict.Code {
		t.Fatalf("expected conflict, got %v", err)
	}

	// Nothing was mutated.
	if _, err := env.categories.Get(ctx, work.ID); err != nil {
		t.Errorf("category should survive: %v", err)
	}
	if _, err := env.notes.Get(ctx, note.ID); err != nil {
		t.Errorf("note should survive: %v", err)
	}

	if err := env.notes.Delete(ctx, note.ID); err != nil {
		t.Fatalf("Delete note: %v", err)
	}
	if err := env.categories.Delete(ctx, work.ID); err != nil {
		t.Errorf("delete after freeing should work: %v", err)
	}
}

func TestCategoryListWithUsage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, err := env.users.Register(ctx, "Alice", "a@example.com", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	work, err := env.categories.Create(ctx, "Work", "#112233", alice.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := env.categories.Create(ctx, "Home", "#445566", alice.ID); err != nil {
		t.Fatalf("Create Home: %v", err)
	}
	if _, err := env.notes.Create(ctx, CreateNoteInput{
		Title: "One", CategoryID: work.ID, UserID: alice.ID,
	}); err != nil {
		t.Fatalf("Create note: %v", err)
	}

	got, err := env.categories.ListWithUsage(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListWithUsage: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	// Name-ordered: Home first.
	if got[0].Name != "Home" || got[0].UsageCount != 0 {
		t.Errorf("Home: got usage %d", got[0].UsageCount)
	}
	if got[1].Name != "Work" || got[1].UsageCount != 1 {
		t.Errorf("Work: got usage %d", got[1].UsageCount)
	}
}
