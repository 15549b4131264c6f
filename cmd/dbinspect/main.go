// Package main provides a read-only tool to inspect the database and
// report tag count drift between the cached counters and note contents.
//
// Usage:
//
//	DATABASE_PATH=./data/noteleaf.db go run ./cmd/dbinspect
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/noteleaf/noteleaf-server/internal/store"
	"github.com/noteleaf/noteleaf-server/internal/store/sqlite"
)

func main() {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/noteleaf.db"
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	users, err := s.ListUsers(ctx)
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}
	fmt.Printf("Users: %d\n", len(users))
	for _, u := range users {
		noteCount, err := s.CountNotesByUser(ctx, u.ID)
		if err != nil {
			log.Fatalf("Failed to count notes for %s: %v", u.Email, err)
		}
		categories, err := s.ListCategoriesByUser(ctx, u.ID)
		if err != nil {
			log.Fatalf("Failed to list categories for %s: %v", u.Email, err)
		}
		fmt.Printf("  %s <%s>: %d note(s), %d categorie(s)\n", u.Name, u.Email, noteCount, len(categories))
	}
	fmt.Println()

	tags, err := s.ListTags(ctx)
	if err != nil {
		log.Fatalf("Failed to list tags: %v", err)
	}
	fmt.Printf("Tags: %d\n", len(tags))

	drifted := 0
	for _, t := range tags {
		notes, err := s.ListNotes(ctx, store.NoteFilter{Tag: t.Name})
		if err != nil {
			log.Fatalf("Failed to list notes for tag %s: %v", t.Name, err)
		}

		actual := len(notes)
		marker := ""
		if actual != t.Count {
			marker = "  <-- DRIFT"
			drifted++
		}
		fmt.Printf("  %-20s cached=%d actual=%d%s\n", t.Name, t.Count, actual, marker)
	}
	fmt.Println()

	if drifted > 0 {
		fmt.Printf("%d tag(s) have drifted counts. Run POST /api/tags/update-counts to repair.\n", drifted)
		os.Exit(1)
	}
	fmt.Println("All tag counts match note contents.")
}
