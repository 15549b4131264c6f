// Package main provides a tool to seed the database with demo data.
//
// It creates two users with a set of categories, tags, and notes, then
// recomputes tag counts from the seeded notes.
//
// Usage:
//
//	DATABASE_PATH=./data/noteleaf.db go run ./cmd/seed
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/noteleaf/noteleaf-server/internal/service"
	"github.com/noteleaf/noteleaf-server/internal/store/sqlite"
)

var dbPathFlag = flag.String("db-path", "", "Path to the SQLite database file")

type seedNote struct {
	title      string
	content    string
	tags       []string
	category   string
	userIdx    int
	isFavorite bool
}

func main() {
	flag.Parse()

	dbPath := *dbPathFlag
	if dbPath == "" {
		dbPath = os.Getenv("DATABASE_PATH")
	}
	if dbPath == "" {
		dbPath = "data/noteleaf.db"
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	users := service.NewUserService(s, logger)
	categories := service.NewCategoryService(s, logger)
	notes := service.NewNoteService(s, logger)
	tags := service.NewTagService(s, logger)

	fmt.Println("Creating sample users...")
	john, err := users.Register(ctx, "John Doe", "john.doe@example.com",
		"https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face")
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	jane, err := users.Register(ctx, "Jane Smith", "jane.smith@example.com",
		"https://images.unsplash.com/photo-1494790108755-2616b612b786?w=150&h=150&fit=crop&crop=face")
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	seedUsers := []string{john.ID, jane.ID}

	fmt.Println("Creating sample categories...")
	categoryColors := map[string]string{
		"Work":     "#3B82F6",
		"Personal": "#10B981",
		"Ideas":    "#F59E0B",
		"Learning": "#8B5CF6",
		"Projects": "#EF4444",
	}
	// Categories are user-scoped, so each user gets their own set.
	categoryIDs := map[string]string{}
	for _, userID := range seedUsers {
		for name, color := range categoryColors {
			c, err := categories.Create(ctx, name, color, userID)
			if err != nil {
				log.Fatalf("Failed to create category %s: %v", name, err)
			}
			categoryIDs[userID+"/"+name] = c.ID
		}
	}

	fmt.Println("Creating sample tags...")
	tagColors := map[string]string{
		"important":  "#EF4444",
		"urgent":     "#F59E0B",
		"meeting":    "#3B82F6",
		"todo":       "#10B981",
		"research":   "#8B5CF6",
		"brainstorm": "#F97316",
		"review":     "#06B6D4",
		"follow-up":  "#84CC16",
	}
	for name, color := range tagColors {
		if _, err := tags.Create(ctx, name, color); err != nil {
			log.Fatalf("Failed to create tag %s: %v", name, err)
		}
	}

	fmt.Println("Creating sample notes...")
	seedNotes := []seedNote{
		{
			title:      "Project Planning Meeting",
			content:    "Discuss the roadmap for Q1 2024. Key topics:\n- Resource allocation\n- Timeline review\n- Risk assessment\n- Stakeholder communication",
			tags:       []string{"meeting", "important"},
			category:   "Work",
			userIdx:    0,
			isFavorite: true,
		},
		{
			title:    "Book Recommendations",
			content:  "Books to read this month:\n1. \"Atomic Habits\" by James Clear\n2. \"The Psychology of Money\" by Morgan Housel\n3. \"Thinking, Fast and Slow\" by Daniel Kahneman",
			tags:     []string{"research", "todo"},
			category: "Learning",
			userIdx:  0,
		},
		{
			title:    "Weekend Trip Ideas",
			content:  "Places to visit:\n- Mountain hiking trails\n- Local museums\n- Beach towns within 2 hours drive\n- Wine tasting tours",
			tags:     []string{"brainstorm"},
			category: "Personal",
			userIdx:  0,
		},
		{
			title:      "App Feature Ideas",
			content:    "New features to consider:\n- Dark mode toggle\n- Export to PDF\n- Collaborative editing\n- Voice notes\n- Advanced search filters",
			tags:       []string{"brainstorm", "important"},
			category:   "Ideas",
			userIdx:    1,
			isFavorite: true,
		},
		{
			title:    "Weekly Review",
			content:  "Accomplishments this week:\n- Completed user authentication\n- Fixed 5 critical bugs\n- Updated documentation\n- Conducted team retrospective",
			tags:     []string{"review"},
			category: "Work",
			userIdx:  1,
		},
		{
			title:      "Learning TypeScript",
			content:    "Key concepts to master:\n- Advanced types (union, intersection)\n- Generics and constraints\n- Decorators\n- Module system\n- Error handling patterns",
			tags:       []string{"research", "todo"},
			category:   "Learning",
			userIdx:    1,
			isFavorite: true,
		},
		{
			title:    "Client Follow-up",
			content:  "Action items from client meeting:\n- Send proposal by Friday\n- Schedule technical review\n- Prepare demo environment\n- Update project timeline",
			tags:     []string{"follow-up", "urgent"},
			category: "Work",
			userIdx:  0,
		},
		{
			title:    "Home Improvement Tasks",
			content:  "Tasks for this month:\n- Paint the living room\n- Fix leaky faucet\n- Organize garage\n- Plant herbs in garden",
			tags:     []string{"todo"},
			category: "Personal",
			userIdx:  1,
		},
	}

	for _, n := range seedNotes {
		userID := seedUsers[n.userIdx]
		_, err := notes.Create(ctx, service.CreateNoteInput{
			Title:      n.title,
			Content:    n.content,
			Tags:       n.tags,
			CategoryID: categoryIDs[userID+"/"+n.category],
			UserID:     userID,
			IsFavorite: n.isFavorite,
		})
		if err != nil {
			log.Fatalf("Failed to create note %q: %v", n.title, err)
		}
	}

	fmt.Println("Updating tag counts...")
	if err := tags.RecountAll(ctx); err != nil {
		log.Fatalf("Failed to update tag counts: %v", err)
	}

	fmt.Println("Database seeding completed successfully!")
}
