package domain

import (
	"strings"
	"time"
)

// Note is a piece of user content. Tags are free-form strings stored
// denormalized on the note; CategoryID and UserID reference existing rows.
type Note struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	Tags       []string  `json:"tags"`
	CategoryID string    `json:"categoryId"`
	UserID     string    `json:"userId"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Touch updates the UpdatedAt timestamp.
func (n *Note) Touch() {
	n.UpdatedAt = time.Now().UTC()
}

// NotePatch describes a partial update to a note.
// A nil Tags slice means "leave tags alone"; an empty non-nil slice
// clears them.
type NotePatch struct {
	Title      *string
	Content    *string
	Tags       []string
	CategoryID *string
	IsFavorite *bool
}

// IsEmpty reports whether the patch carries no fields at all.
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil &&
		p.CategoryID == nil && p.IsFavorite == nil
}

// NormalizeTags trims whitespace and removes duplicates and empties from a
// tag list, preserving first-seen order. The store does not prevent
// duplicates, so deduplication happens at this boundary.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
