package domain

import "time"

// Category is a user-scoped grouping for notes.
// The (Name, UserID) pair is unique, so two users may each have a "Work"
// category, but one user cannot have two.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"` // Hex color, e.g. "#FF8800"
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryWithUsage pairs a category with the live count of notes
// referencing it. The count is queried, never cached.
type CategoryWithUsage struct {
	Category
	UsageCount int `json:"usageCount"`
}

// CategoryPatch describes a partial update to a category.
type CategoryPatch struct {
	Name  *string
	Color *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Color == nil
}
