package domain

import "time"

// Tag is a global label for notes. Name is globally unique, unlike
// categories, tags are not user-scoped.
//
// Count caches how many notes currently carry the tag's name. It is a
// materialized view, not a source of truth: it can drift under concurrent
// note edits and is recomputed in bulk by the store's recount operation.
// It must never go negative.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Touch updates the UpdatedAt timestamp.
func (t *Tag) Touch() {
	t.UpdatedAt = time.Now().UTC()
}

// TagPatch describes a partial update to a tag. Count is deliberately
// absent: counts change only through increment/decrement and recount.
type TagPatch struct {
	Name  *string
	Color *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p TagPatch) IsEmpty() bool {
	return p.Name == nil && p.Color == nil
}
