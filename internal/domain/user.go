// Package domain defines the core entities for the Noteleaf server.
package domain

import "time"

// User represents an account identity. Email is globally unique.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"` // Optional avatar URL
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Touch updates the UpdatedAt timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now().UTC()
}

// UserPatch describes a partial update to a user.
// Nil fields are left untouched; only non-nil fields are written.
type UserPatch struct {
	Name   *string
	Email  *string
	Avatar *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Avatar == nil
}
