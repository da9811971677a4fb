package model

import "time"

// User represents a registered account. At most one Avatar belongs to it.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	FullName     string    `json:"full_name" gorm:"size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserPatch is a partial update for a user. Nil fields are left untouched.
type UserPatch struct {
	Email        *string
	FullName     *string
	PasswordHash *string
}

// Empty reports whether the patch carries no changes.
func (p UserPatch) Empty() bool {
	return p.Email == nil && p.FullName == nil && p.PasswordHash == nil
}
