// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
type User struct {
	// ID is the opaque unique identifier for the user.
	ID string `gorm:"primaryKey;size:36"`

	// Name is the trimmed display name.
	Name string `gorm:"size:255;not null"`

	// Email is stored trimmed and lowercased.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the password. The plaintext is never stored.
	PasswordHash string `gorm:"size:255;not null"`

	Age int `gorm:"not null;default:0"`

	// Avatar is a 250x250 PNG, or nil when the user has not uploaded one.
	Avatar []byte

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAvatar reports whether the user has an avatar stored.
func (u *User) HasAvatar() bool {
	return len(u.Avatar) > 0
}
