// Package entity defines the domain entities for the task feature.
package entity

import "time"

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          string `gorm:"primaryKey;size:36"`
	Description string `gorm:"not null"`
	Completed   bool   `gorm:"not null;default:false"`

	// OwnerID references the owning user. It never changes after creation.
	OwnerID string `gorm:"size:36;index;not null"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
