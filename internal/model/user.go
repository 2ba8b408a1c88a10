package model

import "time"

// User represents a registered author in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Posts []Post `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Likes []Like `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// UserSummary is the minimal author identity attached to post reads.
type UserSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Summary returns the minimal identity used in post aggregates.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name}
}
