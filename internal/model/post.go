package model

import "time"

// Post represents an article. UserID is the immutable owner: it is set at
// creation and never updated afterwards.
type Post struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Summary     string    `json:"summary" gorm:"size:500"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	AvailableAt time.Time `json:"available_at" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User  User   `json:"-" gorm:"foreignKey:UserID"`
	Likes []Like `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// Scheduled reports whether the post is still hidden from default listings.
func (p *Post) Scheduled(now time.Time) bool {
	return p.AvailableAt.After(now)
}
