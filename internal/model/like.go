package model

import "time"

// Like represents a user's like on a post. The (UserID, PostID) pair is unique:
// toggling never inserts a second row, it flips IsDeleted on the existing one.
// IsDeleted is a plain column rather than gorm.DeletedAt because deactivated
// rows must stay visible to the toggle logic.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_post"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_user_post"`
	LikedAt   time.Time `json:"liked_at" gorm:"not null"`
	IsDeleted bool      `json:"is_deleted" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
	Post Post `json:"-" gorm:"foreignKey:PostID"`
}

// Active reports whether the like currently counts toward a post's total.
func (l *Like) Active() bool {
	return !l.IsDeleted
}
