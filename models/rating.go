package models

import "time"

// PostRating is a 1..5 score one user gives one post. The unique index on
// (post_id, user_id) is what makes "one rating per user per post" hold under
// concurrent requests; the application check before insert only shapes the error.
type PostRating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_ratings_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_ratings_post_user" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
