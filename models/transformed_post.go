package models

import "time"

// TransformedPost is a derived image (resize or filter result) of a post.
// Rows are append-only and deduplicated by the resulting URL.
type TransformedPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	PhotoURL  string    `gorm:"size:1024;uniqueIndex;not null" json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
}
