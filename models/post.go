package models

import "time"

// Post represents an uploaded photo with metadata.
// AverageRating is a denormalized aggregate: only the rating repository may write it,
// always in the same transaction as the rating change that triggered the recompute.
type Post struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	UserID        uint              `gorm:"index;not null" json:"user_id"`
	PostURL       string            `gorm:"size:1024;not null" json:"post_url"`
	PublicID      string            `gorm:"size:255;not null" json:"public_id"`
	Description   string            `gorm:"type:text" json:"description"`
	AverageRating float64           `gorm:"default:0" json:"average_rating"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	User          User              `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Tags          []Tag             `gorm:"many2many:post_tags;constraint:OnDelete:CASCADE;" json:"tags"`
	Comments      []Comment         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
	Ratings       []PostRating      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Transformed   []TransformedPost `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// MaxTagsPerPost caps the tag list of a single post.
const MaxTagsPerPost = 5
