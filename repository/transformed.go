package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pixshare/photoshare/models"
)

// TransformedPostByURL finds a previously recorded derived image by its URL.
// Returns nil, nil when no such row exists; the URL is the dedup key.
func TransformedPostByURL(db *gorm.DB, url string) (*models.TransformedPost, error) {
	var tp models.TransformedPost
	if err := db.Where("photo_url = ?", url).First(&tp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, internal("failed to load transformed post", err)
	}
	return &tp, nil
}

// AddTransformedPost records a derived image for a post. Racing duplicates
// collapse onto the first row via the unique URL index.
func AddTransformedPost(db *gorm.DB, postID uint, url string) (*models.TransformedPost, error) {
	tp := models.TransformedPost{PostID: postID, PhotoURL: url}
	if err := db.Create(&tp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return TransformedPostByURL(db, url)
		}
		return nil, internal("failed to record transformed post", err)
	}
	return &tp, nil
}

// TransformedPostByID loads a derived image by primary key.
func TransformedPostByID(db *gorm.DB, id uint) (*models.TransformedPost, error) {
	var tp models.TransformedPost
	if err := db.First(&tp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("transformed post not found")
		}
		return nil, internal("failed to load transformed post", err)
	}
	return &tp, nil
}

// PostTransformations lists the derived images of a post.
func PostTransformations(db *gorm.DB, postID uint) ([]models.TransformedPost, error) {
	var tps []models.TransformedPost
	if err := db.Where("post_id = ?", postID).Order("id").Find(&tps).Error; err != nil {
		return nil, internal("failed to list transformed posts", err)
	}
	return tps, nil
}
