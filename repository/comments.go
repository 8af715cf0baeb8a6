package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pixshare/photoshare/models"
)

// CreateComment adds a comment to an existing post.
func CreateComment(db *gorm.DB, postID uint, text string, author *models.User) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, Validation("comment text cannot be empty")
	}
	var post models.Post
	if err := db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("post not found")
		}
		return nil, internal("failed to load post", err)
	}
	comment := models.Comment{PostID: post.ID, UserID: author.ID, Text: text}
	if err := db.Create(&comment).Error; err != nil {
		return nil, internal("failed to create comment", err)
	}
	return &comment, nil
}

// GetComment loads a single comment.
func GetComment(db *gorm.DB, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("comment not found")
		}
		return nil, internal("failed to load comment", err)
	}
	return &comment, nil
}

// UpdateComment edits a comment's text. Only the author may edit.
func UpdateComment(db *gorm.DB, commentID uint, text string, acting *models.User) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, Validation("comment text cannot be empty")
	}
	comment, err := GetComment(db, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != acting.ID {
		return nil, Forbidden("you can only edit your own comments")
	}
	comment.Text = text
	if err := db.Save(comment).Error; err != nil {
		return nil, internal("failed to update comment", err)
	}
	return comment, nil
}

// DeleteComment removes a comment. Role gating belongs to the calling layer.
func DeleteComment(db *gorm.DB, commentID uint) (*models.Comment, error) {
	comment, err := GetComment(db, commentID)
	if err != nil {
		return nil, err
	}
	if err := db.Delete(comment).Error; err != nil {
		return nil, internal("failed to delete comment", err)
	}
	return comment, nil
}

// PostComments lists the comments on a post, oldest first.
func PostComments(db *gorm.DB, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := db.Where("post_id = ?", postID).
		Preload("User").
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, internal("failed to list comments", err)
	}
	return comments, nil
}
