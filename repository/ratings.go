package repository

import (
	"database/sql"
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/pixshare/photoshare/models"
)

// CreateRating records a 1..5 score from acting on the post and refreshes the
// post's stored average inside the same transaction. Precondition order follows
// the public contract: missing post, then self-rating, then duplicate vote.
// The rating value itself is validated by the caller before this is reached.
func CreateRating(db *gorm.DB, postID uint, rating int, acting *models.User) (*models.PostRating, error) {
	var created models.PostRating
	err := db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("post not found")
			}
			return internal("failed to load post", err)
		}
		if post.UserID == acting.ID {
			return Forbidden("you cannot rate your own post")
		}

		var existing models.PostRating
		err := tx.Where("post_id = ? AND user_id = ?", postID, acting.ID).First(&existing).Error
		if err == nil {
			return Conflict("you have already voted")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return internal("failed to check existing rating", err)
		}

		created = models.PostRating{PostID: postID, UserID: acting.ID, Rating: rating}
		if err := tx.Create(&created).Error; err != nil {
			// Two concurrent first votes race past the check above; the unique
			// index on (post_id, user_id) decides, and the loser lands here.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return Conflict("you have already voted")
			}
			return internal("failed to create rating", err)
		}

		return refreshAverageRating(tx, postID)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateRating overwrites the acting user's existing rating of the post.
// Same validation as create minus the uniqueness check: the rating must exist.
func UpdateRating(db *gorm.DB, postID uint, rating int, acting *models.User) (*models.PostRating, error) {
	var updated models.PostRating
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ? AND user_id = ?", postID, acting.ID).
			First(&updated).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("rating not found")
			}
			return internal("failed to load rating", err)
		}
		updated.Rating = rating
		if err := tx.Save(&updated).Error; err != nil {
			return internal("failed to update rating", err)
		}
		return refreshAverageRating(tx, postID)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteRating removes the rating the target user gave the post and refreshes
// the stored average. Role checks belong to the calling layer.
func DeleteRating(db *gorm.DB, postID, targetUserID uint) (*models.PostRating, error) {
	var removed models.PostRating
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ? AND user_id = ?", postID, targetUserID).
			First(&removed).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("rating not found")
			}
			return internal("failed to load rating", err)
		}
		if err := tx.Delete(&removed).Error; err != nil {
			return internal("failed to delete rating", err)
		}
		return refreshAverageRating(tx, postID)
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// AverageRating computes the live arithmetic mean of the post's ratings.
// The second return is false when the post has no ratings. Pure read.
func AverageRating(db *gorm.DB, postID uint) (float64, bool, error) {
	var avg sql.NullFloat64
	if err := db.Model(&models.PostRating{}).
		Where("post_id = ?", postID).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return 0, false, internal("failed to compute average rating", err)
	}
	if !avg.Valid {
		return 0, false, nil
	}
	return roundRating(avg.Float64), true, nil
}

// UserRatings returns every rating the user has given. An empty result is
// reported as NotFound rather than an empty list.
func UserRatings(db *gorm.DB, userID uint) ([]models.PostRating, error) {
	var ratings []models.PostRating
	if err := db.Where("user_id = ?", userID).Order("id").Find(&ratings).Error; err != nil {
		return nil, internal("failed to list ratings", err)
	}
	if len(ratings) == 0 {
		return nil, NotFound("ratings not found")
	}
	return ratings, nil
}

// UserPostRating returns the rating a specific user gave a specific post.
func UserPostRating(db *gorm.DB, userID, postID uint) (*models.PostRating, error) {
	var rating models.PostRating
	if err := db.Where("post_id = ? AND user_id = ?", postID, userID).
		First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("rating not found")
		}
		return nil, internal("failed to load rating", err)
	}
	return &rating, nil
}

// refreshAverageRating recomputes the post's mean rating and stores it. A post
// whose last rating was just removed goes back to 0, the unrated sentinel.
func refreshAverageRating(tx *gorm.DB, postID uint) error {
	var avg sql.NullFloat64
	if err := tx.Model(&models.PostRating{}).
		Where("post_id = ?", postID).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return internal("failed to compute average rating", err)
	}
	value := 0.0
	if avg.Valid {
		value = roundRating(avg.Float64)
	}
	if err := tx.Model(&models.Post{}).Where("id = ?", postID).
		Update("average_rating", value).Error; err != nil {
		return internal("failed to store average rating", err)
	}
	return nil
}

// roundRating fixes averages to two decimals, half to even.
func roundRating(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
