package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pixshare/photoshare/models"
)

// CreatePost stores a freshly uploaded photo.
func CreatePost(db *gorm.DB, postURL, publicID, description string, owner *models.User) (*models.Post, error) {
	post := models.Post{
		UserID:      owner.ID,
		PostURL:     postURL,
		PublicID:    publicID,
		Description: description,
	}
	if err := db.Create(&post).Error; err != nil {
		return nil, internal("failed to create post", err)
	}
	return &post, nil
}

// GetPost loads a post with its author and tags.
func GetPost(db *gorm.DB, postID uint) (*models.Post, error) {
	var post models.Post
	if err := db.Preload("User").Preload("Tags").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("post not found")
		}
		return nil, internal("failed to load post", err)
	}
	return &post, nil
}

// UserPosts lists the posts a user owns, newest first.
func UserPosts(db *gorm.DB, userID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := db.Where("user_id = ?", userID).
		Preload("Tags").
		Order("created_at DESC, id ASC").
		Find(&posts).Error; err != nil {
		return nil, internal("failed to list posts", err)
	}
	return posts, nil
}

// UpdateDescription edits a post's description. Ownership is the caller's check.
func UpdateDescription(db *gorm.DB, postID uint, description string) (*models.Post, error) {
	var post models.Post
	if err := db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("post not found")
		}
		return nil, internal("failed to load post", err)
	}
	post.Description = description
	if err := db.Save(&post).Error; err != nil {
		return nil, internal("failed to update post", err)
	}
	return &post, nil
}

// DeletePost removes a post and everything hanging off it: comments, ratings,
// transformed variants, and tag associations. Foreign keys are not relied on
// for the cascade, so each dependent set goes explicitly in one transaction.
func DeletePost(db *gorm.DB, postID uint) (*models.Post, error) {
	var post models.Post
	if err := db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("post not found")
		}
		return nil, internal("failed to load post", err)
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return internal("failed to delete comments", err)
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostRating{}).Error; err != nil {
			return internal("failed to delete ratings", err)
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.TransformedPost{}).Error; err != nil {
			return internal("failed to delete transformed posts", err)
		}
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", post.ID).Error; err != nil {
			return internal("failed to delete tag associations", err)
		}
		if err := tx.Delete(&post).Error; err != nil {
			return internal("failed to delete post", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// SearchFilter narrows SearchPosts. Zero values mean "no filter"; the rating
// bounds are pointers so 0 stays expressible.
type SearchFilter struct {
	Keyword   string
	Tag       string
	MinRating *float64
	MaxRating *float64
}

// CommentProjection is the (user, text) pair search responses carry per comment.
type CommentProjection struct {
	UserID uint   `json:"user_id"`
	Text   string `json:"text"`
}

// PostProjection is one search result: the post plus its tags, comment pairs,
// and live mean rating.
type PostProjection struct {
	Post          models.Post         `json:"post"`
	Tags          []models.Tag        `json:"tags"`
	Comments      []CommentProjection `json:"comments"`
	AverageRating float64             `json:"average_rating"`
}

// SearchPosts filters posts by keyword, tag, and mean-rating range, newest
// first with id as the stable tie-break. Keyword matching is a case-insensitive
// substring test on the description. Either rating bound joins live ratings,
// so posts with no ratings fall out of range-filtered results.
func SearchPosts(db *gorm.DB, filter SearchFilter) ([]PostProjection, error) {
	q := db.Model(&models.Post{})

	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		q = q.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(kw)+"%")
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		q = q.Where(
			"posts.id IN (SELECT post_tags.post_id FROM post_tags JOIN tags ON tags.id = post_tags.tag_id WHERE tags.name = ?)",
			tag,
		)
	}
	if filter.MinRating != nil || filter.MaxRating != nil {
		sub := db.Model(&models.PostRating{}).
			Select("post_id, AVG(rating) AS avg_rating").
			Group("post_id")
		q = q.Joins("JOIN (?) AS pr ON pr.post_id = posts.id", sub)
		if filter.MinRating != nil {
			q = q.Where("pr.avg_rating >= ?", *filter.MinRating)
		}
		if filter.MaxRating != nil {
			q = q.Where("pr.avg_rating <= ?", *filter.MaxRating)
		}
	}

	var posts []models.Post
	if err := q.Preload("Tags").Preload("Comments").
		Order("posts.created_at DESC, posts.id ASC").
		Find(&posts).Error; err != nil {
		return nil, internal("failed to search posts", err)
	}

	results := make([]PostProjection, 0, len(posts))
	for i := range posts {
		avg, _, err := AverageRating(db, posts[i].ID)
		if err != nil {
			return nil, err
		}
		comments := make([]CommentProjection, 0, len(posts[i].Comments))
		for _, c := range posts[i].Comments {
			comments = append(comments, CommentProjection{UserID: c.UserID, Text: c.Text})
		}
		tags := posts[i].Tags
		if tags == nil {
			tags = []models.Tag{}
		}
		// The projection carries tags and comments at the top level.
		posts[i].Tags = nil
		posts[i].Comments = nil
		results = append(results, PostProjection{
			Post:          posts[i],
			Tags:          tags,
			Comments:      comments,
			AverageRating: avg,
		})
	}
	return results, nil
}
