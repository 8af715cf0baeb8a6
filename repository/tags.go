package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pixshare/photoshare/models"
)

// CreateTag returns the existing tag with the given name or creates a new one.
// Idempotent: calling twice with the same name yields the same row.
func CreateTag(db *gorm.DB, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Validation("tag name cannot be empty")
	}

	var tag models.Tag
	err := db.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal("failed to look up tag", err)
	}

	tag = models.Tag{Name: name}
	if err := db.Create(&tag).Error; err != nil {
		// Concurrent first use of the same name: fetch the winner's row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("name = ?", name).First(&tag).Error; err != nil {
				return nil, internal("failed to load tag", err)
			}
			return &tag, nil
		}
		return nil, internal("failed to create tag", err)
	}
	return &tag, nil
}

// GetTagByName fetches a tag by its exact name.
func GetTagByName(db *gorm.DB, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := db.Where("name = ?", name).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("tag not found")
		}
		return nil, internal("failed to load tag", err)
	}
	return &tag, nil
}

// UpdateTag renames a tag in place.
func UpdateTag(db *gorm.DB, tagID uint, newName string) (*models.Tag, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, Validation("tag name cannot be empty")
	}

	var tag models.Tag
	if err := db.First(&tag, tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("tag not found")
		}
		return nil, internal("failed to load tag", err)
	}

	var other models.Tag
	err := db.Where("name = ? AND id <> ?", newName, tagID).First(&other).Error
	if err == nil {
		return nil, Conflict("tag " + newName + " already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal("failed to check tag name", err)
	}

	tag.Name = newName
	if err := db.Save(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("tag " + newName + " already exists")
		}
		return nil, internal("failed to update tag", err)
	}
	return &tag, nil
}

// DeleteTag removes a tag and, via the join table cascade, its post associations.
func DeleteTag(db *gorm.DB, tagID uint) (*models.Tag, error) {
	var tag models.Tag
	if err := db.First(&tag, tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("tag not found")
		}
		return nil, internal("failed to load tag", err)
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return internal("failed to clear tag associations", err)
		}
		if err := tx.Delete(&tag).Error; err != nil {
			return internal("failed to delete tag", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// AddTagToPost attaches a tag to a post, enforcing the per-post cap. The post
// row is locked for the count-then-attach sequence so two concurrent attaches
// cannot push the list past the cap; sqlite has a single writer and skips the
// lock clause it does not support.
func AddTagToPost(db *gorm.DB, postID, tagID uint) (*models.Post, error) {
	var post models.Post
	err := db.Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() != "sqlite" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("post not found")
			}
			return internal("failed to load post", err)
		}

		var tag models.Tag
		if err := tx.First(&tag, tagID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("tag not found")
			}
			return internal("failed to load tag", err)
		}

		var attached int64
		if err := tx.Table("post_tags").Where("post_id = ?", post.ID).Count(&attached).Error; err != nil {
			return internal("failed to count post tags", err)
		}
		var duplicate int64
		if err := tx.Table("post_tags").
			Where("post_id = ? AND tag_id = ?", post.ID, tag.ID).
			Count(&duplicate).Error; err != nil {
			return internal("failed to check post tags", err)
		}
		if duplicate > 0 {
			return Conflict("the tag " + tag.Name + " has already been added to this post")
		}
		if attached >= models.MaxTagsPerPost {
			return Validation("you cannot add more than 5 tags to one post")
		}

		if err := tx.Model(&post).Association("Tags").Append(&tag); err != nil {
			return internal("failed to attach tag", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := db.Preload("Tags").First(&post, post.ID).Error; err != nil {
		return nil, internal("failed to reload post", err)
	}
	return &post, nil
}

// PostTags returns the post's current tag list. A post value with no loaded
// relation resolves to an empty list, never an error.
func PostTags(db *gorm.DB, post *models.Post) ([]models.Tag, error) {
	if post == nil {
		return []models.Tag{}, nil
	}
	tags := []models.Tag{}
	if err := db.Model(post).Association("Tags").Find(&tags); err != nil {
		return []models.Tag{}, nil
	}
	return tags, nil
}
