package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pixshare/photoshare/repository"
	"github.com/pixshare/photoshare/utils"
)

// TagController exposes the tagging engine over HTTP.
type TagController struct {
	db *gorm.DB
}

// NewTagController creates a TagController.
func NewTagController(db *gorm.DB) *TagController {
	return &TagController{db: db}
}

type tagRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTag gets or creates a tag by name.
func (t *TagController) CreateTag(ctx *gin.Context) {
	var req tagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}
	tag, err := repository.CreateTag(t.db, utils.Sanitize(req.Name))
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"tag": tag})
}

// UpdateTag renames a tag. Moderator or admin only.
func (t *TagController) UpdateTag(ctx *gin.Context) {
	tagID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req tagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid request payload")
		return
	}
	tag, err := repository.UpdateTag(t.db, tagID, utils.Sanitize(req.Name))
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"tag": tag})
}

// DeleteTag removes a tag and its post associations. Moderator or admin only.
func (t *TagController) DeleteTag(ctx *gin.Context) {
	tagID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	tag, err := repository.DeleteTag(t.db, tagID)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"tag": tag})
}

// AttachTag adds a tag (by name, get-or-create) to a post, subject to the cap.
func (t *TagController) AttachTag(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req tagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid request payload")
		return
	}
	tag, err := repository.CreateTag(t.db, utils.Sanitize(req.Name))
	if err != nil {
		fail(ctx, err)
		return
	}
	post, err := repository.AddTagToPost(t.db, postID, tag.ID)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// PostTags returns the post's current tag list.
func (t *TagController) PostTags(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	post, err := repository.GetPost(t.db, postID)
	if err != nil {
		fail(ctx, err)
		return
	}
	tags, err := repository.PostTags(t.db, post)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"tags": tags})
}
