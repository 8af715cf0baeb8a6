package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pixshare/photoshare/middleware"
	"github.com/pixshare/photoshare/repository"
	"github.com/pixshare/photoshare/utils"
)

// CommentController manages comments on posts.
type CommentController struct {
	db *gorm.DB
}

// NewCommentController creates a CommentController.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db}
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CreateComment adds a comment to a post.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}
	acting := middleware.CurrentUser(ctx)
	if acting == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40140, "unauthorized")
		return
	}
	comment, err := repository.CreateComment(c.db, postID, utils.Sanitize(req.Text), acting)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"comment": comment})
}

// UpdateComment edits a comment. Author only.
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	commentID, ok := paramID(ctx, "commentId")
	if !ok {
		return
	}
	var req commentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40051, "invalid request payload")
		return
	}
	acting := middleware.CurrentUser(ctx)
	if acting == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40140, "unauthorized")
		return
	}
	comment, err := repository.UpdateComment(c.db, commentID, utils.Sanitize(req.Text), acting)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"comment": comment})
}

// DeleteComment removes a comment. Moderator or admin only (enforced by the
// route's RequireRoles middleware).
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	commentID, ok := paramID(ctx, "commentId")
	if !ok {
		return
	}
	comment, err := repository.DeleteComment(c.db, commentID)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"comment": comment})
}

// PostComments lists the comments on a post, oldest first.
func (c *CommentController) PostComments(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if _, err := repository.GetPost(c.db, postID); err != nil {
		fail(ctx, err)
		return
	}
	comments, err := repository.PostComments(c.db, postID)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"comments": comments})
}
