package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pixshare/photoshare/middleware"
	"github.com/pixshare/photoshare/repository"
	"github.com/pixshare/photoshare/utils"
)

// RatingController exposes the rating engine over HTTP.
type RatingController struct {
	db *gorm.DB
}

// NewRatingController creates a RatingController.
func NewRatingController(db *gorm.DB) *RatingController {
	return &RatingController{db: db}
}

type ratingRequest struct {
	// Out-of-range values are a binding failure: they never reach the engine.
	Rating int `json:"rating" binding:"required,gte=1,lte=5"`
}

// CreateRating records the authenticated user's rating of a post.
func (r *RatingController) CreateRating(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req ratingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "rating must be an integer between 1 and 5")
		return
	}
	acting := middleware.CurrentUser(ctx)
	if acting == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}
	rating, err := repository.CreateRating(r.db, postID, req.Rating, acting)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"rating": rating})
}

// UpdateRating overwrites the authenticated user's existing rating of a post.
func (r *RatingController) UpdateRating(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req ratingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "rating must be an integer between 1 and 5")
		return
	}
	acting := middleware.CurrentUser(ctx)
	if acting == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}
	rating, err := repository.UpdateRating(r.db, postID, req.Rating, acting)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"rating": rating})
}

// DeleteRating removes another user's rating of a post. Moderator or admin only
// (enforced by the route's RequireRoles middleware).
func (r *RatingController) DeleteRating(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	userID, ok := paramID(ctx, "userId")
	if !ok {
		return
	}
	rating, err := repository.DeleteRating(r.db, postID, userID)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"rating": rating})
}

// GetAverage returns the live mean rating of a post.
func (r *RatingController) GetAverage(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	post, err := repository.GetPost(r.db, postID)
	if err != nil {
		fail(ctx, err)
		return
	}
	avg, rated, err := repository.AverageRating(r.db, postID)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{
		"post_url":       post.PostURL,
		"average_rating": avg,
		"rated":          rated,
	})
}

// MyRatings lists every rating the authenticated user has given. No ratings is
// NOT_FOUND, not an empty list.
func (r *RatingController) MyRatings(ctx *gin.Context) {
	acting := middleware.CurrentUser(ctx)
	if acting == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}
	ratings, err := repository.UserRatings(r.db, acting.ID)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"ratings": ratings})
}

// UserPostRating returns the rating a given user gave a given post. Admin only.
func (r *RatingController) UserPostRating(ctx *gin.Context) {
	userID, ok := paramID(ctx, "userId")
	if !ok {
		return
	}
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	rating, err := repository.UserPostRating(r.db, userID, postID)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"rating": rating})
}
