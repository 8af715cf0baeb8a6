package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pixshare/photoshare/repository"
	"github.com/pixshare/photoshare/services"
	"github.com/pixshare/photoshare/utils"
)

// TransformController manages derived images: resizes and artistic filters.
type TransformController struct {
	db   *gorm.DB
	host services.ImageHost
}

// NewTransformController creates a TransformController.
func NewTransformController(db *gorm.DB, host services.ImageHost) *TransformController {
	return &TransformController{db: db, host: host}
}

// Resize produces a fill-cropped variant of the post's image.
func (t *TransformController) Resize(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Width  int `json:"width" binding:"required,gte=1,lte=4096"`
		Height int `json:"height" binding:"required,gte=1,lte=4096"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "width and height must be between 1 and 4096")
		return
	}
	tp, err := services.ResizePost(ctx.Request.Context(), t.db, t.host, postID, req.Width, req.Height)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"transformed_post": tp})
}

// Filter applies one of the named artistic styles to the post's image.
func (t *TransformController) Filter(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Filter string `json:"filter" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40061, "invalid request payload")
		return
	}
	tp, err := services.FilterPost(ctx.Request.Context(), t.db, t.host, postID, req.Filter)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"transformed_post": tp})
}

// List returns the derived images recorded for a post.
func (t *TransformController) List(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if _, err := repository.GetPost(t.db, postID); err != nil {
		fail(ctx, err)
		return
	}
	tps, err := repository.PostTransformations(t.db, postID)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"transformed_posts": tps})
}

// QRCode renders a PNG QR for a transformed image URL.
func (t *TransformController) QRCode(ctx *gin.Context) {
	tpID, ok := paramID(ctx, "transformId")
	if !ok {
		return
	}
	tp, err := repository.TransformedPostByID(t.db, tpID)
	if err != nil {
		fail(ctx, err)
		return
	}
	png, err := services.GenerateQRCode(tp.PhotoURL)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to render qr code")
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}
