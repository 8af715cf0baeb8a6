package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pixshare/photoshare/config"
	"github.com/pixshare/photoshare/middleware"
	"github.com/pixshare/photoshare/models"
	"github.com/pixshare/photoshare/repository"
	"github.com/pixshare/photoshare/services"
	"github.com/pixshare/photoshare/utils"
)

// maxUploadSize caps incoming image files at 10MB.
const maxUploadSize = 10 * 1024 * 1024

// PostController manages photo posts: upload, metadata, search, QR codes.
type PostController struct {
	db   *gorm.DB
	host services.ImageHost
}

// NewPostController creates a PostController.
func NewPostController(db *gorm.DB, host services.ImageHost) *PostController {
	return &PostController{db: db, host: host}
}

// CreatePost uploads a photo to the image host and stores the post row.
// A later database failure does not roll back the upload; the orphaned image
// stays on the host.
func (p *PostController) CreatePost(ctx *gin.Context) {
	acting := middleware.CurrentUser(ctx)
	if acting == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40130, "unauthorized")
		return
	}

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "no file uploaded")
		return
	}
	defer file.Close()
	if header.Size > maxUploadSize {
		utils.Error(ctx, http.StatusBadRequest, 40041, "file size exceeds 10MB")
		return
	}

	description := utils.Sanitize(ctx.PostForm("description"))

	uploaded, err := services.UploadImage(ctx.Request.Context(), p.host, file)
	if err != nil {
		fail(ctx, err)
		return
	}

	post, err := repository.CreatePost(p.db, uploaded.URL, uploaded.PublicID, description, acting)
	if err != nil {
		fail(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:search:")
	utils.Success(ctx, gin.H{"post": post})
}

// GetPost returns a single post with author and tags.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	post, err := repository.GetPost(p.db, postID)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// ListMyPosts returns the authenticated user's posts.
func (p *PostController) ListMyPosts(ctx *gin.Context) {
	acting := middleware.CurrentUser(ctx)
	if acting == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40130, "unauthorized")
		return
	}
	posts, err := repository.UserPosts(p.db, acting.ID)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"posts": posts})
}

// UpdateDescription edits the description. Owner only.
func (p *PostController) UpdateDescription(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Description string `json:"description" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40042, "invalid request payload")
		return
	}
	acting := middleware.CurrentUser(ctx)
	if acting == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40130, "unauthorized")
		return
	}
	post, err := repository.GetPost(p.db, postID)
	if err != nil {
		fail(ctx, err)
		return
	}
	if post.UserID != acting.ID {
		utils.Error(ctx, http.StatusForbidden, 40330, "you can only edit your own posts")
		return
	}
	post, err = repository.UpdateDescription(p.db, postID, utils.Sanitize(req.Description))
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.InvalidateByPrefix("cache:search:")
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post. Owner or admin. The hosted image is destroyed
// best effort after the database delete commits.
func (p *PostController) DeletePost(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	acting := middleware.CurrentUser(ctx)
	if acting == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40130, "unauthorized")
		return
	}
	post, err := repository.GetPost(p.db, postID)
	if err != nil {
		fail(ctx, err)
		return
	}
	if post.UserID != acting.ID && acting.Role != models.RoleAdmin {
		utils.Error(ctx, http.StatusForbidden, 40331, "you can only delete your own posts")
		return
	}
	deleted, err := repository.DeletePost(p.db, postID)
	if err != nil {
		fail(ctx, err)
		return
	}
	if err := p.host.Destroy(ctx.Request.Context(), deleted.PublicID); err != nil && utils.Sugar != nil {
		utils.Sugar.Warnw("failed to destroy hosted image", "public_id", deleted.PublicID, "err", err)
	}
	utils.InvalidateByPrefix("cache:search:")
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// SearchPosts filters posts by keyword, tag, and rating range.
func (p *PostController) SearchPosts(ctx *gin.Context) {
	filter := repository.SearchFilter{
		Keyword: strings.TrimSpace(ctx.Query("keyword")),
		Tag:     strings.TrimSpace(ctx.Query("tag")),
	}
	if raw := strings.TrimSpace(ctx.Query("min_rating")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 5 {
			utils.Error(ctx, http.StatusBadRequest, 40043, "invalid min_rating")
			return
		}
		filter.MinRating = &v
	}
	if raw := strings.TrimSpace(ctx.Query("max_rating")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 5 {
			utils.Error(ctx, http.StatusBadRequest, 40044, "invalid max_rating")
			return
		}
		filter.MaxRating = &v
	}
	if filter.MinRating != nil && filter.MaxRating != nil && *filter.MinRating > *filter.MaxRating {
		utils.Error(ctx, http.StatusBadRequest, 40045, "min_rating cannot exceed max_rating")
		return
	}

	cacheKey := "cache:search:" + ctx.Request.URL.RawQuery
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	results, err := repository.SearchPosts(p.db, filter)
	if err != nil {
		fail(ctx, err)
		return
	}

	payload := gin.H{"items": results, "total": len(results)}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, 5*time.Minute)
	utils.Success(ctx, payload)
}

// QRCode renders a PNG QR for the post's image URL.
func (p *PostController) QRCode(ctx *gin.Context) {
	postID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	post, err := repository.GetPost(p.db, postID)
	if err != nil {
		fail(ctx, err)
		return
	}
	url := post.PostURL
	if url == "" {
		url = config.Get().BaseURL + "/api/v1/posts/" + strconv.FormatUint(uint64(post.ID), 10)
	}
	png, err := services.GenerateQRCode(url)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to render qr code")
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}
