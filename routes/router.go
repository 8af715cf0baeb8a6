package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pixshare/photoshare/config"
	"github.com/pixshare/photoshare/controllers"
	"github.com/pixshare/photoshare/middleware"
	"github.com/pixshare/photoshare/models"
	"github.com/pixshare/photoshare/services"
	"github.com/pixshare/photoshare/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, host services.ImageHost) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinLogPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	postController := controllers.NewPostController(db, host)
	tagController := controllers.NewTagController(db)
	ratingController := controllers.NewRatingController(db)
	commentController := controllers.NewCommentController(db)
	transformController := controllers.NewTransformController(db, host)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(db), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(db), authController.Me)

	// Public reads
	api.GET("/posts/search", postController.SearchPosts)
	api.GET("/posts/:id", postController.GetPost)
	api.GET("/posts/:id/tags", tagController.PostTags)
	api.GET("/posts/:id/comments", commentController.PostComments)
	api.GET("/posts/:id/rating", ratingController.GetAverage)
	api.GET("/posts/:id/qrcode", postController.QRCode)
	api.GET("/posts/:id/transformations", transformController.List)
	api.GET("/transformations/:transformId/qrcode", transformController.QRCode)
	api.GET("/users/:id", userController.GetProfile)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(db))

	protected.POST("/posts", postController.CreatePost)
	protected.GET("/users/me/posts", postController.ListMyPosts)
	protected.PUT("/posts/:id", postController.UpdateDescription)
	protected.DELETE("/posts/:id", postController.DeletePost)

	protected.POST("/tags", tagController.CreateTag)
	protected.POST("/posts/:id/tags", tagController.AttachTag)

	protected.POST("/posts/:id/ratings", ratingController.CreateRating)
	protected.PUT("/posts/:id/ratings", ratingController.UpdateRating)
	protected.GET("/ratings/me", ratingController.MyRatings)

	protected.POST("/posts/:id/comments", commentController.CreateComment)
	protected.PUT("/comments/:commentId", commentController.UpdateComment)

	protected.POST("/posts/:id/transform/resize", transformController.Resize)
	protected.POST("/posts/:id/transform/filter", transformController.Filter)

	// Moderator and admin surface
	elevated := protected.Group("")
	elevated.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleModerator))
	elevated.PUT("/tags/:id", tagController.UpdateTag)
	elevated.DELETE("/tags/:id", tagController.DeleteTag)
	elevated.DELETE("/posts/:id/ratings/:userId", ratingController.DeleteRating)
	elevated.DELETE("/comments/:commentId", commentController.DeleteComment)

	// Admin only
	admin := protected.Group("")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/posts/:id/ratings/:userId", ratingController.UserPostRating)
	admin.PATCH("/users/role", userController.ChangeRole)
	admin.PATCH("/users/ban", userController.Ban)
	admin.PATCH("/users/unban", userController.Unban)
	admin.PATCH("/users/confirm", userController.Confirm)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40404, "route not found")
	})

	return r
}
