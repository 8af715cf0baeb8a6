package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pixshare/photoshare/middleware"
	"github.com/pixshare/photoshare/repository"
	"github.com/pixshare/photoshare/utils"
)

// UserController exposes profiles and the admin account operations.
type UserController struct {
	db *gorm.DB
}

// NewUserController creates a UserController.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// GetProfile returns the public profile with post and comment counts.
func (u *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	profile, err := repository.GetProfile(u.db, userID)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"profile": profile})
}

type accountRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

// ChangeRole assigns a role to the account with the given email. Admin only.
func (u *UserController) ChangeRole(ctx *gin.Context) {
	var req accountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40012, "invalid request payload")
		return
	}
	user, err := repository.ChangeRole(u.db, strings.ToLower(req.Email), req.Role)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// Ban deactivates the account. Admin only; admins cannot ban themselves.
func (u *UserController) Ban(ctx *gin.Context) {
	u.setActive(ctx, false)
}

// Unban reactivates the account. Admin only.
func (u *UserController) Unban(ctx *gin.Context) {
	u.setActive(ctx, true)
}

func (u *UserController) setActive(ctx *gin.Context, active bool) {
	var req accountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40013, "invalid request payload")
		return
	}
	if acting := middleware.CurrentUser(ctx); !active && acting != nil &&
		strings.EqualFold(acting.Email, req.Email) {
		utils.Error(ctx, http.StatusForbidden, 40312, "you cannot ban yourself")
		return
	}
	user, err := repository.SetActive(u.db, strings.ToLower(req.Email), active)
	if err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

// Confirm marks the account's email as verified. Admin only; the mail
// round-trip lives outside this service.
func (u *UserController) Confirm(ctx *gin.Context) {
	var req accountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40014, "invalid request payload")
		return
	}
	if err := repository.ConfirmEmail(u.db, strings.ToLower(req.Email)); err != nil {
		fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "email confirmed"})
}
