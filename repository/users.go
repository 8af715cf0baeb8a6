package repository

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pixshare/photoshare/models"
)

// CreateUser registers an account. The very first account in the database
// becomes the admin.
func CreateUser(db *gorm.DB, username, email, passwordHash string) (*models.User, error) {
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		AvatarURL:    gravatarURL(email),
		Role:         models.RoleUser,
		IsActive:     true,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return internal("failed to count users", err)
		}
		if count == 0 {
			user.Role = models.RoleAdmin
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return Conflict("account already exists")
			}
			return internal("failed to create user", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail fetches a user by email.
func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("user not found")
		}
		return nil, internal("failed to load user", err)
	}
	return &user, nil
}

// GetUserByID fetches a user by primary key.
func GetUserByID(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("user not found")
		}
		return nil, internal("failed to load user", err)
	}
	return &user, nil
}

// ConfirmEmail marks the account's email as verified.
func ConfirmEmail(db *gorm.DB, email string) error {
	user, err := GetUserByEmail(db, email)
	if err != nil {
		return err
	}
	user.Confirmed = true
	if err := db.Save(user).Error; err != nil {
		return internal("failed to confirm user", err)
	}
	return nil
}

// ChangeRole assigns a new role to the user with the given email.
func ChangeRole(db *gorm.DB, email, role string) (*models.User, error) {
	switch role {
	case models.RoleAdmin, models.RoleModerator, models.RoleUser:
	default:
		return nil, Validation("unknown role " + role)
	}
	user, err := GetUserByEmail(db, email)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := db.Save(user).Error; err != nil {
		return nil, internal("failed to change role", err)
	}
	return user, nil
}

// SetActive bans (false) or unbans (true) the account.
func SetActive(db *gorm.DB, email string, active bool) (*models.User, error) {
	user, err := GetUserByEmail(db, email)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	if err := db.Save(user).Error; err != nil {
		return nil, internal("failed to update user", err)
	}
	return user, nil
}

// Profile is the public account view with content counters.
type Profile struct {
	models.User
	PostsNumber    int64 `json:"posts_number"`
	CommentsNumber int64 `json:"comments_number"`
}

// GetProfile assembles the public profile of a user.
func GetProfile(db *gorm.DB, userID uint) (*Profile, error) {
	user, err := GetUserByID(db, userID)
	if err != nil {
		return nil, err
	}
	profile := Profile{User: *user}
	if err := db.Model(&models.Post{}).Where("user_id = ?", user.ID).
		Count(&profile.PostsNumber).Error; err != nil {
		return nil, internal("failed to count posts", err)
	}
	if err := db.Model(&models.Comment{}).Where("user_id = ?", user.ID).
		Count(&profile.CommentsNumber).Error; err != nil {
		return nil, internal("failed to count comments", err)
	}
	return &profile, nil
}

// gravatarURL derives the avatar URL from the email, Gravatar convention.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?d=identicon"
}
