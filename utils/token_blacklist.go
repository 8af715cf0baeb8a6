package utils

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pixshare/photoshare/models"
)

// BlacklistToken revokes a JWT until its natural expiration: an append-only
// database row is the durable record, a Redis key with matching TTL is the
// fast path for per-request checks.
func BlacklistToken(db *gorm.DB, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := db.Create(&models.BlacklistToken{Token: token, ExpiresAt: expiresAt}).Error; err != nil {
		return err
	}
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = rc.Set(ctx, "jwt:blacklist:"+token, "1", ttl).Err()
	}
	return nil
}

// IsTokenBlacklisted checks whether a token was revoked before expiring.
// Redis answers when reachable; the blacklist table is the fallback.
func IsTokenBlacklisted(db *gorm.DB, token string) bool {
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if n, err := rc.Exists(ctx, "jwt:blacklist:"+token).Result(); err == nil && n > 0 {
			return true
		}
	}
	var count int64
	if err := db.Model(&models.BlacklistToken{}).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}
