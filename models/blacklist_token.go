package models

import "time"

// BlacklistToken records a revoked JWT. Append-only: rows are checked on every
// authenticated request (after the Redis fast path) and never mutated.
type BlacklistToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"size:512;index;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
