package model

import (
	"time"
)

// RefreshToken is one login session. A user may hold several rows at once;
// rotation consumes exactly one row and inserts its replacement.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"column:user_id;not null;index"`
	Token     string    `gorm:"column:token;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index"`
	CreatedAt time.Time
}
