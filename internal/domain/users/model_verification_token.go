package users

import "time"

// VerificationToken backs both email verification and password reset links.
// Email verification tokens have no expiry; reset tokens expire after an hour.
type VerificationToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"not null;uniqueIndex:idx_verification_tokens_token"`
	Type      string    `gorm:"type:varchar(32);not null;default:'email_verification'"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time
}
