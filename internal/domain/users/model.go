package users

import (
	"time"
)

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"type:varchar(128)"`
	Username     *string `gorm:"type:varchar(64);uniqueIndex:idx_users_username"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string  `gorm:"type:varchar(20);not null;default:'user'"`
	IsVerified   bool

	// Coin economy. The balance must never go negative; every flow that
	// spends coins validates before committing.
	Coins     int64      `gorm:"not null;default:0"`
	LastBetOn *time.Time `gorm:"column:last_bet_on"`

	// Billing state. PreviousPlan is the last plan this user ever held and
	// feeds the coin accrual rule; CancelledSubscriptionOn marks a
	// cancellation until the next subscribe clears it.
	PreviousPlan            *string    `gorm:"column:previous_plan;type:varchar(128)"`
	CancelledSubscriptionOn *time.Time `gorm:"column:cancelled_subscription_on"`
	PaymentID               *string    `gorm:"column:payment_id;uniqueIndex:idx_users_payment_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
