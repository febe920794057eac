package billing

import "time"

// Subscription is the single recurring plan a user holds. It is created on
// the first successful subscribe, its plan field is mutated on update, and
// the row is deleted on cancel.
type Subscription struct {
	ID     uint    `gorm:"primaryKey" json:"-"`
	UserID uint    `gorm:"not null;uniqueIndex:idx_subscriptions_user_id" json:"-"`
	Plan   string  `gorm:"type:varchar(128)" json:"plan"`
	Coupon *string `gorm:"type:varchar(128)" json:"coupon,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
