package billing

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Coupon is a discount code. Exactly one of AmountOff and PercentOff is set;
// that is validated when the coupon is created, not on every apply.
type Coupon struct {
	ID               uint       `gorm:"primaryKey" json:"-"`
	Code             string     `gorm:"type:varchar(32);not null;uniqueIndex:idx_coupons_code" json:"code"`
	Duration         string     `gorm:"type:varchar(10);not null;default:'forever'" json:"duration"` // once | repeating | forever
	AmountOff        *int64     `json:"amount_off,omitempty"`
	PercentOff       *int       `json:"percent_off,omitempty"`
	Currency         *string    `gorm:"type:varchar(8)" json:"currency,omitempty"`
	DurationInMonths *int       `json:"duration_in_months,omitempty"`
	MaxRedemptions   *int       `json:"max_redemptions,omitempty"`
	TimesRedeemed    int        `gorm:"not null;default:0" json:"times_redeemed"`
	RedeemBy         *time.Time `json:"redeem_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// ApplyDiscountTo returns the discounted amount for a charge in minor units.
// Amount-off never goes below zero. Percent-off keeps fractional precision;
// the caller decides how to coerce it back to whole minor units before
// handing it to the gateway.
func (c *Coupon) ApplyDiscountTo(amount int64) float64 {
	if c.AmountOff != nil {
		discounted := amount - *c.AmountOff
		if discounted < 0 {
			return 0
		}
		return float64(discounted)
	}

	return float64(amount) - float64(amount)*float64(*c.PercentOff)/100
}

// Redeemable is the validity gate checked before a coupon is consumed.
func (c *Coupon) Redeemable(now time.Time) bool {
	if c.RedeemBy != nil && now.After(*c.RedeemBy) {
		return false
	}
	if c.MaxRedemptions != nil && c.TimesRedeemed >= *c.MaxRedemptions {
		return false
	}
	return true
}

// Redeem consumes one redemption. It must run inside the same transaction as
// the operation the coupon paid for, so a rollback releases both together.
func (c *Coupon) Redeem(tx *gorm.DB) error {
	c.TimesRedeemed++
	return tx.Model(&Coupon{}).
		Where("id = ?", c.ID).
		Update("times_redeemed", gorm.Expr("times_redeemed + 1")).Error
}

// FindCouponByCode looks a coupon up case-insensitively; codes are stored
// upper case.
func FindCouponByCode(db *gorm.DB, code string) (*Coupon, error) {
	var coupon Coupon
	err := db.Where("code = ?", NormalizeCouponCode(code)).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// NormalizeCouponCode upper-cases and trims a user-supplied code.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RandomCouponCode generates a 14 character code for admin-created coupons
// that did not specify one.
func RandomCouponCode() string {
	b := make([]byte, 7)
	rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}
