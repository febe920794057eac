package admin

import (
	"net/http"
	"time"

	"betting-app/database"
	"betting-app/internal/domain/billing"
	"betting-app/internal/infra/stripegw"

	"github.com/gin-gonic/gin"
)

// GET /admin/coupons
func ListCoupons(c *gin.Context) {
	var coupons []billing.Coupon
	if err := database.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load coupons"})
		return
	}
	c.JSON(http.StatusOK, coupons)
}

// POST /admin/coupons creates a coupon locally and mirrors it to the gateway
// so subscription discounts resolve at billing time. Exactly one of
// amount_off and percent_off must be set.
func CreateCoupon(c *gin.Context) {
	var input struct {
		Code             string     `json:"code"`
		Duration         string     `json:"duration"`
		AmountOff        *int64     `json:"amount_off"`
		PercentOff       *int       `json:"percent_off"`
		Currency         *string    `json:"currency"`
		DurationInMonths *int       `json:"duration_in_months"`
		MaxRedemptions   *int       `json:"max_redemptions"`
		RedeemBy         *time.Time `json:"redeem_by"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if (input.AmountOff == nil) == (input.PercentOff == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Set exactly one of amount_off and percent_off"})
		return
	}
	if input.AmountOff != nil && *input.AmountOff <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount_off must be positive"})
		return
	}
	if input.PercentOff != nil && (*input.PercentOff < 1 || *input.PercentOff > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "percent_off must be between 1 and 100"})
		return
	}

	duration := input.Duration
	if duration == "" {
		duration = "forever"
	}
	switch duration {
	case "once", "repeating", "forever":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be once, repeating or forever"})
		return
	}
	if duration == "repeating" && input.DurationInMonths == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "repeating coupons need duration_in_months"})
		return
	}

	code := input.Code
	if code == "" {
		code = billing.RandomCouponCode()
	}
	code = billing.NormalizeCouponCode(code)

	coupon := billing.Coupon{
		Code:             code,
		Duration:         duration,
		AmountOff:        input.AmountOff,
		PercentOff:       input.PercentOff,
		Currency:         input.Currency,
		DurationInMonths: input.DurationInMonths,
		MaxRedemptions:   input.MaxRedemptions,
		RedeemBy:         input.RedeemBy,
	}

	params := billing.CouponParams{
		Code:     code,
		Duration: duration,
		RedeemBy: input.RedeemBy,
	}
	if input.AmountOff != nil {
		params.AmountOff = *input.AmountOff
		if input.Currency != nil {
			params.Currency = *input.Currency
		} else {
			params.Currency = "usd"
		}
	}
	if input.PercentOff != nil {
		params.PercentOff = *input.PercentOff
	}
	if input.DurationInMonths != nil {
		params.DurationInMonths = *input.DurationInMonths
	}
	if input.MaxRedemptions != nil {
		params.MaxRedemptions = *input.MaxRedemptions
	}

	gateway := stripegw.New()
	if err := gateway.CreateCoupon(params); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create coupon at the payment gateway"})
		return
	}

	if err := database.DB.Create(&coupon).Error; err != nil {
		// Roll the gateway copy back so the two sides stay in step.
		_ = gateway.DeleteCoupon(code)
		c.JSON(http.StatusConflict, gin.H{"error": "Coupon code already exists"})
		return
	}

	c.JSON(http.StatusOK, coupon)
}

// DELETE /admin/coupons/:code removes the coupon locally and at the gateway.
// Already-redeemed subscriptions keep their discount.
func DeleteCoupon(c *gin.Context) {
	code := billing.NormalizeCouponCode(c.Param("code"))

	var coupon billing.Coupon
	if err := database.DB.Where("code = ?", code).First(&coupon).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
		return
	}

	if err := stripegw.New().DeleteCoupon(code); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete coupon at the payment gateway"})
		return
	}

	if err := database.DB.Delete(&coupon).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
}
