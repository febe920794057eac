package billing

import (
	"net/http"
	"time"

	"betting-app/database"
	"betting-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// GET /coupons/:code lets the checkout form validate a code before the user
// commits. Expired and exhausted codes look the same as unknown ones.
func LookupCoupon(c *gin.Context) {
	code := c.Param("code")

	coupon, err := billing.FindCouponByCode(database.DB, code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon code is not valid"})
		return
	}
	if !coupon.Redeemable(time.Now()) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon code is not valid"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":        coupon.Code,
		"duration":    coupon.Duration,
		"amount_off":  coupon.AmountOff,
		"percent_off": coupon.PercentOff,
	})
}
