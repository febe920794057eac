package billing

import (
	"errors"
	"net/http"

	"betting-app/database"
	"betting-app/internal/domain/billing"
	"betting-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// respondBillingError translates the billing error taxonomy into HTTP
// responses. Gateway failures surface as 502 so callers can tell "the card
// processor is down" from our own bugs; consistency failures are 500 and are
// already logged by the service.
func respondBillingError(c *gin.Context, err error) {
	var gatewayErr *billing.GatewayError
	var consistencyErr *billing.ConsistencyError

	switch {
	case errors.Is(err, billing.ErrTokenRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A payment token is required"})
	case errors.Is(err, billing.ErrPlanNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
	case errors.Is(err, billing.ErrCouponNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coupon code is not valid"})
	case errors.Is(err, billing.ErrCouponNotRedeemable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coupon code is expired or fully redeemed"})
	case errors.Is(err, billing.ErrNoSubscription):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You do not have an active subscription"})
	case errors.Is(err, billing.ErrNoCreditCard):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No card on file"})
	case errors.As(err, &gatewayErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment processor error, you have not been charged"})
	case errors.As(err, &consistencyErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong on our side, support has been notified"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

func currentUser(c *gin.Context) (*users.User, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return nil, false
	}
	return &user, true
}
