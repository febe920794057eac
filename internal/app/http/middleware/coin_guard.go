package middleware

import (
	"net/http"

	"betting-app/database"
	"betting-app/internal/domain/billing"
	"betting-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequireSubscription gates routes that only make sense for a user with a
// live subscription row.
func RequireSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var sub billing.Subscription
		if err := database.DB.Where("user_id = ?", userID).First(&sub).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "An active subscription is required",
			})
			return
		}

		c.Next()
	}
}

// RequireCoins blocks play for users with an empty balance and points them at
// the purchase flow instead.
func RequireCoins() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var user users.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		if user.Coins == 0 {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "You are out of coins. Buy a coin bundle or subscribe to keep playing.",
			})
			return
		}

		c.Next()
	}
}
