package users

import (
	"net/http"
	"time"

	"betting-app/database"
	"betting-app/internal/domain/billing"
	"betting-app/internal/domain/plans"
	"betting-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func GetCurrentUser(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"username":    user.Username,
			"email":       user.Email,
			"role":        user.Role,
			"is_verified": user.IsVerified,
			"coins":       user.Coins,
			"last_bet_on": user.LastBetOn,
		},
	}

	var sub billing.Subscription
	if err := database.DB.Where("user_id = ?", user.ID).First(&sub).Error; err == nil {
		plan := plans.GetPlanByID(sub.Plan)
		resp["subscription"] = gin.H{
			"plan":   sub.Plan,
			"coupon": sub.Coupon,
		}
		if plan != nil {
			resp["plan"] = plan
		}
	}

	var card billing.CreditCard
	if err := database.DB.Where("user_id = ?", user.ID).First(&card).Error; err == nil {
		resp["credit_card"] = gin.H{
			"brand":       card.Brand,
			"last4":       card.Last4,
			"exp_date":    card.ExpDate,
			"is_expiring": billing.IsExpiringSoon(time.Now(), card.ExpDate),
		}
	}

	c.JSON(http.StatusOK, resp)
}

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var t users.VerificationToken
	if err := database.DB.Where("token = ? AND type = ?", token, "email_verification").First(&t).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", t.UserID).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	database.DB.Delete(&t)

	c.JSON(http.StatusOK, gin.H{"message": "Email verified. You can now log in."})
}
