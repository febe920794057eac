package billing

import (
	"net/http"

	"betting-app/database"
	"betting-app/internal/domain/billing"
	"betting-app/internal/infra/stripegw"

	"github.com/gin-gonic/gin"
)

func subscriptionService() *billing.SubscriptionService {
	return &billing.SubscriptionService{DB: database.DB, Gateway: stripegw.New()}
}

// POST /subscription
func CreateSubscription(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Name   string `json:"name" binding:"required"`
		Plan   string `json:"plan" binding:"required"`
		Coupon string `json:"coupon"`
		Token  string `json:"token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing billing.Subscription
	if err := database.DB.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You already have an active subscription"})
		return
	}

	if err := subscriptionService().Create(user, input.Name, input.Plan, input.Coupon, input.Token); err != nil {
		respondBillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscription created",
		"coins":   user.Coins,
	})
}

// PUT /subscription
func UpdateSubscription(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Plan   string `json:"plan" binding:"required"`
		Coupon string `json:"coupon"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sub billing.Subscription
	if err := database.DB.Where("user_id = ?", user.ID).First(&sub).Error; err == nil && sub.Plan == input.Plan {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You are already on this plan"})
		return
	}

	if err := subscriptionService().Update(user, input.Coupon, input.Plan); err != nil {
		respondBillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscription updated",
		"coins":   user.Coins,
	})
}

// DELETE /subscription
func CancelSubscription(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		KeepCreditCard bool `json:"keep_credit_card"`
	}
	// Cancelling discards the card unless the user opts to keep it for a
	// one-click resubscribe.
	_ = c.ShouldBindJSON(&input)

	if err := subscriptionService().Cancel(user, !input.KeepCreditCard); err != nil {
		respondBillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled"})
}

// PUT /subscription/payment-method
func UpdatePaymentMethod(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Name  string `json:"name" binding:"required"`
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := subscriptionService().UpdatePaymentMethod(user, input.Name, input.Token); err != nil {
		respondBillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment method updated"})
}
