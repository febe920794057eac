package admin

import (
	"net/http"

	"betting-app/database"
	"betting-app/internal/domain/bets"
	"betting-app/internal/domain/billing"
	"betting-app/internal/domain/users"
	"betting-app/internal/infra/stripegw"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Username     *string `json:"username,omitempty"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	IsVerified   bool    `json:"is_verified"`
	Coins        int64   `json:"coins"`
	PreviousPlan *string `json:"previous_plan,omitempty"`
	PaymentID    *string `json:"payment_id,omitempty"`
}

func toAdminUser(u users.User) AdminUser {
	return AdminUser{
		ID:           u.ID,
		Name:         u.Name,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		IsVerified:   u.IsVerified,
		Coins:        u.Coins,
		PreviousPlan: u.PreviousPlan,
		PaymentID:    u.PaymentID,
	}
}

// GET /admin/dashboard shows how the user base splits into subscribers and
// free players, plus coupon and bet volume.
func AdminDashboard(c *gin.Context) {
	var totalUsers, subscribers, coupons, totalBets int64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&billing.Subscription{}).Count(&subscribers)
	database.DB.Model(&billing.Coupon{}).Count(&coupons)
	database.DB.Model(&bets.Bet{}).Count(&totalBets)

	type PlanCount struct {
		Plan  string
		Count int64
	}
	var perPlan []PlanCount
	database.DB.Model(&billing.Subscription{}).
		Select("plan, COUNT(id) as count").
		Group("plan").
		Scan(&perPlan)

	planCounts := map[string]int64{}
	for _, pc := range perPlan {
		planCounts[pc.Plan] = pc.Count
	}

	type BetTotals struct {
		Wagered int64
		Net     int64
	}
	var totals BetTotals
	database.DB.Model(&bets.Bet{}).
		Select("COALESCE(SUM(wagered), 0) as wagered, COALESCE(SUM(net), 0) as net").
		Scan(&totals)

	c.JSON(http.StatusOK, gin.H{
		"coins_wagered":        totals.Wagered,
		"coins_net":            totals.Net,
		"total_users":          totalUsers,
		"subscribers":          subscribers,
		"free_users":           totalUsers - subscribers,
		"coupons":              coupons,
		"total_bets":           totalBets,
		"subscribers_per_plan": planCounts,
	})
}

// GET /admin/users?q= lists users, optionally filtered by email or username.
func ListAllUsers(c *gin.Context) {
	q := database.DB.Model(&users.User{}).Order("created_at DESC")
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where("email LIKE ? OR username LIKE ?", like, like)
	}

	var all []users.User
	if err := q.Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]AdminUser, 0, len(all))
	for _, u := range all {
		out = append(out, toAdminUser(u))
	}
	c.JSON(http.StatusOK, out)
}

// GET /admin/users/:id
func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := gin.H{"user": toAdminUser(user)}

	var sub billing.Subscription
	if err := database.DB.Where("user_id = ?", user.ID).First(&sub).Error; err == nil {
		resp["subscription"] = sub
	}

	var invoices []billing.Invoice
	database.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Limit(12).Find(&invoices)
	resp["invoices"] = invoices

	var recent []bets.Bet
	database.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Limit(10).Find(&recent)
	resp["bets"] = recent

	c.JSON(http.StatusOK, resp)
}

// PUT /admin/users/:id lets support adjust a role or coin balance.
func UpdateUser(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input struct {
		Role  *string `json:"role"`
		Coins *int64  `json:"coins"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Role != nil {
		if *input.Role != "user" && *input.Role != "admin" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be user or admin"})
			return
		}
		updates["role"] = *input.Role
	}
	if input.Coins != nil {
		if *input.Coins < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Coins cannot be negative"})
			return
		}
		updates["coins"] = *input.Coins
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

// DELETE /admin/users/:id/subscription cancels a user's subscription on
// their behalf, through the same flow the user would take.
func CancelUserSubscription(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	service := &billing.SubscriptionService{DB: database.DB, Gateway: stripegw.New()}
	if err := service.Cancel(&user, true); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to cancel subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled"})
}

// GET /admin/invoices
func ListAllInvoices(c *gin.Context) {
	var invoices []billing.Invoice
	if err := database.DB.Order("created_at DESC").Limit(100).Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load invoices"})
		return
	}
	c.JSON(http.StatusOK, invoices)
}
