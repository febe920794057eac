package billing

import (
	"net/http"

	"betting-app/config"
	"betting-app/database"
	"betting-app/internal/domain/billing"
	"betting-app/internal/infra/stripegw"

	"github.com/gin-gonic/gin"
)

// GET /coins/bundles
func ListCoinBundles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bundles": config.COIN_BUNDLES})
}

// POST /coins/purchase charges the user for one of the fixed coin bundles.
// The price always comes from the server-side bundle table; the request only
// names a coin amount.
func PurchaseCoins(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Coins  int64  `json:"coins" binding:"required"`
		Coupon string `json:"coupon"`
		Token  string `json:"token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bundle := config.FindCoinBundle(input.Coins)
	if bundle == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown coin bundle"})
		return
	}

	service := &billing.InvoiceService{DB: database.DB, Gateway: stripegw.New()}
	err := service.Create(user, config.STRIPE_CURRENCY, bundle.PriceInCents, bundle.Coins, input.Coupon, input.Token)
	if err != nil {
		respondBillingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase complete",
		"coins":   user.Coins,
	})
}
