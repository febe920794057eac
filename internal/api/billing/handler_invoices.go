package billing

import (
	"net/http"

	"betting-app/database"
	"betting-app/internal/domain/billing"
	"betting-app/internal/infra/stripegw"

	"github.com/gin-gonic/gin"
)

// GET /billing returns the invoice history plus, for subscribers, a preview
// of the next invoice straight from the gateway.
func BillingDetails(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var invoices []billing.Invoice
	if err := database.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(12).
		Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load invoices"})
		return
	}

	resp := gin.H{"invoices": invoices}

	if user.PaymentID != nil {
		service := &billing.InvoiceService{DB: database.DB, Gateway: stripegw.New()}
		upcoming, err := service.Upcoming(*user.PaymentID)
		// A missing upcoming invoice is normal right after a cancel; history
		// still renders.
		if err == nil {
			resp["upcoming_invoice"] = upcoming
		}
	}

	c.JSON(http.StatusOK, resp)
}
