package stripewebhook

import (
	"io"
	"net/http"

	"betting-app/config"
	"betting-app/database"
	"betting-app/internal/domain/billing"
	"betting-app/internal/infra/stripegw"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v75/webhook"
)

// StripeWebhook handles gateway callbacks. Only invoice.created is acted on;
// it drives both the invoice history and the recurring coin grant. Everything
// else is acknowledged so Stripe stops retrying.
func StripeWebhook(c *gin.Context) {
	endpointSecret := config.STRIPE_WEBHOOK_SECRET
	if endpointSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		logrus.WithError(err).Warn("stripe signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	if event.Type != "invoice.created" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	parsed, err := billing.ParseInvoiceEvent(payload)
	if err != nil {
		// Malformed events get a 200 too; retrying won't fix the payload.
		logrus.WithError(err).Warn("dropping malformed invoice event")
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	service := &billing.InvoiceService{DB: database.DB, Gateway: stripegw.New()}
	if _, err := service.PrepareAndSave(parsed); err != nil {
		switch err {
		case billing.ErrUserNotFound, billing.ErrNoCreditCard:
			logrus.WithFields(logrus.Fields{
				"customer": parsed.PaymentID,
				"error":    err,
			}).Warn("dropping invoice event with no matching local state")
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		default:
			// Database failures are retryable.
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
