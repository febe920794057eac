package plans

import (
	"net/http"

	"betting-app/config"
	"betting-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/plan"
)

// SyncPlansToStripe pushes the configured catalog to Stripe so subscriptions
// can reference the plan ids. Existing plans are updated in place; Stripe only
// allows mutating the display fields after creation, so price changes need a
// new plan id.
func SyncPlansToStripe(c *gin.Context) {
	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	created := 0
	updated := 0

	for _, p := range plans.All() {
		existing, err := plan.Get(p.ID, nil)
		if err == nil && existing != nil {
			_, err = plan.Update(p.ID, &stripe.PlanParams{
				Nickname:        stripe.String(p.Name),
				TrialPeriodDays: stripe.Int64(int64(p.TrialPeriodDays)),
			})
			if err != nil {
				c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update plan", "plan": p.ID})
				return
			}
			updated++
			continue
		}

		_, err = plan.New(&stripe.PlanParams{
			ID:              stripe.String(p.ID),
			Nickname:        stripe.String(p.Name),
			Amount:          stripe.Int64(p.Amount),
			Currency:        stripe.String(p.Currency),
			Interval:        stripe.String(p.Interval),
			IntervalCount:   stripe.Int64(int64(p.IntervalCount)),
			TrialPeriodDays: stripe.Int64(int64(p.TrialPeriodDays)),
			Product: &stripe.PlanProductParams{
				Name:                stripe.String(p.Name),
				StatementDescriptor: stripe.String(p.StatementDescriptor),
			},
		})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create plan", "plan": p.ID})
			return
		}
		created++
	}

	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"updated": updated,
	})
}
