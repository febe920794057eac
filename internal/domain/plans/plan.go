package plans

// Plan is a recurring billing tier. The catalog is deployment configuration
// synced to the payment gateway by an admin, never a per-user database row.
type Plan struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Amount              int64  `json:"amount"` // price in minor units
	Currency            string `json:"currency"`
	Interval            string `json:"interval"`
	IntervalCount       int    `json:"interval_count"`
	TrialPeriodDays     int    `json:"trial_period_days"`
	StatementDescriptor string `json:"statement_descriptor"`
	Coins               int64  `json:"coins"`
	Recommended         bool   `json:"recommended"`
}

var catalog = []Plan{
	{
		ID:                  "bronze",
		Name:                "Bronze",
		Amount:              100,
		Currency:            "usd",
		Interval:            "month",
		IntervalCount:       1,
		TrialPeriodDays:     14,
		StatementDescriptor: "BETTINGAPP BRONZE",
		Coins:               110,
	},
	{
		ID:                  "gold",
		Name:                "Gold",
		Amount:              500,
		Currency:            "usd",
		Interval:            "month",
		IntervalCount:       1,
		TrialPeriodDays:     14,
		StatementDescriptor: "BETTINGAPP GOLD",
		Coins:               600,
		Recommended:         true,
	},
	{
		ID:                  "platinum",
		Name:                "Platinum",
		Amount:              1000,
		Currency:            "usd",
		Interval:            "month",
		IntervalCount:       1,
		TrialPeriodDays:     14,
		StatementDescriptor: "BETTINGAPP PLATINUM",
		Coins:               1500,
	},
}

// GetPlanByID picks the plan matching the gateway plan identifier. Callers
// must treat nil as a hard stop before talking to the gateway.
func GetPlanByID(id string) *Plan {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}

// All returns the configured catalog in display order.
func All() []Plan {
	return catalog
}
