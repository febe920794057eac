package billing

import "time"

// Card is the denormalized card snapshot a gateway call returns.
type Card struct {
	Brand    string
	Last4    string
	ExpMonth int
	ExpYear  int
}

// Customer is the gateway-side customer reference. Its ID is stored on the
// user as payment_id.
type Customer struct {
	ID   string
	Card *Card
}

// Charge is a completed one-off charge.
type Charge struct {
	ID                  string
	ReceiptNumber       string
	StatementDescriptor string
	Currency            string
	Amount              int64
	Created             time.Time
}

// UpcomingInvoice mirrors the display fields of a saved Invoice. It is a
// read-through preview and is never persisted.
type UpcomingInvoice struct {
	Plan        string    `json:"plan"`
	Description string    `json:"description"`
	NextBillOn  time.Time `json:"next_bill_on"`
	AmountDue   int64     `json:"amount_due"`
	Interval    string    `json:"interval"`
}

// CouponParams mirrors a locally created coupon onto the gateway.
type CouponParams struct {
	Code             string
	Duration         string
	DurationInMonths int
	AmountOff        int64
	PercentOff       int
	Currency         string
	MaxRedemptions   int
	RedeemBy         *time.Time
}

// Gateway is the payment processor boundary. Every method either returns a
// structured success payload or an error; flows wrap any error in a
// GatewayError and leave local state untouched. Calls are made before the
// local transaction starts, never while holding database locks.
type Gateway interface {
	CreateCustomer(token, email, plan, coupon string) (*Customer, error)
	UpdateCard(customerID, token string) (*Customer, error)
	UpdateSubscription(customerID, coupon, plan string) error
	CancelSubscription(customerID string) error
	CreateCharge(customerID, currency string, amount int64) (*Charge, error)
	UpcomingInvoice(customerID string) (*UpcomingInvoice, error)
	CreateCoupon(params CouponParams) error
	DeleteCoupon(code string) error
}
