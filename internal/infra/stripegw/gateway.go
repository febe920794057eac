package stripegw

import (
	"fmt"
	"time"

	"betting-app/config"
	"betting-app/internal/domain/billing"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/charge"
	"github.com/stripe/stripe-go/v75/coupon"
	"github.com/stripe/stripe-go/v75/customer"
	"github.com/stripe/stripe-go/v75/invoice"
	"github.com/stripe/stripe-go/v75/subscription"
)

// Client implements billing.Gateway against Stripe's tokenized card API.
type Client struct{}

func New() *Client {
	stripe.Key = config.STRIPE_SECRET_KEY
	return &Client{}
}

// CreateCustomer creates a customer bound to the card token and, when a plan
// id is given, starts the recurring subscription (optionally discounted by a
// coupon) in the same call sequence.
func (c *Client) CreateCustomer(token, email, plan, couponCode string) (*billing.Customer, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.AddExpand("sources")
	if token != "" {
		params.Source = stripe.String(token)
	}

	cus, err := customer.New(params)
	if err != nil {
		return nil, err
	}

	if plan != "" {
		subParams := &stripe.SubscriptionParams{
			Customer: stripe.String(cus.ID),
			Items: []*stripe.SubscriptionItemsParams{
				{Price: stripe.String(plan)},
			},
		}
		if couponCode != "" {
			subParams.Coupon = stripe.String(couponCode)
		}
		if _, err := subscription.New(subParams); err != nil {
			return nil, err
		}
	}

	return mapCustomer(cus), nil
}

// UpdateCard rotates the default card source on an existing customer.
func (c *Client) UpdateCard(customerID, token string) (*billing.Customer, error) {
	params := &stripe.CustomerParams{}
	params.AddExpand("sources")
	params.Source = stripe.String(token)

	cus, err := customer.Update(customerID, params)
	if err != nil {
		return nil, err
	}
	return mapCustomer(cus), nil
}

// UpdateSubscription moves the customer's subscription to another plan.
func (c *Client) UpdateSubscription(customerID, couponCode, plan string) error {
	sub, err := firstSubscription(customerID)
	if err != nil {
		return err
	}
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return fmt.Errorf("subscription %s has no price item", sub.ID)
	}

	params := &stripe.SubscriptionParams{
		Items: []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(sub.Items.Data[0].ID),
				Price: stripe.String(plan),
			},
		},
	}
	if couponCode != "" {
		params.Coupon = stripe.String(couponCode)
	}

	_, err = subscription.Update(sub.ID, params)
	return err
}

// CancelSubscription cancels the customer's subscription immediately.
func (c *Client) CancelSubscription(customerID string) error {
	sub, err := firstSubscription(customerID)
	if err != nil {
		return err
	}
	_, err = subscription.Cancel(sub.ID, nil)
	return err
}

// CreateCharge runs a one-off charge against the customer's card on file.
func (c *Client) CreateCharge(customerID, currency string, amount int64) (*billing.Charge, error) {
	ch, err := charge.New(&stripe.ChargeParams{
		Customer: stripe.String(customerID),
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	})
	if err != nil {
		return nil, err
	}

	return &billing.Charge{
		ID:                  ch.ID,
		ReceiptNumber:       ch.ReceiptNumber,
		StatementDescriptor: ch.StatementDescriptor,
		Currency:            string(ch.Currency),
		Amount:              ch.Amount,
		Created:             time.Unix(ch.Created, 0).UTC(),
	}, nil
}

// UpcomingInvoice fetches the customer's next invoice and reshapes it into
// the display fields of a saved invoice.
func (c *Client) UpcomingInvoice(customerID string) (*billing.UpcomingInvoice, error) {
	inv, err := invoice.Upcoming(&stripe.InvoiceUpcomingParams{
		Customer: stripe.String(customerID),
	})
	if err != nil {
		return nil, err
	}

	out := &billing.UpcomingInvoice{
		AmountDue:  inv.AmountDue,
		NextBillOn: time.Unix(inv.Created, 0).UTC(),
	}
	if inv.Lines != nil && len(inv.Lines.Data) > 0 {
		line := inv.Lines.Data[0]
		out.Description = line.Description
		if line.Plan != nil {
			out.Plan = line.Plan.Nickname
			out.Interval = string(line.Plan.Interval)
		}
	}
	return out, nil
}

// CreateCoupon mirrors a locally created coupon onto Stripe so subscription
// discounts apply at billing time.
func (c *Client) CreateCoupon(p billing.CouponParams) error {
	params := &stripe.CouponParams{
		ID:       stripe.String(p.Code),
		Duration: stripe.String(p.Duration),
	}
	if p.AmountOff > 0 {
		params.AmountOff = stripe.Int64(p.AmountOff)
		params.Currency = stripe.String(p.Currency)
	}
	if p.PercentOff > 0 {
		params.PercentOff = stripe.Float64(float64(p.PercentOff))
	}
	if p.DurationInMonths > 0 {
		params.DurationInMonths = stripe.Int64(int64(p.DurationInMonths))
	}
	if p.MaxRedemptions > 0 {
		params.MaxRedemptions = stripe.Int64(int64(p.MaxRedemptions))
	}
	if p.RedeemBy != nil {
		params.RedeemBy = stripe.Int64(p.RedeemBy.Unix())
	}

	_, err := coupon.New(params)
	return err
}

// DeleteCoupon removes a coupon from Stripe.
func (c *Client) DeleteCoupon(code string) error {
	_, err := coupon.Del(code, nil)
	return err
}

func firstSubscription(customerID string) (*stripe.Subscription, error) {
	listParams := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
	}
	it := subscription.List(listParams)
	for it.Next() {
		return it.Subscription(), nil
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("customer %s has no subscription", customerID)
}

func mapCustomer(cus *stripe.Customer) *billing.Customer {
	out := &billing.Customer{ID: cus.ID}
	if cus.Sources == nil {
		return out
	}
	for _, source := range cus.Sources.Data {
		if source.Card == nil {
			continue
		}
		out.Card = &billing.Card{
			Brand:    string(source.Card.Brand),
			Last4:    source.Card.Last4,
			ExpMonth: int(source.Card.ExpMonth),
			ExpYear:  int(source.Card.ExpYear),
		}
		break
	}
	return out
}
