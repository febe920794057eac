package billing

import (
	"errors"
	"math"
	"time"

	"betting-app/internal/domain/plans"
	"betting-app/internal/domain/users"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// InvoiceService handles one-off coin purchases and webhook-driven invoice
// recording. Like the subscription flows, the gateway is called first and all
// local rows commit in one transaction afterwards.
type InvoiceService struct {
	DB      *gorm.DB
	Gateway Gateway
}

// Create charges the user for a coin bundle. Unlike subscriptions, one-off
// purchases always grant the nominal coin amount; the accrual rule does not
// apply here. The coupon, when given, discounts the charge and is redeemed in
// the same transaction that grants the coins.
func (s *InvoiceService) Create(user *users.User, currency string, amount, coins int64, couponCode, token string) error {
	if token == "" {
		return ErrTokenRequired
	}

	var coupon *Coupon
	if couponCode != "" {
		var err error
		coupon, err = FindCouponByCode(s.DB, couponCode)
		if err != nil {
			return err
		}
		if !coupon.Redeemable(time.Now()) {
			return ErrCouponNotRedeemable
		}
		// Percent-off keeps fractional cents; the gateway wants whole minor
		// units, so round half up at this boundary.
		amount = int64(math.Round(coupon.ApplyDiscountTo(amount)))
	}

	customer, err := s.Gateway.CreateCustomer(token, user.Email, "", "")
	if err != nil {
		return &GatewayError{Op: "customer create", Err: err}
	}

	charge, err := s.Gateway.CreateCharge(customer.ID, currency, amount)
	if err != nil {
		return &GatewayError{Op: "charge create", Err: err}
	}

	chargedOn := charge.Created
	invoice := &Invoice{
		UserID:        user.ID,
		Plan:          "-",
		ReceiptNumber: charge.ReceiptNumber,
		Description:   charge.StatementDescriptor,
		PeriodStartOn: &chargedOn,
		PeriodEndOn:   &chargedOn,
		Currency:      charge.Currency,
		Total:         charge.Amount,
	}
	if customer.Card != nil {
		snapshot := NewCreditCard(user.ID, customer.Card)
		invoice.Brand = snapshot.Brand
		invoice.Last4 = snapshot.Last4
		invoice.ExpDate = &snapshot.ExpDate
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if coupon != nil {
			if err := coupon.Redeem(tx); err != nil {
				return err
			}
		}
		if err := tx.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("coins", gorm.Expr("coins + ?", coins)).Error; err != nil {
			return err
		}
		return tx.Create(invoice).Error
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":   user.ID,
			"charge_id": charge.ID,
			"coins":     coins,
			"error":     err,
		}).Error("local commit failed after a successful charge; manual reconciliation required")
		return &ConsistencyError{Op: "coin purchase", Err: err}
	}

	user.Coins += coins
	return nil
}

// PrepareAndSave records a webhook invoice against the matching user. The
// event is dropped when no user owns the customer id or the user has no card
// on file. A positive total also grants the subscription plan's recurring
// coins, in the same transaction as the invoice row.
func (s *InvoiceService) PrepareAndSave(parsed *ParsedInvoiceEvent) (*users.User, error) {
	var user users.User
	err := s.DB.Where("payment_id = ?", parsed.PaymentID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var card CreditCard
	if err := s.DB.Where("user_id = ?", user.ID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCreditCard
		}
		return nil, err
	}

	periodStart := parsed.PeriodStartOn
	periodEnd := parsed.PeriodEndOn
	invoice := &Invoice{
		UserID:        user.ID,
		Plan:          parsed.Plan,
		ReceiptNumber: parsed.ReceiptNumber,
		Description:   parsed.Description,
		PeriodStartOn: &periodStart,
		PeriodEndOn:   &periodEnd,
		Currency:      parsed.Currency,
		Tax:           parsed.Tax,
		TaxPercent:    parsed.TaxPercent,
		Total:         parsed.Total,
		Brand:         card.Brand,
		Last4:         card.Last4,
		ExpDate:       &card.ExpDate,
	}

	var granted int64
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		if parsed.Total <= 0 {
			return nil
		}

		var sub Subscription
		if err := tx.Where("user_id = ?", user.ID).First(&sub).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Invoice for a user who cancelled in the meantime; keep the
				// record, skip the grant.
				return nil
			}
			return err
		}
		plan := plans.GetPlanByID(sub.Plan)
		if plan == nil {
			return nil
		}

		granted = plan.Coins
		return tx.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("coins", gorm.Expr("coins + ?", granted)).Error
	})
	if err != nil {
		return nil, err
	}

	user.Coins += granted
	return &user, nil
}

// Upcoming previews the next invoice straight from the gateway. Nothing is
// persisted.
func (s *InvoiceService) Upcoming(customerID string) (*UpcomingInvoice, error) {
	upcoming, err := s.Gateway.UpcomingInvoice(customerID)
	if err != nil {
		return nil, &GatewayError{Op: "invoice upcoming", Err: err}
	}
	return upcoming, nil
}
