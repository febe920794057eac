package billing

import (
	"errors"
	"time"

	"betting-app/internal/domain/bets"
	"betting-app/internal/domain/plans"
	"betting-app/internal/domain/users"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SubscriptionService drives the subscription lifecycle: none -> active ->
// active on another plan -> cancelled -> active again. Every mutation calls
// the gateway first (it is the source of truth for whether money moved) and
// then commits all dependent rows in one local transaction. The gateway call
// never happens while database locks are held.
type SubscriptionService struct {
	DB      *gorm.DB
	Gateway Gateway
}

// Create starts a recurring subscription. The coin grant is computed from the
// plan the user previously held, so a cancel/resubscribe cycle cannot mint
// fresh coins.
func (s *SubscriptionService) Create(user *users.User, name, planID, couponCode, token string) error {
	if token == "" {
		return ErrTokenRequired
	}

	plan := plans.GetPlanByID(planID)
	if plan == nil {
		return ErrPlanNotFound
	}

	code := ""
	var coupon *Coupon
	if couponCode != "" {
		code = NormalizeCouponCode(couponCode)
		var err error
		coupon, err = FindCouponByCode(s.DB, code)
		if err != nil {
			return err
		}
		if !coupon.Redeemable(time.Now()) {
			return ErrCouponNotRedeemable
		}
	}

	customer, err := s.Gateway.CreateCustomer(token, user.Email, planID, code)
	if err != nil {
		return &GatewayError{Op: "customer create", Err: err}
	}

	var previousPlan *plans.Plan
	if user.PreviousPlan != nil {
		previousPlan = plans.GetPlanByID(*user.PreviousPlan)
	}
	granted := bets.AddSubscriptionCoins(0, previousPlan, plan, user.CancelledSubscriptionOn)

	sub := &Subscription{UserID: user.ID, Plan: planID}
	if code != "" {
		sub.Coupon = &code
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&users.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"payment_id":                customer.ID,
				"name":                      name,
				"previous_plan":             planID,
				"coins":                     gorm.Expr("coins + ?", granted),
				"cancelled_subscription_on": nil,
			}).Error; err != nil {
			return err
		}
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		if coupon != nil {
			if err := coupon.Redeem(tx); err != nil {
				return err
			}
		}
		if customer.Card != nil {
			return tx.Create(NewCreditCard(user.ID, customer.Card)).Error
		}
		return nil
	})
	if err != nil {
		return s.consistency("subscription create", user.ID, err)
	}

	user.PaymentID = &customer.ID
	user.Name = name
	user.PreviousPlan = &plan.ID
	user.Coins += granted
	user.CancelledSubscriptionOn = nil
	return nil
}

// Update moves an active subscription to another plan. The surrounding
// handler rejects unknown plans and no-op changes to the current plan before
// this is called.
func (s *SubscriptionService) Update(user *users.User, couponCode, planID string) error {
	plan := plans.GetPlanByID(planID)
	if plan == nil {
		return ErrPlanNotFound
	}
	if user.PaymentID == nil {
		return ErrNoSubscription
	}

	var sub Subscription
	if err := s.DB.Where("user_id = ?", user.ID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoSubscription
		}
		return err
	}

	code := ""
	var coupon *Coupon
	if couponCode != "" {
		code = NormalizeCouponCode(couponCode)
		var err error
		coupon, err = FindCouponByCode(s.DB, code)
		if err != nil {
			return err
		}
		if !coupon.Redeemable(time.Now()) {
			return ErrCouponNotRedeemable
		}
	}

	if err := s.Gateway.UpdateSubscription(*user.PaymentID, code, planID); err != nil {
		return &GatewayError{Op: "subscription update", Err: err}
	}

	oldPlanID := sub.Plan
	granted := bets.AddSubscriptionCoins(0, plans.GetPlanByID(oldPlanID), plan, user.CancelledSubscriptionOn)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&users.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"previous_plan": oldPlanID,
				"coins":         gorm.Expr("coins + ?", granted),
			}).Error; err != nil {
			return err
		}

		subUpdates := map[string]interface{}{"plan": planID}
		if code != "" {
			subUpdates["coupon"] = code
		}
		if err := tx.Model(&Subscription{}).
			Where("id = ?", sub.ID).
			Updates(subUpdates).Error; err != nil {
			return err
		}

		if coupon != nil {
			return coupon.Redeem(tx)
		}
		return nil
	})
	if err != nil {
		return s.consistency("subscription update", user.ID, err)
	}

	user.PreviousPlan = &oldPlanID
	user.Coins += granted
	return nil
}

// Cancel ends the subscription at the gateway and locally. The card row is
// only removed when asked; some operators keep a cancelled user's card on
// file so they can resubscribe with one click.
func (s *SubscriptionService) Cancel(user *users.User, discardCreditCard bool) error {
	if user.PaymentID == nil {
		return ErrNoSubscription
	}

	var sub Subscription
	if err := s.DB.Where("user_id = ?", user.ID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoSubscription
		}
		return err
	}

	if err := s.Gateway.CancelSubscription(*user.PaymentID); err != nil {
		return &GatewayError{Op: "subscription cancel", Err: err}
	}

	now := time.Now()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&users.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"payment_id":                nil,
				"cancelled_subscription_on": now,
				"previous_plan":             sub.Plan,
			}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&sub).Error; err != nil {
			return err
		}
		// The card FK is on the user, not the subscription, so nothing
		// cascades here; deleting it is an explicit step.
		if discardCreditCard {
			return tx.Where("user_id = ?", user.ID).Delete(&CreditCard{}).Error
		}
		return nil
	})
	if err != nil {
		return s.consistency("subscription cancel", user.ID, err)
	}

	planID := sub.Plan
	user.PaymentID = nil
	user.CancelledSubscriptionOn = &now
	user.PreviousPlan = &planID
	return nil
}

// UpdatePaymentMethod rotates the card for the existing gateway customer and
// refreshes the denormalized card fields from the returned snapshot.
func (s *SubscriptionService) UpdatePaymentMethod(user *users.User, name, token string) error {
	if token == "" {
		return ErrTokenRequired
	}
	if user.PaymentID == nil {
		return ErrNoSubscription
	}

	var card CreditCard
	if err := s.DB.Where("user_id = ?", user.ID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoCreditCard
		}
		return err
	}

	customer, err := s.Gateway.UpdateCard(*user.PaymentID, token)
	if err != nil {
		return &GatewayError{Op: "card update", Err: err}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("name", name).Error; err != nil {
			return err
		}
		if customer.Card == nil {
			return nil
		}
		fresh := NewCreditCard(user.ID, customer.Card)
		return tx.Model(&CreditCard{}).
			Where("id = ?", card.ID).
			Updates(map[string]interface{}{
				"brand":       fresh.Brand,
				"last4":       fresh.Last4,
				"exp_date":    fresh.ExpDate,
				"is_expiring": fresh.IsExpiring,
			}).Error
	})
	if err != nil {
		return s.consistency("payment method update", user.ID, err)
	}

	user.Name = name
	return nil
}

func (s *SubscriptionService) consistency(op string, userID uint, err error) error {
	logrus.WithFields(logrus.Fields{
		"op":      op,
		"user_id": userID,
		"error":   err,
	}).Error("local commit failed after a successful gateway call; manual reconciliation required")
	return &ConsistencyError{Op: op, Err: err}
}
