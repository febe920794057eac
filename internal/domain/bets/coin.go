package bets

import (
	"time"

	"betting-app/internal/domain/plans"
)

// AddSubscriptionCoins returns the new coin total after a plan change.
//
// Coins are only granted when someone subscribes for the first time or moves
// to a plan with more coins. Cancelling and re-subscribing to the same tier,
// or downgrading, grants nothing; otherwise users could farm coins by cycling
// subscriptions. Upgrades grant only the difference because the lower plan's
// coins were already credited.
func AddSubscriptionCoins(coins int64, previousPlan, plan *plans.Plan, cancelledOn *time.Time) int64 {
	var previousPlanCoins int64
	if previousPlan != nil {
		previousPlanCoins = previousPlan.Coins
	}
	planCoins := plan.Coins

	var adjustment int64
	switch {
	case cancelledOn == nil && planCoins == previousPlanCoins:
		// First-time subscription, as opposed to re-selecting the same tier
		// after a cancellation.
		adjustment = planCoins
	case planCoins <= previousPlanCoins:
		return coins
	default:
		adjustment = planCoins - previousPlanCoins
	}

	return coins + adjustment
}
