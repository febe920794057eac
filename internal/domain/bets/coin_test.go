package bets

import (
	"testing"
	"time"

	"betting-app/internal/domain/plans"

	"github.com/stretchr/testify/assert"
)

func TestAddSubscriptionCoinsFirstSubscription(t *testing.T) {
	bronze := plans.GetPlanByID("bronze")

	total := AddSubscriptionCoins(100, nil, bronze, nil)
	assert.Equal(t, int64(210), total)
}

func TestAddSubscriptionCoinsUpgradeGrantsTheDifference(t *testing.T) {
	bronze := plans.GetPlanByID("bronze")
	gold := plans.GetPlanByID("gold")

	total := AddSubscriptionCoins(100, bronze, gold, nil)
	assert.Equal(t, int64(590), total)
}

func TestAddSubscriptionCoinsDowngradeGrantsNothing(t *testing.T) {
	bronze := plans.GetPlanByID("bronze")
	gold := plans.GetPlanByID("gold")

	total := AddSubscriptionCoins(100, gold, bronze, nil)
	assert.Equal(t, int64(100), total)
}

func TestAddSubscriptionCoinsResubscribeSameTierGrantsNothing(t *testing.T) {
	gold := plans.GetPlanByID("gold")
	cancelled := time.Now()

	// Cancelling and re-selecting the same tier must not mint fresh coins.
	total := AddSubscriptionCoins(100, gold, gold, &cancelled)
	assert.Equal(t, int64(100), total)
}

func TestAddSubscriptionCoinsResubscribeHigherTierAfterCancel(t *testing.T) {
	bronze := plans.GetPlanByID("bronze")
	platinum := plans.GetPlanByID("platinum")
	cancelled := time.Now()

	// Moving up after a cancel still only grants the difference over what the
	// old tier already paid out.
	total := AddSubscriptionCoins(100, bronze, platinum, &cancelled)
	assert.Equal(t, int64(100+1500-110), total)
}
