package bets

import "math/rand"

// Roll returns one die roll between 1 and 6. Every call is an independent
// draw; a bet always rolls twice.
func Roll() int {
	return rand.Intn(6) + 1
}

// IsWinner reports whether the guess matched the summed roll.
func IsWinner(guess, roll int) bool {
	return guess == roll
}

// DeterminePayout returns the payout multiplier for a settled bet. A loss
// keeps the fixed 1.0 multiplier; CalculateNet is what turns it negative.
func DeterminePayout(payout float64, isWinner bool) float64 {
	if isWinner {
		return payout
	}
	return 1.0
}

// CalculateNet returns the signed coin change for a settled bet. Winnings
// truncate toward zero rather than round; a loss forfeits the whole wager.
func CalculateNet(wagered int64, payout float64, isWinner bool) int64 {
	if isWinner {
		return int64(float64(wagered) * payout)
	}
	return -wagered
}
