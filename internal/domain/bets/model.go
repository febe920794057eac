package bets

import "time"

// Bet is the immutable record of one settled wager. Rows are written once by
// PlaceBet and never mutated afterwards.
type Bet struct {
	ID      uint    `gorm:"primaryKey" json:"-"`
	UserID  uint    `gorm:"index;not null" json:"-"`
	Guess   int     `json:"guess"`
	Die1    int     `gorm:"column:die_1" json:"die_1"`
	Die2    int     `gorm:"column:die_2" json:"die_2"`
	Roll    int     `json:"roll"`
	Wagered int64   `json:"wagered"`
	Payout  float64 `json:"payout"`
	Net     int64   `json:"net"`

	CreatedAt time.Time `json:"created_at"`
}

// Won reports whether this bet was a winner.
func (b *Bet) Won() bool {
	return IsWinner(b.Guess, b.Roll)
}
