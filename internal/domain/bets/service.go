package bets

import (
	"errors"
	"time"

	"betting-app/config"
	"betting-app/internal/domain/users"

	"gorm.io/gorm"
)

var (
	ErrInsufficientFunds = errors.New("wagered amount exceeds the coin balance")
	ErrInvalidWager      = errors.New("guess must be 2-12 and at least 1 coin must be wagered")
)

// BetService settles wagers. It takes an explicit DB handle and a roll
// function so tests can pin the dice.
type BetService struct {
	DB      *gorm.DB
	Payouts map[int]float64
	Roll    func() int
}

func NewBetService(db *gorm.DB) *BetService {
	return &BetService{
		DB:      db,
		Payouts: config.DICE_ROLL_PAYOUT,
		Roll:    Roll,
	}
}

// PlaceBet validates the wager, draws two independent dice, and atomically
// persists the bet together with the user's balance change. The balance
// update is a guarded UPDATE keyed on the current balance, so two concurrent
// bets can never both spend the same coins; the loser of that race rolls back
// and reports insufficient funds.
func (s *BetService) PlaceBet(user *users.User, guess int, wagered int64) (*Bet, error) {
	if wagered > user.Coins {
		return nil, ErrInsufficientFunds
	}
	if guess < 2 || guess > 12 || wagered < 1 {
		return nil, ErrInvalidWager
	}

	payout, ok := s.Payouts[guess]
	if !ok {
		return nil, ErrInvalidWager
	}

	die1 := s.Roll()
	die2 := s.Roll()
	outcome := die1 + die2

	isWinner := IsWinner(guess, outcome)
	payout = DeterminePayout(payout, isWinner)
	net := CalculateNet(wagered, payout, isWinner)

	bet := &Bet{
		UserID:  user.ID,
		Guess:   guess,
		Die1:    die1,
		Die2:    die2,
		Roll:    outcome,
		Wagered: wagered,
		Payout:  payout,
		Net:     net,
	}

	now := time.Now()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&users.User{}).
			Where("id = ? AND coins >= ?", user.ID, wagered).
			Updates(map[string]interface{}{
				"coins":       gorm.Expr("coins + ?", net),
				"last_bet_on": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientFunds
		}
		return tx.Create(bet).Error
	})
	if err != nil {
		return nil, err
	}

	user.Coins += net
	user.LastBetOn = &now
	return bet, nil
}

// RecentBets returns the user's latest settled bets, newest first.
func (s *BetService) RecentBets(userID uint, limit int) ([]Bet, error) {
	var out []Bet
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
