package billing

import "time"

// CreditCard holds the denormalized card-on-file details. The foreign key is
// on the user, not the subscription, so cancelling a subscription never
// cascades into the card; discarding it is an explicit policy step.
type CreditCard struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	UserID     uint      `gorm:"index;not null" json:"-"`
	Brand      string    `gorm:"type:varchar(32)" json:"brand"`
	Last4      string    `gorm:"type:varchar(4)" json:"last4"`
	ExpDate    time.Time `gorm:"column:exp_date" json:"exp_date"`
	IsExpiring bool      `json:"is_expiring"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// NewCreditCard builds the card row from a gateway card snapshot.
func NewCreditCard(userID uint, card *Card) *CreditCard {
	exp := time.Date(card.ExpYear, time.Month(card.ExpMonth), 1, 0, 0, 0, 0, time.UTC)
	return &CreditCard{
		UserID:     userID,
		Brand:      card.Brand,
		Last4:      card.Last4,
		ExpDate:    exp,
		IsExpiring: IsExpiringSoon(time.Now(), exp),
	}
}

// IsExpiringSoon reports whether a card expires within the next 60 days.
func IsExpiringSoon(now, expDate time.Time) bool {
	return !expDate.After(now.AddDate(0, 0, 60))
}
