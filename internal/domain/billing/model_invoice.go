package billing

import (
	"encoding/json"
	"errors"
	"time"
)

// Invoice is the immutable history of one completed charge, either a
// subscription billing cycle or a one-off coin purchase. Card details are
// denormalized so history renders correctly after the user changes or drops
// their card.
type Invoice struct {
	ID            uint       `gorm:"primaryKey" json:"-"`
	UserID        uint       `gorm:"index;not null" json:"-"`
	Plan          string     `gorm:"type:varchar(128);index" json:"plan"`
	ReceiptNumber string     `gorm:"type:varchar(128);index" json:"receipt_number"`
	Description   string     `gorm:"type:varchar(128)" json:"description"`
	PeriodStartOn *time.Time `gorm:"column:period_start_on" json:"period_start_on"`
	PeriodEndOn   *time.Time `gorm:"column:period_end_on" json:"period_end_on"`
	Currency      string     `gorm:"type:varchar(8)" json:"currency"`
	Tax           *int64     `json:"tax"`
	TaxPercent    *float64   `json:"tax_percent"`
	Total         int64      `json:"total"`

	Brand   string     `gorm:"type:varchar(32)" json:"brand"`
	Last4   string     `gorm:"type:varchar(4)" json:"last4"`
	ExpDate *time.Time `gorm:"column:exp_date;index" json:"exp_date"`

	CreatedAt time.Time `json:"created_at"`
}

// ParsedInvoiceEvent is the subset of a gateway invoice event that gets
// saved locally.
type ParsedInvoiceEvent struct {
	PaymentID     string
	Plan          string
	ReceiptNumber string
	Description   string
	PeriodStartOn time.Time
	PeriodEndOn   time.Time
	Currency      string
	Tax           *int64
	TaxPercent    *float64
	Total         int64
}

// ParseInvoiceEvent extracts the invoice fields from a webhook payload shaped
// {id, data: {object: {...}}}. Malformed payloads return an error; the
// webhook handler acknowledges them anyway so the gateway stops retrying.
func ParseInvoiceEvent(payload []byte) (*ParsedInvoiceEvent, error) {
	var event struct {
		ID   string `json:"id"`
		Data struct {
			Object struct {
				Customer      string   `json:"customer"`
				ReceiptNumber string   `json:"receipt_number"`
				Currency      string   `json:"currency"`
				Tax           *int64   `json:"tax"`
				TaxPercent    *float64 `json:"tax_percent"`
				Total         int64    `json:"total"`
				Lines         struct {
					Data []struct {
						Plan struct {
							Name                string `json:"name"`
							StatementDescriptor string `json:"statement_descriptor"`
						} `json:"plan"`
						Period struct {
							Start int64 `json:"start"`
							End   int64 `json:"end"`
						} `json:"period"`
					} `json:"data"`
				} `json:"lines"`
			} `json:"object"`
		} `json:"data"`
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	if event.ID == "" {
		return nil, errors.New("event has no id")
	}

	object := event.Data.Object
	if object.Customer == "" || len(object.Lines.Data) == 0 {
		return nil, errors.New("event does not carry an invoice payload")
	}

	line := object.Lines.Data[0]
	return &ParsedInvoiceEvent{
		PaymentID:     object.Customer,
		Plan:          line.Plan.Name,
		ReceiptNumber: object.ReceiptNumber,
		Description:   line.Plan.StatementDescriptor,
		PeriodStartOn: time.Unix(line.Period.Start, 0).UTC(),
		PeriodEndOn:   time.Unix(line.Period.End, 0).UTC(),
		Currency:      object.Currency,
		Tax:           object.Tax,
		TaxPercent:    object.TaxPercent,
		Total:         object.Total,
	}, nil
}
