package billing

import (
	"testing"
	"time"

	"betting-app/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPurchaser(t *testing.T, db *gorm.DB, coins int64) *users.User {
	t.Helper()
	user := &users.User{Email: "buyer@example.com", Coins: coins}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestInvoiceCreateGrantsCoins(t *testing.T) {
	db := testDB(t)
	user := seedPurchaser(t, db, 50)

	gateway := new(mockGateway)
	gateway.On("CreateCustomer", "tok_visa", user.Email, "", "").
		Return(&Customer{
			ID:   "cus_1",
			Card: &Card{Brand: "Visa", Last4: "4242", ExpMonth: 12, ExpYear: 2030},
		}, nil)
	gateway.On("CreateCharge", "cus_1", "usd", int64(900)).
		Return(&Charge{
			ID:            "ch_1",
			ReceiptNumber: "rcpt_1",
			Currency:      "usd",
			Amount:        900,
			Created:       time.Now().UTC(),
		}, nil)

	service := &InvoiceService{DB: db, Gateway: gateway}
	require.NoError(t, service.Create(user, "usd", 900, 1000, "", "tok_visa"))

	assert.Equal(t, int64(1050), user.Coins)

	var invoice Invoice
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&invoice).Error)
	assert.Equal(t, "-", invoice.Plan)
	assert.Equal(t, "rcpt_1", invoice.ReceiptNumber)
	assert.Equal(t, int64(900), invoice.Total)
	assert.Equal(t, "Visa", invoice.Brand)
	assert.Equal(t, "4242", invoice.Last4)

	gateway.AssertExpectations(t)
}

func TestInvoiceCreateDiscountsTheCharge(t *testing.T) {
	db := testDB(t)
	user := seedPurchaser(t, db, 0)
	require.NoError(t, db.Create(&Coupon{Code: "SAVE1", PercentOff: intPtr(1)}).Error)

	gateway := new(mockGateway)
	gateway.On("CreateCustomer", "tok_visa", user.Email, "", "").
		Return(&Customer{ID: "cus_1"}, nil)
	// 1% off 100 cents rounds to a 99 cent charge.
	gateway.On("CreateCharge", "cus_1", "usd", int64(99)).
		Return(&Charge{ID: "ch_1", Currency: "usd", Amount: 99, Created: time.Now().UTC()}, nil)

	service := &InvoiceService{DB: db, Gateway: gateway}
	require.NoError(t, service.Create(user, "usd", 100, 100, "SAVE1", "tok_visa"))

	assert.Equal(t, int64(100), user.Coins)

	var coupon Coupon
	require.NoError(t, db.Where("code = ?", "SAVE1").First(&coupon).Error)
	assert.Equal(t, 1, coupon.TimesRedeemed)

	gateway.AssertExpectations(t)
}

func TestInvoiceCreateLocalCommitFailureRollsBackEverything(t *testing.T) {
	db := testDB(t)
	user := seedPurchaser(t, db, 50)
	require.NoError(t, db.Create(&Coupon{Code: "SAVE1", PercentOff: intPtr(1)}).Error)

	gateway := new(mockGateway)
	gateway.On("CreateCustomer", "tok_visa", user.Email, "", "").
		Return(&Customer{ID: "cus_1"}, nil)
	gateway.On("CreateCharge", "cus_1", "usd", int64(99)).
		Return(&Charge{ID: "ch_1", Currency: "usd", Amount: 99, Created: time.Now().UTC()}, nil)

	// Break the invoice insert so the local commit fails after the charge
	// already went through. The coin grant and the coupon redemption must
	// roll back with it.
	require.NoError(t, db.Migrator().DropTable(&Invoice{}))

	service := &InvoiceService{DB: db, Gateway: gateway}
	err := service.Create(user, "usd", 100, 100, "SAVE1", "tok_visa")

	var consistencyErr *ConsistencyError
	require.ErrorAs(t, err, &consistencyErr)

	var stored users.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, int64(50), stored.Coins)

	var coupon Coupon
	require.NoError(t, db.Where("code = ?", "SAVE1").First(&coupon).Error)
	assert.Equal(t, 0, coupon.TimesRedeemed)
}

func TestInvoiceCreateRequiresToken(t *testing.T) {
	db := testDB(t)
	user := seedPurchaser(t, db, 0)

	service := &InvoiceService{DB: db, Gateway: new(mockGateway)}
	assert.ErrorIs(t, service.Create(user, "usd", 100, 100, "", ""), ErrTokenRequired)
}

func TestParseInvoiceEvent(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"data": {
			"object": {
				"customer": "cus_1",
				"receipt_number": "rcpt_9",
				"currency": "usd",
				"tax": 25,
				"tax_percent": 5.0,
				"total": 525,
				"lines": {
					"data": [{
						"plan": {"name": "gold", "statement_descriptor": "BETTINGAPP GOLD"},
						"period": {"start": 1700000000, "end": 1702592000}
					}]
				}
			}
		}
	}`)

	parsed, err := ParseInvoiceEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, "cus_1", parsed.PaymentID)
	assert.Equal(t, "gold", parsed.Plan)
	assert.Equal(t, "rcpt_9", parsed.ReceiptNumber)
	assert.Equal(t, "BETTINGAPP GOLD", parsed.Description)
	assert.Equal(t, int64(525), parsed.Total)
	require.NotNil(t, parsed.Tax)
	assert.Equal(t, int64(25), *parsed.Tax)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), parsed.PeriodStartOn)
}

func TestParseInvoiceEventMalformed(t *testing.T) {
	_, err := ParseInvoiceEvent([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseInvoiceEvent([]byte(`{"data": {"object": {}}}`))
	assert.Error(t, err)

	// An event id but no invoice body.
	_, err = ParseInvoiceEvent([]byte(`{"id": "evt_1", "data": {"object": {"customer": ""}}}`))
	assert.Error(t, err)
}

func TestPrepareAndSaveUnknownCustomer(t *testing.T) {
	db := testDB(t)

	service := &InvoiceService{DB: db, Gateway: new(mockGateway)}
	_, err := service.PrepareAndSave(&ParsedInvoiceEvent{PaymentID: "cus_missing"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPrepareAndSaveWithoutCard(t *testing.T) {
	db := testDB(t)
	user := seedPurchaser(t, db, 0)
	require.NoError(t, db.Model(user).Update("payment_id", "cus_1").Error)

	service := &InvoiceService{DB: db, Gateway: new(mockGateway)}
	_, err := service.PrepareAndSave(&ParsedInvoiceEvent{PaymentID: "cus_1"})
	assert.ErrorIs(t, err, ErrNoCreditCard)
}

func TestPrepareAndSaveGrantsRecurringCoins(t *testing.T) {
	db := testDB(t)
	user := seedPurchaser(t, db, 10)
	require.NoError(t, db.Model(user).Update("payment_id", "cus_1").Error)
	require.NoError(t, db.Create(&CreditCard{UserID: user.ID, Brand: "Visa", Last4: "4242"}).Error)
	require.NoError(t, db.Create(&Subscription{UserID: user.ID, Plan: "gold"}).Error)

	service := &InvoiceService{DB: db, Gateway: new(mockGateway)}
	updated, err := service.PrepareAndSave(&ParsedInvoiceEvent{
		PaymentID:     "cus_1",
		Plan:          "gold",
		ReceiptNumber: "rcpt_1",
		Currency:      "usd",
		Total:         500,
		PeriodStartOn: time.Now().UTC(),
		PeriodEndOn:   time.Now().UTC().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(610), updated.Coins)

	var invoice Invoice
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&invoice).Error)
	assert.Equal(t, "gold", invoice.Plan)
	assert.Equal(t, "Visa", invoice.Brand)
}

func TestPrepareAndSaveZeroTotalSkipsGrant(t *testing.T) {
	db := testDB(t)
	user := seedPurchaser(t, db, 10)
	require.NoError(t, db.Model(user).Update("payment_id", "cus_1").Error)
	require.NoError(t, db.Create(&CreditCard{UserID: user.ID, Brand: "Visa", Last4: "4242"}).Error)
	require.NoError(t, db.Create(&Subscription{UserID: user.ID, Plan: "gold"}).Error)

	service := &InvoiceService{DB: db, Gateway: new(mockGateway)}
	// A trial period invoice bills nothing and must grant nothing.
	updated, err := service.PrepareAndSave(&ParsedInvoiceEvent{
		PaymentID:     "cus_1",
		Plan:          "gold",
		Total:         0,
		PeriodStartOn: time.Now().UTC(),
		PeriodEndOn:   time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), updated.Coins)
}

func TestUpcomingWrapsGatewayErrors(t *testing.T) {
	db := testDB(t)

	gateway := new(mockGateway)
	gateway.On("UpcomingInvoice", "cus_1").
		Return(nil, assert.AnError)

	service := &InvoiceService{DB: db, Gateway: gateway}
	_, err := service.Upcoming("cus_1")

	var gatewayErr *GatewayError
	assert.ErrorAs(t, err, &gatewayErr)
}
