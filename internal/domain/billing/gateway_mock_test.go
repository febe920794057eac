package billing

import (
	"testing"

	"betting-app/internal/domain/users"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&Subscription{},
		&CreditCard{},
		&Coupon{},
		&Invoice{},
	))
	return db
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateCustomer(token, email, plan, coupon string) (*Customer, error) {
	args := m.Called(token, email, plan, coupon)
	if c := args.Get(0); c != nil {
		return c.(*Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) UpdateCard(customerID, token string) (*Customer, error) {
	args := m.Called(customerID, token)
	if c := args.Get(0); c != nil {
		return c.(*Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) UpdateSubscription(customerID, coupon, plan string) error {
	return m.Called(customerID, coupon, plan).Error(0)
}

func (m *mockGateway) CancelSubscription(customerID string) error {
	return m.Called(customerID).Error(0)
}

func (m *mockGateway) CreateCharge(customerID, currency string, amount int64) (*Charge, error) {
	args := m.Called(customerID, currency, amount)
	if c := args.Get(0); c != nil {
		return c.(*Charge), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) UpcomingInvoice(customerID string) (*UpcomingInvoice, error) {
	args := m.Called(customerID)
	if u := args.Get(0); u != nil {
		return u.(*UpcomingInvoice), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) CreateCoupon(params CouponParams) error {
	return m.Called(params).Error(0)
}

func (m *mockGateway) DeleteCoupon(code string) error {
	return m.Called(code).Error(0)
}
