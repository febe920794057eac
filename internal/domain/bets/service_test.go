package bets

import (
	"testing"

	"betting-app/internal/domain/users"

	"github.com/stretchr/testify/assert"
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
	require.NoError(t, db.AutoMigrate(&users.User{}, &Bet{}))
	return db
}

func pinnedRolls(rolls ...int) func() int {
	i := 0
	return func() int {
		r := rolls[i%len(rolls)]
		i++
		return r
	}
}

func seedUser(t *testing.T, db *gorm.DB, coins int64) *users.User {
	t.Helper()
	user := &users.User{Email: "player@example.com", Coins: coins}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestPlaceBetWin(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, 500)

	service := NewBetService(db)
	service.Roll = pinnedRolls(3, 4)

	bet, err := service.PlaceBet(user, 7, 100)
	require.NoError(t, err)

	assert.True(t, bet.Won())
	assert.Equal(t, 3, bet.Die1)
	assert.Equal(t, 4, bet.Die2)
	assert.Equal(t, 7, bet.Roll)
	assert.Equal(t, 6.0, bet.Payout)
	assert.Equal(t, int64(600), bet.Net)

	assert.Equal(t, int64(1100), user.Coins)
	assert.NotNil(t, user.LastBetOn)

	var stored users.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, int64(1100), stored.Coins)

	var count int64
	db.Model(&Bet{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPlaceBetLoss(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, 500)

	service := NewBetService(db)
	service.Roll = pinnedRolls(1, 1)

	bet, err := service.PlaceBet(user, 7, 100)
	require.NoError(t, err)

	assert.False(t, bet.Won())
	assert.Equal(t, 2, bet.Roll)
	assert.Equal(t, 1.0, bet.Payout)
	assert.Equal(t, int64(-100), bet.Net)
	assert.Equal(t, int64(400), user.Coins)
}

func TestPlaceBetInsufficientFunds(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, 50)

	service := NewBetService(db)

	_, err := service.PlaceBet(user, 7, 100)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, int64(50), user.Coins)

	var count int64
	db.Model(&Bet{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestPlaceBetInvalidWager(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, 500)

	service := NewBetService(db)

	_, err := service.PlaceBet(user, 1, 100)
	assert.ErrorIs(t, err, ErrInvalidWager)

	_, err = service.PlaceBet(user, 13, 100)
	assert.ErrorIs(t, err, ErrInvalidWager)

	_, err = service.PlaceBet(user, 7, 0)
	assert.ErrorIs(t, err, ErrInvalidWager)
}

func TestPlaceBetStaleBalanceRollsBack(t *testing.T) {
	db := testDB(t)
	user := seedUser(t, db, 500)

	// Another request spent the coins after this handler loaded the user.
	require.NoError(t, db.Model(&users.User{}).
		Where("id = ?", user.ID).
		Update("coins", 10).Error)

	service := NewBetService(db)
	service.Roll = pinnedRolls(3, 4)

	_, err := service.PlaceBet(user, 7, 100)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	var stored users.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, int64(10), stored.Coins)

	var count int64
	db.Model(&Bet{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
