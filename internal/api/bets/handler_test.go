package bets

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"betting-app/database"
	"betting-app/internal/domain/bets"
	"betting-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) (*gin.Engine, *users.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}, &bets.Bet{}))
	database.DB = db

	user := &users.User{Email: "player@example.com", Coins: 500}
	require.NoError(t, db.Create(user).Error)

	r := gin.New()
	authed := r.Group("/", func(c *gin.Context) {
		c.Set("user_id", user.ID)
	})
	authed.POST("/bets", PlaceBet)
	authed.GET("/bets", BetHistory)
	return r, user
}

func TestPlaceBetHandler(t *testing.T) {
	r, user := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bets", strings.NewReader(`{"guess": 7, "wagered": 100}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"coins"`)

	var stored users.User
	require.NoError(t, database.DB.First(&stored, user.ID).Error)
	assert.NotEqual(t, int64(500), stored.Coins)
	assert.NotNil(t, stored.LastBetOn)
}

func TestPlaceBetHandlerRejectsBadWager(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bets", strings.NewReader(`{"guess": 13, "wagered": 100}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceBetHandlerRejectsOverdraft(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bets", strings.NewReader(`{"guess": 7, "wagered": 10000}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "more coins than you have")
}

func TestBetHistoryHandler(t *testing.T) {
	r, user := setupRouter(t)

	require.NoError(t, database.DB.Create(&bets.Bet{
		UserID: user.ID, Guess: 7, Die1: 3, Die2: 4, Roll: 7, Wagered: 10, Payout: 6.0, Net: 60,
	}).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bets", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"roll":7`)
}
