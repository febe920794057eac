package bets

import (
	"errors"
	"net/http"

	"betting-app/database"
	"betting-app/internal/domain/bets"
	"betting-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// PlaceBet settles one wager for the logged-in user.
func PlaceBet(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input struct {
		Guess   int   `json:"guess" binding:"required"`
		Wagered int64 `json:"wagered" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	service := bets.NewBetService(database.DB)
	bet, err := service.PlaceBet(&user, input.Guess, input.Wagered)
	if err != nil {
		switch {
		case errors.Is(err, bets.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You wagered more coins than you have"})
		case errors.Is(err, bets.ErrInvalidWager):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Guess must be between 2 and 12 and the wager at least 1 coin"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place bet"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bet":   bet,
		"won":   bet.Won(),
		"coins": user.Coins,
	})
}

// BetHistory lists the user's most recent settled bets.
func BetHistory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	service := bets.NewBetService(database.DB)
	history, err := service.RecentBets(userID, 25)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bet history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bets": history})
}
