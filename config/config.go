package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string
	STRIPE_CURRENCY       string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string
)

// STARTING_COINS is granted to every new account so people can try the dice
// table before paying.
const STARTING_COINS int64 = 100

// DICE_ROLL_PAYOUT maps a guess (2-12) to its payout multiplier. The table is
// symmetric around 7, reflecting how likely each two-die sum is. These are
// deployment configuration, not computed odds.
var DICE_ROLL_PAYOUT = map[int]float64{
	2:  36.0,
	3:  18.0,
	4:  12.0,
	5:  9.0,
	6:  7.2,
	7:  6.0,
	8:  7.2,
	9:  9.0,
	10: 12.0,
	11: 18.0,
	12: 36.0,
}

type CoinBundle struct {
	Coins        int64  `json:"coins"`
	PriceInCents int64  `json:"price_in_cents"`
	Label        string `json:"label"`
}

// COIN_BUNDLES are the one-off purchase options. Purchase requests are
// validated against this list, never against client-supplied prices.
var COIN_BUNDLES = []CoinBundle{
	{Coins: 100, PriceInCents: 100, Label: "100 coins for $1"},
	{Coins: 1000, PriceInCents: 900, Label: "1,000 coins for $9"},
	{Coins: 5000, PriceInCents: 4000, Label: "5,000 coins for $40"},
	{Coins: 10000, PriceInCents: 7500, Label: "10,000 coins for $75"},
}

// FindCoinBundle returns the bundle matching a requested coin amount.
func FindCoinBundle(coins int64) *CoinBundle {
	for i := range COIN_BUNDLES {
		if COIN_BUNDLES[i].Coins == coins {
			return &COIN_BUNDLES[i]
		}
	}
	return nil
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	STRIPE_SECRET_KEY = mustEnv("STRIPE_SECRET_KEY")
	STRIPE_WEBHOOK_SECRET = getEnv("STRIPE_WEBHOOK_SECRET", "")
	STRIPE_CURRENCY = getEnv("STRIPE_CURRENCY", "usd")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
