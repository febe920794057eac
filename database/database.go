package database

import (
	"log"

	"betting-app/config"
	"betting-app/internal/domain/bets"
	"betting-app/internal/domain/billing"
	"betting-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&users.User{},
		&users.VerificationToken{},

		&billing.Subscription{},
		&billing.CreditCard{},
		&billing.Coupon{},
		&billing.Invoice{},

		&bets.Bet{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	log.Println("Connected and migrated successfully")
}
