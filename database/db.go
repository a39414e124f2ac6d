package database

import (
	"fmt"
	"log"
	"os"

	"ecotrack-backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Connect() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on process environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		envOr("DB_HOST", "db"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), envOr("DB_PORT", "5432"))

	var err error
	// TranslateError maps driver unique-violation errors to gorm.ErrDuplicatedKey,
	// which the idempotency store relies on.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
}

func AutoMigrate() {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.PointTransaction{},
		&models.Product{},
		&models.Exchange{},
		&models.Message{},
		&models.Attachment{},
		&models.IdempotencyRecord{},
	); err != nil {
		log.Fatalf("automigrate failed: %v", err)
	}

	// Belt and braces on top of the struct tag: the unique index is what makes
	// concurrent first-time requests with the same key safe.
	if err := DB.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_records_key ON idempotency_records (idempotency_key)`,
	).Error; err != nil {
		log.Fatalf("idempotency index migration failed: %v", err)
	}
}
