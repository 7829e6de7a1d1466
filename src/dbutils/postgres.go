package dbutils

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jiaming2012/broker-session/src/logger"
	"github.com/jiaming2012/broker-session/src/session-api/models"
)

func InitPostgresWithUrl(url string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.NewLogrusLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func InitPostgres(host, port, user, password, dbName string) (*gorm.DB, error) {
	url := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC", host, user, password, dbName, port)
	return InitPostgresWithUrl(url)
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.KeyValueRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}
