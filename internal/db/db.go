package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/akshay2172/Excel-Analytics-Platform/internal/models"
)

func Open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}

	return database, nil
}

// Migrate keeps the schema in sync. Tests call it against sqlite.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.Upload{},
		&models.Analysis{},
	)
}
