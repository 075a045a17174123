package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/config"
	"github.com/callmyselfasaarya/Class-Connect/internal/models"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate is additive and idempotent: AutoMigrate adds missing tables
// and columns and never drops anything.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Student{},
		&models.Teacher{},
		&models.AttendanceEntry{},
		&models.Course{},
		&models.OutPass{},
	)
}
