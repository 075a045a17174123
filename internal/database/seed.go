package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/callmyselfasaarya/Class-Connect/internal/config"
	"github.com/callmyselfasaarya/Class-Connect/internal/models"
	"github.com/callmyselfasaarya/Class-Connect/internal/utils"
)

// SeedAdmin guarantees the bootstrap admin staff record exists so a
// fresh database is immediately usable.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.Teacher{}).Where("user_id = ?", cfg.AdminUserID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := models.Teacher{
		TeacherName:   cfg.AdminName,
		Department:    "Admin",
		UserID:        cfg.AdminUserID,
		PasswordHash:  hashed,
		PasswordPlain: cfg.AdminPassword,
		Role:          models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Seeded initial admin:", cfg.AdminUserID)
	return nil
}
