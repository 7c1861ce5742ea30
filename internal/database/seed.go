// internal/database/seed.go
package database

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/packscan/packscan-backend/internal/config"
	"github.com/packscan/packscan-backend/internal/models"
)

// SeedInitialData creates the configured administrator and the settings singleton.
// Existing rows are left untouched.
func SeedInitialData(db *gorm.DB, admin config.AdminConfig, inspection config.InspectionConfig) error {
	return WithTransaction(db, func(tx *gorm.DB) error {
		if admin.Email != "" {
			if err := seedAdmin(tx, admin); err != nil {
				return err
			}
		}
		return seedSettings(tx, inspection.DefaultICEmail)
	})
}

func seedAdmin(tx *gorm.DB, cfg config.AdminConfig) error {
	var existing models.User
	err := tx.Where("email = ?", cfg.Email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	user := &models.User{
		Name:  cfg.Name,
		Email: cfg.Email,
		Role:  models.RoleAdmin,
	}
	if err := user.SetPassword(cfg.Password); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}
	if err := tx.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logrus.WithField("email", cfg.Email).Info("Admin user created")
	return nil
}

func seedSettings(tx *gorm.DB, icEmail string) error {
	var count int64
	if err := tx.Model(&models.AppSettings{}).Where("id = ?", models.SettingsID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check settings: %w", err)
	}
	if count > 0 {
		return nil
	}

	settings := &models.AppSettings{ID: models.SettingsID, ICEmail: icEmail}
	if err := tx.Create(settings).Error; err != nil {
		return fmt.Errorf("failed to create settings: %w", err)
	}
	return nil
}
