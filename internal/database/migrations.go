// internal/database/migrations.go
package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/packscan/packscan-backend/internal/models"
)

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.InspectionList{},
		&models.ProductEntry{},
		&models.AppSettings{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes(db)

	logrus.Info("Database migrations completed")
	return nil
}

// createIndexes adds composite indexes the struct tags cannot express.
// Failures are logged and skipped.
func createIndexes(db *gorm.DB) {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_product_entries_root_created ON product_entries(cnpj_raiz, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_product_entries_list_created ON product_entries(list_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_product_entries_status_created ON product_entries(review_status, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_inspection_lists_inspector_created ON inspection_lists(inspector_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).WithField("index", index).Warn("Failed to create index")
		}
	}
}
