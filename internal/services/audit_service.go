// internal/services/audit_service.go
package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/packscan/packscan-backend/internal/models"
	"github.com/packscan/packscan-backend/internal/utils"
)

type AuditService struct {
	db *gorm.DB
}

type AuditFilters struct {
	UserID       *uuid.UUID
	Action       string
	ResourceType string
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record stores an audit row. Failures are logged; auditing never fails the caller.
func (s *AuditService) Record(entry *models.AuditLog) {
	if err := s.db.Create(entry).Error; err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":        entry.Action,
			"resource_type": entry.ResourceType,
		}).Error("Failed to create audit log")
	}
}

func (s *AuditService) Log(ctx context.Context, userID uuid.UUID, action, resourceType string, resourceID *uuid.UUID, oldValues, newValues models.JSONB) {
	entry := &models.AuditLog{
		UserID:       &userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		OldValues:    oldValues,
		NewValues:    newValues,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":  action,
			"user_id": userID,
		}).Error("Failed to create audit log")
	}
}

func (s *AuditService) List(ctx context.Context, filters AuditFilters, params utils.PageParams) ([]models.AuditLog, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.Action != "" {
		query = query.Where("action = ?", filters.Action)
	}
	if filters.ResourceType != "" {
		query = query.Where("resource_type = ?", filters.ResourceType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var logs []models.AuditLog
	if err := query.Scopes(utils.Paginate(params, "created_at", "action", "resource_type")).Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get audit logs: %w", err)
	}

	return logs, total, nil
}
