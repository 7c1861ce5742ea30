// internal/services/settings_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/packscan/packscan-backend/internal/config"
	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/models"
	"github.com/packscan/packscan-backend/internal/repository"
)

type SettingsService struct {
	repo  repository.Repository
	cfg   config.InspectionConfig
	audit *AuditService
}

type UpdateSettingsRequest struct {
	ICEmail        string `json:"ic_email" validate:"omitempty,email"`
	ReferenceCNPJs string `json:"reference_cnpjs"`
}

// SettingsView is the settings row plus the parsed reference roots.
type SettingsView struct {
	*models.AppSettings
	ReferenceRoots []string `json:"reference_roots"`
}

func NewSettingsService(repo repository.Repository, cfg config.InspectionConfig, audit *AuditService) *SettingsService {
	return &SettingsService{repo: repo, cfg: cfg, audit: audit}
}

// Get reads the singleton row. A missing row yields the configured defaults.
func (s *SettingsService) Get(ctx context.Context) (*models.AppSettings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if errors.Is(err, inspection.ErrNotFound) {
		return &models.AppSettings{ID: models.SettingsID, ICEmail: s.cfg.DefaultICEmail}, nil
	}
	if err != nil {
		return nil, err
	}
	if settings.ICEmail == "" {
		settings.ICEmail = s.cfg.DefaultICEmail
	}
	return settings, nil
}

func (s *SettingsService) View(ctx context.Context) (*SettingsView, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &SettingsView{
		AppSettings:    settings,
		ReferenceRoots: inspection.NewReferenceSet(settings.ReferenceCNPJs).Roots(),
	}, nil
}

// ReferenceSet parses the current blob. It is read on every call so that an edit is
// visible to the next classification.
func (s *SettingsService) ReferenceSet(ctx context.Context) (inspection.ReferenceSet, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return inspection.ReferenceSet{}, err
	}
	return inspection.NewReferenceSet(settings.ReferenceCNPJs), nil
}

func (s *SettingsService) Update(ctx context.Context, actor Actor, req *UpdateSettingsRequest) (*SettingsView, error) {
	if err := inspection.AuthorizeSettingsWrite(actor.Role).Err(); err != nil {
		return nil, err
	}

	req.ICEmail = strings.ToLower(strings.TrimSpace(req.ICEmail))
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	previous, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	actorID := actor.ID
	settings := &models.AppSettings{
		ICEmail:        req.ICEmail,
		ReferenceCNPJs: req.ReferenceCNPJs,
		UpdatedBy:      &actorID,
	}
	if settings.ICEmail == "" {
		settings.ICEmail = s.cfg.DefaultICEmail
	}
	if err := s.repo.UpsertSettings(ctx, settings); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, actor.ID, "SETTINGS_UPDATE", "settings", nil,
		models.JSONB{"ic_email": previous.ICEmail, "reference_cnpjs": previous.ReferenceCNPJs},
		models.JSONB{"ic_email": settings.ICEmail, "reference_cnpjs": settings.ReferenceCNPJs},
	)

	return s.View(ctx)
}
