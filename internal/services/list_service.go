// internal/services/list_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/models"
	"github.com/packscan/packscan-backend/internal/repository"
)

type ListService struct {
	repo     repository.Repository
	settings *SettingsService
	storage  PhotoStore
	notifier ListNotifier
	audit    *AuditService
}

type CreateListRequest struct {
	Name          string `json:"name" validate:"required,not_blank,max=255"`
	Establishment string `json:"establishment" validate:"required,not_blank,max=255"`
	City          string `json:"city" validate:"required,not_blank,max=120"`
}

func NewListService(repo repository.Repository, settings *SettingsService, storage PhotoStore, notifier ListNotifier, audit *AuditService) *ListService {
	return &ListService{repo: repo, settings: settings, storage: storage, notifier: notifier, audit: audit}
}

func (s *ListService) Create(ctx context.Context, actor Actor, req *CreateListRequest) (*models.InspectionList, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	list := &models.InspectionList{
		Name:          strings.ToUpper(strings.TrimSpace(req.Name)),
		Establishment: strings.ToUpper(strings.TrimSpace(req.Establishment)),
		City:          strings.ToUpper(strings.TrimSpace(req.City)),
		InspectorID:   actor.ID,
		InspectorName: actor.Name,
		Status:        models.ListStatusExecuting,
		Entries:       []models.ProductEntry{},
	}
	if err := s.repo.CreateList(ctx, list); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, actor.ID, "LIST_CREATE", "list", &list.ID, nil,
		models.JSONB{"name": list.Name, "establishment": list.Establishment, "city": list.City})

	return list, nil
}

func (s *ListService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.InspectionList, error) {
	return visibleList(ctx, s.repo, actor, id)
}

// List returns the lists visible to the actor, newest first. search matches list name,
// establishment or city, and entry tax id, company name or brand.
func (s *ListService) List(ctx context.Context, actor Actor, search string) ([]models.InspectionList, error) {
	return s.repo.ListLists(ctx, repository.ListScope{
		InspectorID: actor.scope(),
		Search:      search,
	})
}

// Submit hands a list over to commercial intelligence. Submitting twice is a no-op and
// does not send a second email. Once the status is saved the call succeeds; notification
// problems are only logged.
func (s *ListService) Submit(ctx context.Context, actor Actor, id uuid.UUID) (*models.InspectionList, error) {
	list, err := visibleList(ctx, s.repo, actor, id)
	if err != nil {
		return nil, err
	}

	switch list.Status {
	case models.ListStatusWaitingIC:
		return list, nil
	case models.ListStatusExecuting:
	default:
		return nil, inspection.NewValidationError("status", fmt.Sprintf("list in status %s cannot be submitted", list.Status))
	}

	if err := s.repo.UpdateListStatus(ctx, id, models.ListStatusWaitingIC); err != nil {
		return nil, err
	}
	list.Status = models.ListStatusWaitingIC

	s.audit.Log(ctx, actor.ID, "LIST_SUBMIT", "list", &list.ID,
		models.JSONB{"status": models.ListStatusExecuting},
		models.JSONB{"status": models.ListStatusWaitingIC})

	settings, err := s.settings.Get(ctx)
	if err != nil {
		logrus.WithError(err).WithField("list_id", list.ID).Error("Failed to read settings for submit notification")
		return list, nil
	}
	if err := s.notifier.SendListSubmitted(ctx, settings.ICEmail, list); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"list_id": list.ID,
			"to":      settings.ICEmail,
		}).Error("Failed to notify commercial intelligence")
	}

	return list, nil
}

// Delete removes the entries first and then the list. When the second step fails the
// error wraps ErrParentDeleteFailed; calling Delete again finishes the job. Photos of the
// removed entries are deleted best effort.
func (s *ListService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	list, err := visibleList(ctx, s.repo, actor, id)
	if err != nil {
		return err
	}

	entries, err := s.repo.ListEntries(ctx, repository.EntryScope{ListID: &id})
	if err != nil {
		return err
	}

	removed, err := s.repo.DeleteEntriesByList(ctx, id)
	if err != nil {
		return err
	}

	// photos go with their entries, even if the list row survives this call
	var photos []string
	for _, entry := range entries {
		photos = append(photos, entry.Photos...)
	}
	if len(photos) > 0 {
		if err := s.storage.DeletePhotos(ctx, photos); err != nil {
			logrus.WithError(err).WithField("list_id", id).Warn("Failed to delete list photos")
		}
	}

	if err := s.repo.DeleteList(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrParentDeleteFailed, err)
	}

	s.audit.Log(ctx, actor.ID, "LIST_DELETE", "list", &list.ID,
		models.JSONB{"name": list.Name, "entries": removed}, nil)
	return nil
}
