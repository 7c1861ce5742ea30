// internal/repository/repository.go
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/packscan/packscan-backend/internal/models"
)

// EntryScope narrows ListEntries; nil fields do not filter.
type EntryScope struct {
	ListID      *uuid.UUID
	InspectorID *uuid.UUID
	Status      *models.ReviewStatus
	TaxRoot     *string
}

// ListScope narrows ListLists. Search matches list fields and entry identity fields.
type ListScope struct {
	InspectorID *uuid.UUID
	Search      string
}

// Repository is the durable store of lists, entries and the reference settings.
type Repository interface {
	ExistsByRoot(ctx context.Context, root string, excludeID *uuid.UUID) (bool, error)

	ListEntries(ctx context.Context, scope EntryScope) ([]models.ProductEntry, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*models.ProductEntry, error)
	InsertEntry(ctx context.Context, entry *models.ProductEntry) error
	UpdateEntry(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	DeleteEntriesByList(ctx context.Context, listID uuid.UUID) (int64, error)

	CreateList(ctx context.Context, list *models.InspectionList) error
	GetList(ctx context.Context, id uuid.UUID) (*models.InspectionList, error)
	ListLists(ctx context.Context, scope ListScope) ([]models.InspectionList, error)
	UpdateListStatus(ctx context.Context, id uuid.UUID, status models.ListStatus) error
	DeleteList(ctx context.Context, id uuid.UUID) error

	GetSettings(ctx context.Context) (*models.AppSettings, error)
	UpsertSettings(ctx context.Context, settings *models.AppSettings) error
}
