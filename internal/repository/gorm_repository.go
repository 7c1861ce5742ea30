// internal/repository/gorm_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/models"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// ExistsByRoot never matches an empty root.
func (r *GormRepository) ExistsByRoot(ctx context.Context, root string, excludeID *uuid.UUID) (bool, error) {
	if root == "" {
		return false, nil
	}

	query := r.db.WithContext(ctx).Model(&models.ProductEntry{}).Where("cnpj_raiz = ?", root)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Limit(1).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to query root: %w", err)
	}
	return count > 0, nil
}

func (r *GormRepository) ListEntries(ctx context.Context, scope EntryScope) ([]models.ProductEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductEntry{})
	if scope.ListID != nil {
		query = query.Where("list_id = ?", *scope.ListID)
	}
	if scope.InspectorID != nil {
		query = query.Where("inspector_id = ?", *scope.InspectorID)
	}
	if scope.Status != nil {
		query = query.Where("review_status = ?", *scope.Status)
	}
	if scope.TaxRoot != nil {
		query = query.Where("cnpj_raiz = ?", *scope.TaxRoot)
	}

	var entries []models.ProductEntry
	if err := query.Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

func (r *GormRepository) GetEntry(ctx context.Context, id uuid.UUID) (*models.ProductEntry, error) {
	var entry models.ProductEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inspection.NotFoundf("entry %s", id)
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return &entry, nil
}

func (r *GormRepository) InsertEntry(ctx context.Context, entry *models.ProductEntry) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

func (r *GormRepository) UpdateEntry(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.ProductEntry{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return inspection.NotFoundf("entry %s", id)
	}
	return nil
}

func (r *GormRepository) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductEntry{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return inspection.NotFoundf("entry %s", id)
	}
	return nil
}

func (r *GormRepository) DeleteEntriesByList(ctx context.Context, listID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("list_id = ?", listID).Delete(&models.ProductEntry{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete list entries: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormRepository) CreateList(ctx context.Context, list *models.InspectionList) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(list).Error; err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}
	return nil
}

func orderedEntries(db *gorm.DB) *gorm.DB {
	return db.Order("product_entries.created_at ASC")
}

func (r *GormRepository) GetList(ctx context.Context, id uuid.UUID) (*models.InspectionList, error) {
	var list models.InspectionList
	err := r.db.WithContext(ctx).
		Preload("Entries", orderedEntries).
		First(&list, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inspection.NotFoundf("list %s", id)
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	return &list, nil
}

// ListLists returns lists newest first with their entries in capture order.
func (r *GormRepository) ListLists(ctx context.Context, scope ListScope) ([]models.InspectionList, error) {
	query := r.db.WithContext(ctx).Model(&models.InspectionList{}).Preload("Entries", orderedEntries)

	if scope.InspectorID != nil {
		query = query.Where("inspector_id = ?", *scope.InspectorID)
	}

	if search := strings.TrimSpace(scope.Search); search != "" {
		pattern := "%" + strings.ToUpper(search) + "%"
		matching := r.db.Model(&models.ProductEntry{}).Select("list_id").Where(
			"UPPER(CAST(cnpj AS TEXT)) LIKE ? OR UPPER(razao_social) LIKE ? OR UPPER(marca) LIKE ?",
			pattern, pattern, pattern,
		)
		query = query.Where(
			"UPPER(name) LIKE ? OR UPPER(establishment) LIKE ? OR UPPER(city) LIKE ? OR id IN (?)",
			pattern, pattern, pattern, matching,
		)
	}

	var lists []models.InspectionList
	if err := query.Order("created_at DESC").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to list inspection lists: %w", err)
	}
	return lists, nil
}

func (r *GormRepository) UpdateListStatus(ctx context.Context, id uuid.UUID, status models.ListStatus) error {
	result := r.db.WithContext(ctx).Model(&models.InspectionList{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update list status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return inspection.NotFoundf("list %s", id)
	}
	return nil
}

func (r *GormRepository) DeleteList(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InspectionList{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete list: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return inspection.NotFoundf("list %s", id)
	}
	return nil
}

func (r *GormRepository) GetSettings(ctx context.Context) (*models.AppSettings, error) {
	var settings models.AppSettings
	if err := r.db.WithContext(ctx).First(&settings, models.SettingsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inspection.NotFoundf("settings")
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

// UpsertSettings always writes the singleton row.
func (r *GormRepository) UpsertSettings(ctx context.Context, settings *models.AppSettings) error {
	settings.ID = models.SettingsID
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"ic_email", "reference_cnpjs", "updated_by", "updated_at"}),
	}).Create(settings).Error
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
