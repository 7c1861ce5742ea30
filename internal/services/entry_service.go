// internal/services/entry_service.go
package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/packscan/packscan-backend/internal/extraction"
	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/models"
	"github.com/packscan/packscan-backend/internal/repository"
)

type EntryService struct {
	repo     repository.Repository
	oracle   extraction.Oracle
	settings *SettingsService
	storage  PhotoStore
	audit    *AuditService
}

type ProcessRequest struct {
	Photos []string `json:"photos" validate:"required,min=1"`
}

type UpdateEntryRequest struct {
	Attributes models.ExtractedAttributes `json:"data"`
	ICComment  *string                    `json:"ic_comment,omitempty"`
}

// EntryResult is a stored entry together with how its novelty was decided.
type EntryResult struct {
	Entry   *models.ProductEntry `json:"entry"`
	Novelty inspection.Novelty   `json:"novelty"`
}

func NewEntryService(repo repository.Repository, oracle extraction.Oracle, settings *SettingsService, storage PhotoStore, audit *AuditService) *EntryService {
	return &EntryService{repo: repo, oracle: oracle, settings: settings, storage: storage, audit: audit}
}

// Process extracts the attributes of a product from its photos, classifies its
// organization and stores the result as a pending entry of the list. Nothing is stored
// when extraction or classification fails.
func (s *EntryService) Process(ctx context.Context, actor Actor, listID uuid.UUID, req *ProcessRequest) (*EntryResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	list, err := visibleList(ctx, s.repo, actor, listID)
	if err != nil {
		return nil, err
	}

	photos := extraction.ValidPhotos(req.Photos)
	attrs, err := s.oracle.Extract(ctx, photos)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"list_id": listID,
			"photos":  len(photos),
		}).Warn("Extraction failed")
		return nil, err
	}
	attrs = inspection.NormalizeAttributes(attrs)

	refs, err := s.settings.ReferenceSet(ctx)
	if err != nil {
		return nil, err
	}
	novelty, err := inspection.ClassifyNovelty(ctx, attrs.TaxIDs, refs, s.repo, nil)
	if err != nil {
		return nil, err
	}

	stored, err := s.storage.StorePhotos(ctx, photos)
	if err != nil {
		return nil, err
	}

	entry := &models.ProductEntry{
		ListID:        list.ID,
		InspectorID:   list.InspectorID,
		Photos:        stored,
		Attributes:    attrs,
		TaxRoot:       novelty.Root,
		IsNewProspect: novelty.IsNewProspect,
		ReviewStatus:  models.ReviewStatusPending,
	}
	if err := s.repo.InsertEntry(ctx, entry); err != nil {
		if cleanupErr := s.storage.DeletePhotos(ctx, stored); cleanupErr != nil {
			logrus.WithError(cleanupErr).WithField("list_id", listID).Warn("Failed to delete photos of unsaved entry")
		}
		return nil, err
	}

	s.audit.Log(ctx, actor.ID, "ENTRY_CREATE", "entry", &entry.ID, nil, models.JSONB{
		"list_id":         list.ID,
		"cnpj_raiz":       novelty.Root,
		"is_new_prospect": novelty.IsNewProspect,
	})

	return &EntryResult{Entry: entry, Novelty: novelty}, nil
}

// Update replaces the attributes of an entry and recomputes its novelty, excluding the
// entry itself from the history lookup.
func (s *EntryService) Update(ctx context.Context, actor Actor, id uuid.UUID, req *UpdateEntryRequest) (*EntryResult, error) {
	if req.ICComment != nil && !actor.IsAdmin() {
		return nil, &inspection.AuthorizationError{Reason: "only administrators can comment for commercial intelligence"}
	}

	entry, err := s.visibleEntry(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	attrs := inspection.NormalizeAttributes(req.Attributes)

	refs, err := s.settings.ReferenceSet(ctx)
	if err != nil {
		return nil, err
	}
	novelty, err := inspection.ClassifyNovelty(ctx, attrs.TaxIDs, refs, s.repo, &entry.ID)
	if err != nil {
		return nil, err
	}

	updates := attributeUpdates(attrs)
	updates["cnpj_raiz"] = novelty.Root
	updates["is_new_prospect"] = novelty.IsNewProspect
	if req.ICComment != nil {
		updates["ic_comment"] = *req.ICComment
	}

	if err := s.repo.UpdateEntry(ctx, id, updates); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, actor.ID, "ENTRY_UPDATE", "entry", &id,
		models.JSONB{"cnpj_raiz": entry.TaxRoot, "is_new_prospect": entry.IsNewProspect},
		models.JSONB{"cnpj_raiz": novelty.Root, "is_new_prospect": novelty.IsNewProspect})

	updated, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	return &EntryResult{Entry: updated, Novelty: novelty}, nil
}

func (s *EntryService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	entry, err := s.visibleEntry(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteEntry(ctx, id); err != nil {
		return err
	}

	if err := s.storage.DeletePhotos(ctx, entry.Photos); err != nil {
		logrus.WithError(err).WithField("entry_id", id).Warn("Failed to delete entry photos")
	}

	s.audit.Log(ctx, actor.ID, "ENTRY_DELETE", "entry", &id,
		models.JSONB{"list_id": entry.ListID, "cnpj_raiz": entry.TaxRoot}, nil)
	return nil
}

// ReclassifyResult counts the entries visited and the ones whose novelty flipped.
type ReclassifyResult struct {
	Scanned int `json:"scanned"`
	Changed int `json:"changed"`
}

// seenRoots is the history as it stood while replaying entries in creation order.
type seenRoots map[string]bool

func (s seenRoots) ExistsByRoot(ctx context.Context, root string, excludeID *uuid.UUID) (bool, error) {
	return s[root], nil
}

// Reclassify replays every entry oldest first against the current reference set, so the
// first sighting of a root is the only one that can be new. Used after the reference
// list changes.
func (s *EntryService) Reclassify(ctx context.Context, actor Actor) (*ReclassifyResult, error) {
	if err := inspection.AuthorizeSettingsWrite(actor.Role).Err(); err != nil {
		return nil, err
	}

	refs, err := s.settings.ReferenceSet(ctx)
	if err != nil {
		return nil, err
	}

	// oldest first
	entries, err := s.repo.ListEntries(ctx, repository.EntryScope{})
	if err != nil {
		return nil, err
	}

	result := &ReclassifyResult{}
	seen := seenRoots{}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Scanned++

		novelty, err := inspection.ClassifyNovelty(ctx, entry.Attributes.TaxIDs, refs, seen, &entry.ID)
		if err != nil {
			return result, err
		}
		if novelty.Root != "" {
			seen[novelty.Root] = true
		}
		if novelty.Root == entry.TaxRoot && novelty.IsNewProspect == entry.IsNewProspect {
			continue
		}

		if err := s.repo.UpdateEntry(ctx, entry.ID, map[string]interface{}{
			"cnpj_raiz":       novelty.Root,
			"is_new_prospect": novelty.IsNewProspect,
		}); err != nil {
			return result, err
		}
		result.Changed++
	}

	s.audit.Log(ctx, actor.ID, "ENTRY_RECLASSIFY", "entry", nil, nil, models.JSONB{
		"scanned": result.Scanned,
		"changed": result.Changed,
	})

	logrus.WithFields(logrus.Fields{
		"scanned": result.Scanned,
		"changed": result.Changed,
	}).Info("Entries reclassified")
	return result, nil
}

// visibleEntry hides entries of lists the actor cannot see.
func (s *EntryService) visibleEntry(ctx context.Context, actor Actor, id uuid.UUID) (*models.ProductEntry, error) {
	entry, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && entry.InspectorID != actor.ID {
		return nil, inspection.NotFoundf("entry %s", id)
	}
	return entry, nil
}

func attributeUpdates(a models.ExtractedAttributes) map[string]interface{} {
	return map[string]interface{}{
		"razao_social":         a.RazaoSocial,
		"cnpj":                 a.TaxIDs,
		"marca":                a.Marca,
		"descricao_produto":    a.DescricaoProduto,
		"conteudo":             a.Conteudo,
		"endereco":             a.Endereco,
		"cep":                  a.CEP,
		"telefone":             a.Telefone,
		"site":                 a.Site,
		"fabricante_embalagem": a.FabricanteEmbalagem,
		"moldagem":             a.Moldagem,
		"formato_embalagem":    a.FormatoEmbalagem,
		"tipo_embalagem":       a.TipoEmbalagem,
		"modelo_embalagem":     a.ModeloEmbalagem,
	}
}
