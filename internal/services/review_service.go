// internal/services/review_service.go
package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/models"
	"github.com/packscan/packscan-backend/internal/repository"
)

const defaultReviewConcurrency = 8

type ReviewService struct {
	repo        repository.Repository
	audit       *AuditService
	concurrency int
}

type ReviewRequest struct {
	Status models.ReviewStatus `json:"status"`
}

type BulkReviewRequest struct {
	IDs    []uuid.UUID         `json:"ids"`
	Status models.ReviewStatus `json:"status"`
}

// BulkResult reports each transition of a batch independently.
type BulkResult struct {
	Succeeded    []uuid.UUID       `json:"succeeded"`
	Failed       map[string]string `json:"failed"`
	AllSucceeded bool              `json:"all_succeeded"`
}

func NewReviewService(repo repository.Repository, audit *AuditService, concurrency int) *ReviewService {
	if concurrency < 1 {
		concurrency = defaultReviewConcurrency
	}
	return &ReviewService{repo: repo, audit: audit, concurrency: concurrency}
}

// Transition moves an entry to approved or rejected. The capability check runs before
// anything is read; a later transition overwrites an earlier one.
func (s *ReviewService) Transition(ctx context.Context, actor Actor, id uuid.UUID, target models.ReviewStatus) (*models.ProductEntry, error) {
	if err := s.authorize(actor, target); err != nil {
		return nil, err
	}
	return s.apply(ctx, actor, id, target)
}

// BulkTransition applies the same target to every id. One failure does not stop or undo
// the others.
func (s *ReviewService) BulkTransition(ctx context.Context, actor Actor, ids []uuid.UUID, target models.ReviewStatus) (*BulkResult, error) {
	if err := s.authorize(actor, target); err != nil {
		return nil, err
	}

	ids = uniqueIDs(ids)

	// each goroutine owns one slot
	errs := make([]error, len(ids))
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			_, errs[i] = s.apply(ctx, actor, id, target)
			return nil
		})
	}
	g.Wait()

	result := &BulkResult{Succeeded: []uuid.UUID{}, Failed: map[string]string{}}
	for i, id := range ids {
		if errs[i] != nil {
			result.Failed[id.String()] = errs[i].Error()
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	result.AllSucceeded = len(result.Failed) == 0
	return result, nil
}

// uniqueIDs drops repeated ids, keeping the first occurrence.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ApprovePending approves every entry that is still pending.
func (s *ReviewService) ApprovePending(ctx context.Context, actor Actor) (*BulkResult, error) {
	if err := s.authorize(actor, models.ReviewStatusApproved); err != nil {
		return nil, err
	}

	pending := models.ReviewStatusPending
	entries, err := s.repo.ListEntries(ctx, repository.EntryScope{Status: &pending})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	return s.BulkTransition(ctx, actor, ids, models.ReviewStatusApproved)
}

func (s *ReviewService) authorize(actor Actor, target models.ReviewStatus) error {
	if err := inspection.AuthorizeReview(actor.Role).Err(); err != nil {
		return err
	}
	return inspection.ValidateReviewTarget(target)
}

func (s *ReviewService) apply(ctx context.Context, actor Actor, id uuid.UUID, target models.ReviewStatus) (*models.ProductEntry, error) {
	entry, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := entry.ReviewStatus
	if err := s.repo.UpdateEntry(ctx, id, map[string]interface{}{"review_status": target}); err != nil {
		return nil, err
	}
	entry.ReviewStatus = target

	s.audit.Log(ctx, actor.ID, inspection.ReviewAction(target), "entry", &id,
		models.JSONB{"review_status": previous},
		models.JSONB{"review_status": target})

	return entry, nil
}
