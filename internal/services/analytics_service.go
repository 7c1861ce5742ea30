// internal/services/analytics_service.go
package services

import (
	"context"

	"github.com/packscan/packscan-backend/internal/inspection"
	"github.com/packscan/packscan-backend/internal/repository"
)

type AnalyticsService struct {
	repo        repository.Repository
	rankingSize int
}

func NewAnalyticsService(repo repository.Repository, rankingSize int) *AnalyticsService {
	if rankingSize < 1 {
		rankingSize = inspection.DefaultRankingSize
	}
	return &AnalyticsService{repo: repo, rankingSize: rankingSize}
}

// Report aggregates every entry of the lists visible to the actor.
func (s *AnalyticsService) Report(ctx context.Context, actor Actor, opts inspection.ReportOptions) (inspection.Report, error) {
	lists, err := s.repo.ListLists(ctx, repository.ListScope{InspectorID: actor.scope()})
	if err != nil {
		return inspection.Report{}, err
	}
	if opts.Limit <= 0 {
		opts.Limit = s.rankingSize
	}
	return inspection.Aggregate(lists, opts), nil
}
