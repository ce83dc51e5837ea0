package service

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/insights/domain"
	insightsout "github.com/SdReum/classmood-cli/internal/modules/insights/port/out"
	"github.com/SdReum/classmood-cli/internal/platform/clock"
)

type InsightsService struct {
	clock clock.Clock
	store insightsout.SummaryStore
}

func NewInsightsService(clock clock.Clock, store insightsout.SummaryStore) *InsightsService {
	return &InsightsService{clock: clock, store: store}
}

func (s *InsightsService) Record(ctx context.Context, fileID int64, points int, min, max, mean float64) (domain.Summary, error) {
	summary := domain.Summary{
		FileID:     fileID,
		Points:     points,
		MinValue:   min,
		MaxValue:   max,
		MeanValue:  mean,
		AnalyzedAt: s.clock.Now(),
	}
	if err := summary.Validate(); err != nil {
		return domain.Summary{}, err
	}
	if err := s.store.Upsert(ctx, summary); err != nil {
		return domain.Summary{}, err
	}
	return summary, nil
}

func (s *InsightsService) Top(ctx context.Context, limit int) ([]domain.Summary, error) {
	return s.store.Top(ctx, limit)
}

func (s *InsightsService) ForFile(ctx context.Context, fileID int64) (domain.Summary, error) {
	return s.store.ForFile(ctx, fileID)
}
