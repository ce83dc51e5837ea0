package usecase

import (
	"context"
	"fmt"

	"github.com/SdReum/classmood-cli/internal/modules/insights/domain"
	insightsdto "github.com/SdReum/classmood-cli/internal/modules/insights/dto"
	insightsin "github.com/SdReum/classmood-cli/internal/modules/insights/port/in"
	"github.com/SdReum/classmood-cli/internal/modules/insights/service"
	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"
)

type Interactor struct {
	svc *service.InsightsService
}

func NewInteractor(svc *service.InsightsService) insightsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Record(ctx context.Context, input insightsdto.RecordInput) error {
	if input.FileID <= 0 {
		return fmt.Errorf("%w: file id is required", apperrors.ErrInvalidInput)
	}
	_, err := i.svc.Record(ctx, input.FileID, input.Points, input.Min, input.Max, input.Mean)
	return err
}

func (i *Interactor) Top(ctx context.Context, input insightsdto.TopInput) ([]insightsdto.SummaryOutput, error) {
	summaries, err := i.svc.Top(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]insightsdto.SummaryOutput, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, mapSummary(s))
	}
	return out, nil
}

func (i *Interactor) ForFile(ctx context.Context, fileID int64) (insightsdto.SummaryOutput, error) {
	if fileID <= 0 {
		return insightsdto.SummaryOutput{}, fmt.Errorf("%w: file id is required", apperrors.ErrInvalidInput)
	}
	summary, err := i.svc.ForFile(ctx, fileID)
	if err != nil {
		return insightsdto.SummaryOutput{}, err
	}
	return mapSummary(summary), nil
}

func mapSummary(s domain.Summary) insightsdto.SummaryOutput {
	return insightsdto.SummaryOutput{
		FileID:     s.FileID,
		Filename:   s.Filename,
		Points:     s.Points,
		Min:        s.MinValue,
		Max:        s.MaxValue,
		Mean:       s.MeanValue,
		AnalyzedAt: s.AnalyzedAt,
	}
}
