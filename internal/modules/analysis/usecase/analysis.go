package usecase

import (
	"context"
	"fmt"

	activitydto "github.com/SdReum/classmood-cli/internal/modules/activity/dto"
	activityin "github.com/SdReum/classmood-cli/internal/modules/activity/port/in"
	"github.com/SdReum/classmood-cli/internal/modules/analysis/domain"
	analysisdto "github.com/SdReum/classmood-cli/internal/modules/analysis/dto"
	analysisin "github.com/SdReum/classmood-cli/internal/modules/analysis/port/in"
	"github.com/SdReum/classmood-cli/internal/modules/analysis/service"
	insightsdto "github.com/SdReum/classmood-cli/internal/modules/insights/dto"
	insightsin "github.com/SdReum/classmood-cli/internal/modules/insights/port/in"
	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"
)

type Interactor struct {
	svc      *service.AnalysisService
	insights insightsin.Usecase
	activity activityin.Usecase
}

func NewInteractor(svc *service.AnalysisService, insights insightsin.Usecase, activity activityin.Usecase) analysisin.Usecase {
	return &Interactor{svc: svc, insights: insights, activity: activity}
}

func (i *Interactor) Analyze(ctx context.Context, input analysisdto.AnalyzeInput) (analysisdto.AnalyzeOutput, error) {
	if input.FileID <= 0 {
		return analysisdto.AnalyzeOutput{}, fmt.Errorf("%w: file id is required", apperrors.ErrInvalidInput)
	}
	points, err := i.svc.Fetch(ctx, input.FileID)
	if err != nil {
		return analysisdto.AnalyzeOutput{}, err
	}

	out := analysisdto.AnalyzeOutput{FileID: input.FileID}
	summary, ok := domain.Summarize(points)
	if ok {
		out.Points = summary.Points
		out.Min = summary.MinValue
		out.Max = summary.MaxValue
		out.Mean = summary.MeanValue
		if i.insights != nil {
			if err := i.insights.Record(ctx, insightsdto.RecordInput{
				FileID: input.FileID,
				Points: summary.Points,
				Min:    summary.MinValue,
				Max:    summary.MaxValue,
				Mean:   summary.MeanValue,
			}); err != nil {
				return out, err
			}
		}
	}
	i.record(ctx, fmt.Sprintf("file %d (%d points)", input.FileID, out.Points))
	return out, nil
}

func (i *Interactor) Series(ctx context.Context, fileID int64) ([]analysisdto.PointOutput, error) {
	if fileID <= 0 {
		return nil, fmt.Errorf("%w: file id is required", apperrors.ErrInvalidInput)
	}
	points, err := i.svc.Fetch(ctx, fileID)
	if err != nil {
		return nil, err
	}
	out := make([]analysisdto.PointOutput, 0, len(points))
	for _, p := range points {
		out = append(out, analysisdto.PointOutput{T: p.T, Value: p.Value})
	}
	return out, nil
}

func (i *Interactor) Chart(ctx context.Context, input analysisdto.ChartInput) (analysisdto.ChartOutput, error) {
	if input.FileID <= 0 {
		return analysisdto.ChartOutput{}, fmt.Errorf("%w: file id is required", apperrors.ErrInvalidInput)
	}
	points, err := i.svc.Fetch(ctx, input.FileID)
	if err != nil {
		return analysisdto.ChartOutput{}, err
	}
	plot, ok := domain.BuildPlot(points, layoutFor(input.Width, input.Height))
	if !ok {
		return analysisdto.ChartOutput{}, nil
	}
	return analysisdto.ChartOutput{Plot: plot, Points: len(points)}, nil
}

// Export writes nothing for an empty series and returns an empty path.
func (i *Interactor) Export(ctx context.Context, input analysisdto.ExportInput) (analysisdto.ExportOutput, error) {
	if input.FileID <= 0 {
		return analysisdto.ExportOutput{}, fmt.Errorf("%w: file id is required", apperrors.ErrInvalidInput)
	}
	points, err := i.svc.Fetch(ctx, input.FileID)
	if err != nil {
		return analysisdto.ExportOutput{}, err
	}
	plot, ok := domain.BuildPlot(points, layoutFor(input.Width, input.Height))
	if !ok {
		return analysisdto.ExportOutput{}, nil
	}
	path, err := i.svc.Export(ctx, plot, input.FileID, input.Path)
	if err != nil {
		return analysisdto.ExportOutput{}, err
	}
	return analysisdto.ExportOutput{Path: path, Points: len(points)}, nil
}

func (i *Interactor) record(ctx context.Context, detail string) {
	if i.activity == nil {
		return
	}
	_ = i.activity.Record(ctx, activitydto.RecordInput{Kind: "analyze", Detail: detail})
}

func layoutFor(width, height int) domain.Layout {
	layout := domain.DefaultLayout()
	if width > 0 && height > 0 {
		layout.Width = width
		layout.Height = height
	}
	return layout
}
