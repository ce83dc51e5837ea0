package in

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/analysis/dto"
)

type Usecase interface {
	// Analyze fetches the engagement series for a file, records its
	// digest, and returns the summary statistics.
	Analyze(ctx context.Context, input dto.AnalyzeInput) (dto.AnalyzeOutput, error)
	// Series returns the raw samples for consumers that post-process
	// them, like plugins.
	Series(ctx context.Context, fileID int64) ([]dto.PointOutput, error)
	// Chart maps the series onto a plot for on-screen rendering.
	Chart(ctx context.Context, input dto.ChartInput) (dto.ChartOutput, error)
	// Export writes the plot as a PNG file.
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
