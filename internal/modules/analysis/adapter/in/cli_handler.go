package in

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/analysis/dto"
	analysisin "github.com/SdReum/classmood-cli/internal/modules/analysis/port/in"
)

type CLIHandler struct {
	usecase analysisin.Usecase
}

func NewCLIHandler(usecase analysisin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Analyze(ctx context.Context, fileID int64) (dto.AnalyzeOutput, error) {
	return h.usecase.Analyze(ctx, dto.AnalyzeInput{FileID: fileID})
}

func (h CLIHandler) Chart(ctx context.Context, fileID int64, width, height int) (dto.ChartOutput, error) {
	return h.usecase.Chart(ctx, dto.ChartInput{FileID: fileID, Width: width, Height: height})
}

func (h CLIHandler) Export(ctx context.Context, fileID int64, path string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.ExportInput{FileID: fileID, Path: path})
}
