package in

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/insights/dto"
	insightsin "github.com/SdReum/classmood-cli/internal/modules/insights/port/in"
)

type CLIHandler struct {
	usecase insightsin.Usecase
}

func NewCLIHandler(usecase insightsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Top(ctx context.Context, limit int) ([]dto.SummaryOutput, error) {
	return h.usecase.Top(ctx, dto.TopInput{Limit: limit})
}

func (h CLIHandler) ForFile(ctx context.Context, fileID int64) (dto.SummaryOutput, error) {
	return h.usecase.ForFile(ctx, fileID)
}
