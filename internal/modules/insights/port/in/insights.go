package in

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/insights/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) error
	Top(ctx context.Context, input dto.TopInput) ([]dto.SummaryOutput, error)
	ForFile(ctx context.Context, fileID int64) (dto.SummaryOutput, error)
}
