package out

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/insights/domain"
)

type SummaryStore interface {
	Upsert(ctx context.Context, summary domain.Summary) error
	Top(ctx context.Context, limit int) ([]domain.Summary, error)
	ForFile(ctx context.Context, fileID int64) (domain.Summary, error)
}
