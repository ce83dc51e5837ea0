package out

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/activity/domain"
)

type ActivityLog interface {
	Append(ctx context.Context, entry domain.Entry) error
	Tail(ctx context.Context, limit int) ([]domain.Entry, error)
}
