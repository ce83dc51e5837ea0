package in

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/activity/dto"
)

type Usecase interface {
	Record(ctx context.Context, input dto.RecordInput) error
	Tail(ctx context.Context, input dto.TailInput) ([]dto.EntryOutput, error)
}
