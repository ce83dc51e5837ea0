package usecase

import (
	"context"
	"fmt"

	"github.com/SdReum/classmood-cli/internal/modules/activity/domain"
	activitydto "github.com/SdReum/classmood-cli/internal/modules/activity/dto"
	activityin "github.com/SdReum/classmood-cli/internal/modules/activity/port/in"
	"github.com/SdReum/classmood-cli/internal/modules/activity/service"
	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"
)

type Interactor struct {
	svc *service.ActivityService
}

func NewInteractor(svc *service.ActivityService) activityin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Record(ctx context.Context, input activitydto.RecordInput) error {
	kind := domain.Kind(input.Kind)
	if err := kind.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	_, err := i.svc.Record(ctx, kind, input.Detail)
	return err
}

func (i *Interactor) Tail(ctx context.Context, input activitydto.TailInput) ([]activitydto.EntryOutput, error) {
	entries, err := i.svc.Tail(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]activitydto.EntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, activitydto.EntryOutput{
			ID:         entry.ID,
			Kind:       string(entry.Kind),
			Detail:     entry.Detail,
			OccurredAt: entry.OccurredAt,
		})
	}
	return out, nil
}
