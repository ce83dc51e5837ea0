package in

import (
	"context"

	activitydto "github.com/SdReum/classmood-cli/internal/modules/activity/dto"
	activityin "github.com/SdReum/classmood-cli/internal/modules/activity/port/in"
)

type CLIHandler struct {
	usecase activityin.Usecase
}

func NewCLIHandler(usecase activityin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Tail(ctx context.Context, limit int) ([]activitydto.EntryOutput, error) {
	return h.usecase.Tail(ctx, activitydto.TailInput{Limit: limit})
}
