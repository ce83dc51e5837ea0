package in

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/plugin/dto"
	pluginin "github.com/SdReum/classmood-cli/internal/modules/plugin/port/in"
)

type CLIHandler struct {
	usecase pluginin.Usecase
}

func NewCLIHandler(usecase pluginin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Commands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error) {
	return h.usecase.Commands(ctx, pluginName)
}

func (h CLIHandler) Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error) {
	return h.usecase.Run(ctx, input)
}
