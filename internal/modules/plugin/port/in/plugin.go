package in

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/plugin/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Commands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error)
	// Run feeds the file's engagement series to the named command and
	// routes it by the kind the plugin declared for that command.
	Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error)
}
