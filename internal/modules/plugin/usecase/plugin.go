package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	activitydto "github.com/SdReum/classmood-cli/internal/modules/activity/dto"
	activityin "github.com/SdReum/classmood-cli/internal/modules/activity/port/in"
	analysisdto "github.com/SdReum/classmood-cli/internal/modules/analysis/dto"
	analysisin "github.com/SdReum/classmood-cli/internal/modules/analysis/port/in"
	"github.com/SdReum/classmood-cli/internal/modules/plugin/dto"
	pluginin "github.com/SdReum/classmood-cli/internal/modules/plugin/port/in"
	"github.com/SdReum/classmood-cli/internal/modules/plugin/service"
	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"
)

type Interactor struct {
	svc      *service.PluginService
	analysis analysisin.Usecase
	activity activityin.Usecase
}

func NewInteractor(svc *service.PluginService, analysis analysisin.Usecase, activity activityin.Usecase) pluginin.Usecase {
	return &Interactor{svc: svc, analysis: analysis, activity: activity}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Commands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error) {
	if pluginName == "" {
		return nil, fmt.Errorf("%w: plugin name is required", apperrors.ErrInvalidInput)
	}
	return i.svc.Commands(ctx, pluginName)
}

// Run fetches the file's engagement series, hands it to the command as
// JSON, and journals the execution.
func (i *Interactor) Run(ctx context.Context, input dto.RunInput) (dto.RunOutput, error) {
	if input.PluginName == "" || input.CommandID == "" {
		return dto.RunOutput{}, fmt.Errorf("%w: plugin and command are required", apperrors.ErrInvalidInput)
	}

	inputJSON := ""
	if input.FileID > 0 {
		series, err := i.analysis.Series(ctx, input.FileID)
		if err != nil {
			return dto.RunOutput{}, err
		}
		raw, err := json.Marshal(struct {
			Series []analysisdto.PointOutput `json:"series"`
		}{Series: series})
		if err != nil {
			return dto.RunOutput{}, fmt.Errorf("encode series: %w", err)
		}
		inputJSON = string(raw)
	}

	cwd := input.Dir
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return dto.RunOutput{}, fmt.Errorf("resolve working dir: %w", err)
		}
		cwd = wd
	}

	out, err := i.svc.Run(ctx, input, inputJSON, cwd)
	if err != nil {
		return dto.RunOutput{}, err
	}
	i.record(ctx, fmt.Sprintf("%s/%s", input.PluginName, input.CommandID))
	return out, nil
}

func (i *Interactor) record(ctx context.Context, detail string) {
	if i.activity == nil {
		return
	}
	_ = i.activity.Record(ctx, activitydto.RecordInput{Kind: "plugin", Detail: detail})
}
