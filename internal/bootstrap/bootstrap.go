package bootstrap

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	activityinadapter "github.com/SdReum/classmood-cli/internal/modules/activity/adapter/in"
	activityoutadapter "github.com/SdReum/classmood-cli/internal/modules/activity/adapter/out"
	activityservice "github.com/SdReum/classmood-cli/internal/modules/activity/service"
	activityusecase "github.com/SdReum/classmood-cli/internal/modules/activity/usecase"
	analysisinadapter "github.com/SdReum/classmood-cli/internal/modules/analysis/adapter/in"
	analysisoutadapter "github.com/SdReum/classmood-cli/internal/modules/analysis/adapter/out"
	analysisservice "github.com/SdReum/classmood-cli/internal/modules/analysis/service"
	analysisusecase "github.com/SdReum/classmood-cli/internal/modules/analysis/usecase"
	insightsinadapter "github.com/SdReum/classmood-cli/internal/modules/insights/adapter/in"
	insightsoutadapter "github.com/SdReum/classmood-cli/internal/modules/insights/adapter/out"
	insightsservice "github.com/SdReum/classmood-cli/internal/modules/insights/service"
	insightsusecase "github.com/SdReum/classmood-cli/internal/modules/insights/usecase"
	mediainadapter "github.com/SdReum/classmood-cli/internal/modules/media/adapter/in"
	mediaoutadapter "github.com/SdReum/classmood-cli/internal/modules/media/adapter/out"
	mediaservice "github.com/SdReum/classmood-cli/internal/modules/media/service"
	mediausecase "github.com/SdReum/classmood-cli/internal/modules/media/usecase"
	plugininadapter "github.com/SdReum/classmood-cli/internal/modules/plugin/adapter/in"
	pluginoutadapter "github.com/SdReum/classmood-cli/internal/modules/plugin/adapter/out"
	pluginservice "github.com/SdReum/classmood-cli/internal/modules/plugin/service"
	pluginusecase "github.com/SdReum/classmood-cli/internal/modules/plugin/usecase"
	sessioninadapter "github.com/SdReum/classmood-cli/internal/modules/session/adapter/in"
	sessionoutadapter "github.com/SdReum/classmood-cli/internal/modules/session/adapter/out"
	sessionservice "github.com/SdReum/classmood-cli/internal/modules/session/service"
	sessionusecase "github.com/SdReum/classmood-cli/internal/modules/session/usecase"
	"github.com/SdReum/classmood-cli/internal/platform/api"
	"github.com/SdReum/classmood-cli/internal/platform/clock"
	"github.com/SdReum/classmood-cli/internal/platform/config"
	"github.com/SdReum/classmood-cli/internal/platform/id"
	uiapp "github.com/SdReum/classmood-cli/internal/ui/app"
)

type App struct {
	SessionCLI  sessioninadapter.CLIHandler
	MediaCLI    mediainadapter.CLIHandler
	AnalysisCLI analysisinadapter.CLIHandler
	InsightsCLI insightsinadapter.CLIHandler
	ActivityCLI activityinadapter.CLIHandler
	PluginCLI   plugininadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}
	client := api.NewClient(cfg.ServerURL, cfg.HTTPTimeout)

	activityUC := activityusecase.NewInteractor(activityservice.NewActivityService(
		clk, ids, activityoutadapter.NewFileActivityLog(cfg.DataDir),
	))

	summaryStore, err := insightsoutadapter.NewSQLiteSummaryStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new summary store: %w", err)
	}
	insightsUC := insightsusecase.NewInteractor(insightsservice.NewInsightsService(clk, summaryStore))

	credStore := sessionoutadapter.NewFileCredentialStore(cfg.DataDir)
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewGuardService(
			sessionoutadapter.NewAPIBootProbe(client),
			sessionoutadapter.NewAPITokenValidator(client),
		),
		sessionoutadapter.NewHTTPAuthGateway(client),
		credStore,
		activityUC,
	)

	tokens := mediaoutadapter.NewSessionTokenSource(credStore)
	listCache, err := mediaoutadapter.NewSQLiteListCache(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new list cache: %w", err)
	}
	mediaUC := mediausecase.NewInteractor(
		mediaservice.NewMediaService(
			mediaoutadapter.NewHTTPMediaStore(client, tokens),
			listCache,
			filepath.Join(cfg.DataDir, "downloads"),
		),
		mediaoutadapter.NewLocalPreviewer(),
		mediaoutadapter.NewOSLauncher(),
		activityUC,
		filepath.Join(cfg.DataDir, "cache"),
	)

	analysisUC := analysisusecase.NewInteractor(
		analysisservice.NewAnalysisService(
			analysisoutadapter.NewHTTPSeriesSource(client, tokens),
			analysisoutadapter.NewPNGRenderer(),
			filepath.Join(cfg.DataDir, "charts"),
		),
		insightsUC,
		activityUC,
	)

	pluginUC := pluginusecase.NewInteractor(
		pluginservice.NewPluginService(
			pluginoutadapter.NewFileManifestStore(cfg.DataDir),
			pluginoutadapter.NewGRPCHost(),
			cfg.DataDir,
		),
		analysisUC,
		activityUC,
	)

	return &App{
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		MediaCLI:    mediainadapter.NewCLIHandler(mediaUC),
		AnalysisCLI: analysisinadapter.NewCLIHandler(analysisUC),
		InsightsCLI: insightsinadapter.NewCLIHandler(insightsUC),
		ActivityCLI: activityinadapter.NewCLIHandler(activityUC),
		PluginCLI:   plugininadapter.NewCLIHandler(pluginUC),
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(
		app.SessionCLI,
		app.MediaCLI,
		app.AnalysisCLI,
		app.InsightsCLI,
		app.ActivityCLI,
		app.PluginCLI,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
