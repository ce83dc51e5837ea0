package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	activitydto "github.com/SdReum/classmood-cli/internal/modules/activity/dto"
	adapter "github.com/SdReum/classmood-cli/internal/modules/analysis/adapter/out"
	"github.com/SdReum/classmood-cli/internal/modules/analysis/domain"
	analysisdto "github.com/SdReum/classmood-cli/internal/modules/analysis/dto"
	"github.com/SdReum/classmood-cli/internal/modules/analysis/service"
	"github.com/SdReum/classmood-cli/internal/modules/analysis/usecase"
	insightsdto "github.com/SdReum/classmood-cli/internal/modules/insights/dto"
	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"
)

type fakeSource struct {
	points []domain.Point
	err    error
	calls  int
}

func (f *fakeSource) Fetch(context.Context, int64) ([]domain.Point, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.points, nil
}

type fakeInsights struct {
	records []insightsdto.RecordInput
	err     error
}

func (f *fakeInsights) Record(_ context.Context, input insightsdto.RecordInput) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, input)
	return nil
}

func (f *fakeInsights) Top(context.Context, insightsdto.TopInput) ([]insightsdto.SummaryOutput, error) {
	return nil, nil
}

func (f *fakeInsights) ForFile(context.Context, int64) (insightsdto.SummaryOutput, error) {
	return insightsdto.SummaryOutput{}, nil
}

type fakeActivity struct {
	kinds []string
}

func (f *fakeActivity) Record(_ context.Context, input activitydto.RecordInput) error {
	f.kinds = append(f.kinds, input.Kind)
	return nil
}

func (f *fakeActivity) Tail(context.Context, activitydto.TailInput) ([]activitydto.EntryOutput, error) {
	return nil, nil
}

func sampleSeries() []domain.Point {
	return []domain.Point{
		{T: 0, Value: 0.2},
		{T: 5, Value: 0.8},
		{T: 10, Value: 0.5},
	}
}

func TestAnalyzeRecordsDigest(t *testing.T) {
	t.Parallel()

	source := &fakeSource{points: sampleSeries()}
	insights := &fakeInsights{}
	activity := &fakeActivity{}
	svc := service.NewAnalysisService(source, adapter.NewPNGRenderer(), t.TempDir())
	uc := usecase.NewInteractor(svc, insights, activity)

	out, err := uc.Analyze(context.Background(), analysisdto.AnalyzeInput{FileID: 7})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if out.Points != 3 || out.Min != 0.2 || out.Max != 0.8 {
		t.Fatalf("out = %+v", out)
	}
	if len(insights.records) != 1 {
		t.Fatalf("insight records = %d, want 1", len(insights.records))
	}
	rec := insights.records[0]
	if rec.FileID != 7 || rec.Points != 3 || rec.Mean != out.Mean {
		t.Fatalf("recorded digest = %+v", rec)
	}
	if len(activity.kinds) != 1 || activity.kinds[0] != "analyze" {
		t.Fatalf("activity kinds = %v", activity.kinds)
	}
}

func TestAnalyzeEmptySeriesSkipsInsights(t *testing.T) {
	t.Parallel()

	insights := &fakeInsights{}
	svc := service.NewAnalysisService(&fakeSource{}, adapter.NewPNGRenderer(), t.TempDir())
	uc := usecase.NewInteractor(svc, insights, &fakeActivity{})

	out, err := uc.Analyze(context.Background(), analysisdto.AnalyzeInput{FileID: 9})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if out.Points != 0 {
		t.Fatalf("Points = %d, want 0", out.Points)
	}
	if len(insights.records) != 0 {
		t.Fatalf("insight records = %d, want none for an empty series", len(insights.records))
	}
}

func TestAnalyzeSurfacesInsightsFailure(t *testing.T) {
	t.Parallel()

	insights := &fakeInsights{err: fmt.Errorf("disk full")}
	svc := service.NewAnalysisService(&fakeSource{points: sampleSeries()}, adapter.NewPNGRenderer(), t.TempDir())
	uc := usecase.NewInteractor(svc, insights, &fakeActivity{})

	out, err := uc.Analyze(context.Background(), analysisdto.AnalyzeInput{FileID: 7})
	if err == nil {
		t.Fatal("expected the store failure to surface")
	}
	if out.Points != 3 {
		t.Fatalf("Points = %d, want the computed summary alongside the error", out.Points)
	}
}

func TestAnalyzeValidatesID(t *testing.T) {
	t.Parallel()

	source := &fakeSource{}
	svc := service.NewAnalysisService(source, adapter.NewPNGRenderer(), t.TempDir())
	uc := usecase.NewInteractor(svc, &fakeInsights{}, &fakeActivity{})

	if _, err := uc.Analyze(context.Background(), analysisdto.AnalyzeInput{FileID: 0}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if source.calls != 0 {
		t.Fatalf("fetches = %d, want 0", source.calls)
	}
}

func TestChartBuildsPlotWithDefaultLayout(t *testing.T) {
	t.Parallel()

	svc := service.NewAnalysisService(&fakeSource{points: []domain.Point{{T: 0, Value: 0}, {T: 10, Value: 1}}}, adapter.NewPNGRenderer(), t.TempDir())
	uc := usecase.NewInteractor(svc, &fakeInsights{}, &fakeActivity{})

	out, err := uc.Chart(context.Background(), analysisdto.ChartInput{FileID: 4})
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if out.Points != 2 {
		t.Fatalf("Points = %d, want 2", out.Points)
	}
	if out.Plot.Layout != domain.DefaultLayout() {
		t.Fatalf("layout = %+v, want default", out.Plot.Layout)
	}
	if out.Plot.Polyline[1] != (domain.Pixel{X: 660, Y: 40}) {
		t.Fatalf("last point = %+v", out.Plot.Polyline[1])
	}
}

func TestChartEmptySeriesHasNoPlot(t *testing.T) {
	t.Parallel()

	svc := service.NewAnalysisService(&fakeSource{}, adapter.NewPNGRenderer(), t.TempDir())
	uc := usecase.NewInteractor(svc, &fakeInsights{}, &fakeActivity{})

	out, err := uc.Chart(context.Background(), analysisdto.ChartInput{FileID: 4})
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if out.Points != 0 || len(out.Plot.Polyline) != 0 {
		t.Fatalf("out = %+v, want no plot", out)
	}
}

func TestExportWritesPNGToDefaultPath(t *testing.T) {
	t.Parallel()

	chartsDir := t.TempDir()
	svc := service.NewAnalysisService(&fakeSource{points: sampleSeries()}, adapter.NewPNGRenderer(), chartsDir)
	uc := usecase.NewInteractor(svc, &fakeInsights{}, &fakeActivity{})

	out, err := uc.Export(context.Background(), analysisdto.ExportInput{FileID: 5})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	want := filepath.Join(chartsDir, "engagement-5.png")
	if out.Path != want {
		t.Fatalf("Path = %q, want %q", out.Path, want)
	}
	if _, err := os.Stat(out.Path); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
}

func TestExportEmptySeriesWritesNothing(t *testing.T) {
	t.Parallel()

	chartsDir := t.TempDir()
	svc := service.NewAnalysisService(&fakeSource{}, adapter.NewPNGRenderer(), chartsDir)
	uc := usecase.NewInteractor(svc, &fakeInsights{}, &fakeActivity{})

	out, err := uc.Export(context.Background(), analysisdto.ExportInput{FileID: 5})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if out.Path != "" {
		t.Fatalf("Path = %q, want empty", out.Path)
	}
	entries, err := os.ReadDir(chartsDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("charts dir has %d entries, want 0", len(entries))
	}
}
