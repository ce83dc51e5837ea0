package usecase_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	activitydto "github.com/SdReum/classmood-cli/internal/modules/activity/dto"
	analysisdto "github.com/SdReum/classmood-cli/internal/modules/analysis/dto"
	"github.com/SdReum/classmood-cli/internal/modules/plugin/domain"
	"github.com/SdReum/classmood-cli/internal/modules/plugin/dto"
	"github.com/SdReum/classmood-cli/internal/modules/plugin/service"
	"github.com/SdReum/classmood-cli/internal/modules/plugin/usecase"
	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"
)

type fakeManifestStore struct {
	manifests []domain.Manifest
}

func (s fakeManifestStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	executed []domain.ExecuteRequest
}

func (h *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (h *fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "smooth", Version: "1"}, nil
}
func (h *fakeHost) ListCommands(context.Context, domain.Manifest) ([]domain.CommandDescriptor, error) {
	return []domain.CommandDescriptor{
		{ID: "moving-average", Kind: domain.CommandKindTransform, TimeoutMS: 1000},
		{ID: "csv-export", Kind: domain.CommandKindExport, TimeoutMS: 1000},
	}, nil
}
func (h *fakeHost) Execute(_ context.Context, _ domain.Manifest, req domain.ExecuteRequest) (domain.ExecuteResult, error) {
	h.executed = append(h.executed, req)
	return domain.ExecuteResult{Stdout: "ok", OutputJSON: `{"series":[]}`, ExitCode: 0}, nil
}

type fakeAnalysis struct {
	series []analysisdto.PointOutput
	err    error
	calls  int
}

func (f *fakeAnalysis) Analyze(context.Context, analysisdto.AnalyzeInput) (analysisdto.AnalyzeOutput, error) {
	return analysisdto.AnalyzeOutput{}, nil
}

func (f *fakeAnalysis) Series(context.Context, int64) ([]analysisdto.PointOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.series, nil
}

func (f *fakeAnalysis) Chart(context.Context, analysisdto.ChartInput) (analysisdto.ChartOutput, error) {
	return analysisdto.ChartOutput{}, nil
}

func (f *fakeAnalysis) Export(context.Context, analysisdto.ExportInput) (analysisdto.ExportOutput, error) {
	return analysisdto.ExportOutput{}, nil
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

func TestUsecaseListDoctorAndCommands(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t)
	host := &fakeHost{}
	uc := usecase.NewInteractor(
		service.NewPluginService(fakeManifestStore{manifests: []domain.Manifest{manifest}}, host, t.TempDir()),
		&fakeAnalysis{}, &fakeActivity{})

	list, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "smooth" {
		t.Fatalf("unexpected list: %+v", list)
	}

	docs, err := uc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("unexpected doctor result: %+v", docs)
	}

	commands, err := uc.Commands(context.Background(), "smooth")
	if err != nil {
		t.Fatalf("commands: %v", err)
	}
	if len(commands) != 2 {
		t.Fatalf("unexpected command count: %d", len(commands))
	}
}

func TestRunFeedsSeriesToCommand(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t)
	host := &fakeHost{}
	analysis := &fakeAnalysis{series: []analysisdto.PointOutput{{T: 0, Value: 0.4}, {T: 1, Value: 0.6}}}
	activity := &fakeActivity{}
	uc := usecase.NewInteractor(
		service.NewPluginService(fakeManifestStore{manifests: []domain.Manifest{manifest}}, host, t.TempDir()),
		analysis, activity)

	out, err := uc.Run(context.Background(), dto.RunInput{PluginName: "smooth", CommandID: "moving-average", FileID: 3, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Kind != "transform" || out.ExitCode != 0 {
		t.Fatalf("out = %+v", out)
	}
	if analysis.calls != 1 {
		t.Fatalf("series fetches = %d, want 1", analysis.calls)
	}
	if len(host.executed) != 1 {
		t.Fatalf("executions = %d, want 1", len(host.executed))
	}
	got := host.executed[0].InputJSON
	if !strings.Contains(got, `"series"`) || !strings.Contains(got, `"value":0.4`) {
		t.Fatalf("input json = %s", got)
	}
	if host.executed[0].Context.FileID != 3 {
		t.Fatalf("context file id = %d, want 3", host.executed[0].Context.FileID)
	}
	if len(activity.kinds) != 1 || activity.kinds[0] != "plugin" {
		t.Fatalf("activity kinds = %v", activity.kinds)
	}
}

func TestRunWithoutFileSkipsSeriesFetch(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t)
	host := &fakeHost{}
	analysis := &fakeAnalysis{}
	uc := usecase.NewInteractor(
		service.NewPluginService(fakeManifestStore{manifests: []domain.Manifest{manifest}}, host, t.TempDir()),
		analysis, &fakeActivity{})

	if _, err := uc.Run(context.Background(), dto.RunInput{PluginName: "smooth", CommandID: "moving-average", Dir: t.TempDir()}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if analysis.calls != 0 {
		t.Fatalf("series fetches = %d, want 0", analysis.calls)
	}
	if host.executed[0].InputJSON != "" {
		t.Fatalf("input json = %q, want empty", host.executed[0].InputJSON)
	}
}

func TestRunValidatesSelection(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(
		service.NewPluginService(fakeManifestStore{}, &fakeHost{}, t.TempDir()),
		&fakeAnalysis{}, &fakeActivity{})

	if _, err := uc.Run(context.Background(), dto.RunInput{CommandID: "moving-average"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if _, err := uc.Commands(context.Background(), ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func manifestWithBinary(t *testing.T) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "plugin-bin")
	if err := os.WriteFile(binPath, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte("binary"))
	return domain.Manifest{
		Name:         "smooth",
		Version:      "1",
		Binary:       binPath,
		SHA256:       hex.EncodeToString(hash[:]),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityTransform, domain.CapabilityExport},
	}
}
