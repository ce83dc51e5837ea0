package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/SdReum/classmood-cli/internal/modules/plugin/domain"
	"github.com/SdReum/classmood-cli/internal/modules/plugin/dto"
	"github.com/SdReum/classmood-cli/internal/modules/plugin/service"
)

type fakeStore struct {
	manifests []domain.Manifest
}

func (s fakeStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	commands []domain.CommandDescriptor
	executed []domain.ExecuteRequest
}

func (h *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }
func (h *fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "fake", Version: "1"}, nil
}
func (h *fakeHost) ListCommands(context.Context, domain.Manifest) ([]domain.CommandDescriptor, error) {
	return h.commands, nil
}
func (h *fakeHost) Execute(_ context.Context, _ domain.Manifest, req domain.ExecuteRequest) (domain.ExecuteResult, error) {
	h.executed = append(h.executed, req)
	return domain.ExecuteResult{Stdout: "ok", OutputJSON: `{"series":[]}`, ExitCode: 0}, nil
}

func TestRunRejectsDisabledPlugin(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, false, []domain.Capability{domain.CapabilityTransform})
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, &fakeHost{}, t.TempDir())
	_, err := svc.Run(context.Background(), dto.RunInput{PluginName: manifest.Name, CommandID: "moving-average"}, "", "/tmp")
	if !errors.Is(err, domain.ErrPluginDisabled) {
		t.Fatalf("expected ErrPluginDisabled, got %v", err)
	}
}

func TestRunRejectsMissingCapability(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityTransform})
	host := &fakeHost{commands: []domain.CommandDescriptor{{ID: "csv-export", Kind: domain.CommandKindExport}}}
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, host, t.TempDir())
	_, err := svc.Run(context.Background(), dto.RunInput{PluginName: manifest.Name, CommandID: "csv-export"}, "", "/tmp")
	if !errors.Is(err, domain.ErrCapabilityMissing) {
		t.Fatalf("expected ErrCapabilityMissing, got %v", err)
	}
	if len(host.executed) != 0 {
		t.Fatalf("expected no execution, got %d", len(host.executed))
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityTransform})
	host := &fakeHost{commands: []domain.CommandDescriptor{{ID: "other", Kind: domain.CommandKindTransform}}}
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, host, t.TempDir())
	_, err := svc.Run(context.Background(), dto.RunInput{PluginName: manifest.Name, CommandID: "moving-average"}, "", "/tmp")
	if !errors.Is(err, domain.ErrCommandNotFound) {
		t.Fatalf("expected ErrCommandNotFound, got %v", err)
	}
}

func TestRunRejectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityTransform})
	manifest.SHA256 = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, &fakeHost{}, t.TempDir())
	_, err := svc.Run(context.Background(), dto.RunInput{PluginName: manifest.Name, CommandID: "moving-average"}, "", "/tmp")
	if !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestRunRejectsMalformedInput(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityTransform})
	host := &fakeHost{commands: []domain.CommandDescriptor{{ID: "moving-average", Kind: domain.CommandKindTransform}}}
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, host, t.TempDir())
	_, err := svc.Run(context.Background(), dto.RunInput{PluginName: manifest.Name, CommandID: "moving-average"}, "{broken", "/tmp")
	if err == nil {
		t.Fatalf("expected invalid JSON error")
	}
}

func TestRunRoutesByDeclaredKind(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, []domain.Capability{domain.CapabilityTransform, domain.CapabilityExport})
	host := &fakeHost{commands: []domain.CommandDescriptor{
		{ID: "moving-average", Kind: domain.CommandKindTransform},
		{ID: "csv-export", Kind: domain.CommandKindExport},
	}}
	dataDir := t.TempDir()
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, host, dataDir)

	out, err := svc.Run(context.Background(), dto.RunInput{PluginName: manifest.Name, CommandID: "csv-export", FileID: 4}, `{"series":[]}`, "/tmp")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Kind != "export" {
		t.Fatalf("kind = %q, want export", out.Kind)
	}
	if out.ExitCode != 0 {
		t.Fatalf("unexpected exit code: %d", out.ExitCode)
	}
	if len(host.executed) != 1 {
		t.Fatalf("executions = %d, want 1", len(host.executed))
	}
	req := host.executed[0]
	if req.Context.DataDir != dataDir || req.Context.FileID != 4 || req.Context.Cwd != "/tmp" {
		t.Fatalf("context = %+v", req.Context)
	}
}

func manifestWithBinary(t *testing.T, enabled bool, capabilities []domain.Capability) domain.Manifest {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "plugin-bin")
	if err := os.WriteFile(binPath, []byte("binary"), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte("binary"))
	return domain.Manifest{
		Name:         "demo",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       hex.EncodeToString(hash[:]),
		Enabled:      enabled,
		Capabilities: capabilities,
	}
}
