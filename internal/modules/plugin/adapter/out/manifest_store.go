package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SdReum/classmood-cli/internal/modules/plugin/domain"
	pluginout "github.com/SdReum/classmood-cli/internal/modules/plugin/port/out"
)

// FileManifestStore reads plugin registrations from
// <dataDir>/plugins/plugins.json. Relative binary paths resolve
// against the data dir, so a data dir can be moved wholesale.
type FileManifestStore struct {
	dataDir string
	path    string
}

func NewFileManifestStore(dataDir string) pluginout.ManifestStore {
	return &FileManifestStore{dataDir: dataDir, path: filepath.Join(dataDir, "plugins", "plugins.json")}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read plugin manifest store: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode plugin manifests: %w", err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(s.dataDir, manifests[i].Binary))
		}
	}
	return manifests, nil
}
