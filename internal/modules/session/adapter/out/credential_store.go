package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SdReum/classmood-cli/internal/modules/session/domain"
	sessionout "github.com/SdReum/classmood-cli/internal/modules/session/port/out"
	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"
)

type FileCredentialStore struct {
	path string
}

func NewFileCredentialStore(dataDir string) sessionout.CredentialStore {
	return &FileCredentialStore{path: filepath.Join(dataDir, "session.json")}
}

func (s *FileCredentialStore) Save(_ context.Context, creds domain.Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	payload, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	// The file carries a bearer token, keep it owner-only.
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *FileCredentialStore) Load(_ context.Context) (domain.Credentials, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Credentials{}, apperrors.ErrNoSession
		}
		return domain.Credentials{}, fmt.Errorf("read session: %w", err)
	}
	creds := domain.Credentials{}
	if err := json.Unmarshal(payload, &creds); err != nil {
		return domain.Credentials{}, fmt.Errorf("decode session: %w", err)
	}
	if creds == (domain.Credentials{}) {
		return domain.Credentials{}, apperrors.ErrNoSession
	}
	return creds, nil
}

func (s *FileCredentialStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
