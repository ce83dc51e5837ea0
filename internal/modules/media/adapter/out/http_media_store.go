package out

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/SdReum/classmood-cli/internal/modules/media/domain"
	mediaout "github.com/SdReum/classmood-cli/internal/modules/media/port/out"
	"github.com/SdReum/classmood-cli/internal/platform/api"
)

// HTTPMediaStore talks to the backend's /media endpoints. The bearer
// token is resolved per call, so no request ever leaves without one.
type HTTPMediaStore struct {
	client *api.Client
	tokens mediaout.TokenSource
}

func NewHTTPMediaStore(client *api.Client, tokens mediaout.TokenSource) mediaout.RemoteStore {
	return &HTTPMediaStore{client: client, tokens: tokens}
}

func (s *HTTPMediaStore) Upload(ctx context.Context, paths []string) ([]domain.UploadResult, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	files := make([]api.UploadFile, 0, len(paths))
	handles := make([]*os.File, 0, len(paths))
	defer func() {
		for _, h := range handles {
			_ = h.Close()
		}
	}()
	for _, path := range paths {
		handle, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		handles = append(handles, handle)
		files = append(files, api.UploadFile{Name: filepath.Base(path), Reader: handle})
	}

	results, err := s.client.Upload(ctx, token, files)
	if err != nil {
		return nil, err
	}
	out := make([]domain.UploadResult, 0, len(results))
	for _, r := range results {
		out = append(out, domain.UploadResult{Filename: r.Filename, StoredPath: r.StoredPath})
	}
	return out, nil
}

func (s *HTTPMediaStore) List(ctx context.Context) ([]domain.File, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.client.ListFiles(ctx, token)
	if err != nil {
		return nil, err
	}
	files := make([]domain.File, 0, len(records))
	for _, r := range records {
		files = append(files, domain.File{ID: r.ID, Filename: r.Filename, UploadedAt: r.UploadedAt})
	}
	return files, nil
}

func (s *HTTPMediaStore) Delete(ctx context.Context, id int64) error {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return err
	}
	return s.client.DeleteFile(ctx, token, id)
}

func (s *HTTPMediaStore) Download(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, "", err
	}
	return s.client.Download(ctx, token, id)
}
