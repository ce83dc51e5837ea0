package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/SdReum/classmood-cli/internal/modules/media/domain"
	mediaout "github.com/SdReum/classmood-cli/internal/modules/media/port/out"
	"github.com/SdReum/classmood-cli/internal/platform/slug"
)

type MediaService struct {
	remote       mediaout.RemoteStore
	cache        mediaout.ListCache
	downloadsDir string
}

func NewMediaService(remote mediaout.RemoteStore, cache mediaout.ListCache, downloadsDir string) *MediaService {
	return &MediaService{remote: remote, cache: cache, downloadsDir: downloadsDir}
}

func (s *MediaService) Upload(ctx context.Context, paths []string) ([]domain.UploadResult, error) {
	return s.remote.Upload(ctx, paths)
}

// Refresh fetches the listing, orders it newest first and mirrors it
// into the local cache. A cache write failure does not fail the listing.
func (s *MediaService) Refresh(ctx context.Context) ([]domain.File, error) {
	files, err := s.remote.List(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortNewestFirst(files)
	if s.cache != nil {
		_ = s.cache.Replace(ctx, files)
	}
	return files, nil
}

func (s *MediaService) Cached(ctx context.Context) ([]domain.File, error) {
	if s.cache == nil {
		return []domain.File{}, nil
	}
	return s.cache.Files(ctx)
}

func (s *MediaService) Delete(ctx context.Context, id int64) error {
	return s.remote.Delete(ctx, id)
}

// Download writes the file into dir (the configured downloads dir when
// empty) under a sanitized name and returns the final path.
func (s *MediaService) Download(ctx context.Context, id int64, dir string) (string, error) {
	if dir == "" {
		dir = s.downloadsDir
	}
	body, serverName, err := s.remote.Download(ctx, id)
	if err != nil {
		return "", err
	}
	defer body.Close()

	name := slug.Filename(serverName)
	if serverName == "" {
		name = fmt.Sprintf("file-%d", id)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create downloads dir: %w", err)
	}
	path := filepath.Join(dir, name)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, body); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
