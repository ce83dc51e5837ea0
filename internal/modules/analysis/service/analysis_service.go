package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SdReum/classmood-cli/internal/modules/analysis/domain"
	analysisout "github.com/SdReum/classmood-cli/internal/modules/analysis/port/out"
)

type AnalysisService struct {
	source    analysisout.SeriesSource
	renderer  analysisout.Renderer
	chartsDir string
}

func NewAnalysisService(source analysisout.SeriesSource, renderer analysisout.Renderer, chartsDir string) *AnalysisService {
	return &AnalysisService{source: source, renderer: renderer, chartsDir: chartsDir}
}

func (s *AnalysisService) Fetch(ctx context.Context, fileID int64) ([]domain.Point, error) {
	return s.source.Fetch(ctx, fileID)
}

// Export renders the plot to path, or to <chartsDir>/engagement-<id>.png
// when path is empty. It returns the path actually written.
func (s *AnalysisService) Export(ctx context.Context, plot domain.Plot, fileID int64, path string) (string, error) {
	if path == "" {
		path = filepath.Join(s.chartsDir, fmt.Sprintf("engagement-%d.png", fileID))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	if err := s.renderer.RenderPNG(ctx, plot, path); err != nil {
		return "", err
	}
	return path, nil
}
