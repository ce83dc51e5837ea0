package out

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/analysis/domain"
)

// SeriesSource fetches the engagement series the backend computed for
// one uploaded file. Implementations resolve the bearer token
// themselves.
type SeriesSource interface {
	Fetch(ctx context.Context, fileID int64) ([]domain.Point, error)
}

// Renderer rasterizes a plot to a PNG file at path.
type Renderer interface {
	RenderPNG(ctx context.Context, plot domain.Plot, path string) error
}
