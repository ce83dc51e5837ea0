package out

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/analysis/domain"
	analysisout "github.com/SdReum/classmood-cli/internal/modules/analysis/port/out"
	mediaout "github.com/SdReum/classmood-cli/internal/modules/media/port/out"
	"github.com/SdReum/classmood-cli/internal/platform/api"
)

type HTTPSeriesSource struct {
	client *api.Client
	tokens mediaout.TokenSource
}

func NewHTTPSeriesSource(client *api.Client, tokens mediaout.TokenSource) analysisout.SeriesSource {
	return &HTTPSeriesSource{client: client, tokens: tokens}
}

func (s *HTTPSeriesSource) Fetch(ctx context.Context, fileID int64) ([]domain.Point, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	series, err := s.client.Analyze(ctx, token, fileID)
	if err != nil {
		return nil, err
	}
	points := make([]domain.Point, 0, len(series))
	for _, p := range series {
		points = append(points, domain.Point{T: p.T, Value: p.Value})
	}
	return points, nil
}
