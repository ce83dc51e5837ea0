package in

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/media/dto"
)

type Usecase interface {
	Upload(ctx context.Context, input dto.UploadInput) (dto.UploadOutput, error)
	List(ctx context.Context) ([]dto.FileOutput, error)
	CachedList(ctx context.Context) ([]dto.FileOutput, error)
	Delete(ctx context.Context, input dto.DeleteInput) (dto.DeleteOutput, error)
	Download(ctx context.Context, input dto.DownloadInput) (dto.DownloadOutput, error)
	Open(ctx context.Context, input dto.OpenInput) (dto.OpenOutput, error)
	Preview(ctx context.Context, input dto.PreviewInput) (dto.PreviewOutput, error)
}
