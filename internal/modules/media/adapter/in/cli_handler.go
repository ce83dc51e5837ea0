package in

import (
	"context"

	mediadto "github.com/SdReum/classmood-cli/internal/modules/media/dto"
	mediain "github.com/SdReum/classmood-cli/internal/modules/media/port/in"
)

type CLIHandler struct {
	usecase mediain.Usecase
}

func NewCLIHandler(usecase mediain.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Upload(ctx context.Context, paths []string) (mediadto.UploadOutput, error) {
	return h.usecase.Upload(ctx, mediadto.UploadInput{Paths: paths})
}

func (h CLIHandler) List(ctx context.Context, cached bool) ([]mediadto.FileOutput, error) {
	if cached {
		return h.usecase.CachedList(ctx)
	}
	return h.usecase.List(ctx)
}

func (h CLIHandler) Delete(ctx context.Context, id int64, confirmed bool) (mediadto.DeleteOutput, error) {
	return h.usecase.Delete(ctx, mediadto.DeleteInput{ID: id, Confirmed: confirmed})
}

func (h CLIHandler) Download(ctx context.Context, id int64, dir string) (mediadto.DownloadOutput, error) {
	return h.usecase.Download(ctx, mediadto.DownloadInput{ID: id, Dir: dir})
}

func (h CLIHandler) Open(ctx context.Context, id int64) (mediadto.OpenOutput, error) {
	return h.usecase.Open(ctx, mediadto.OpenInput{ID: id})
}

func (h CLIHandler) Preview(ctx context.Context, id int64) (mediadto.PreviewOutput, error) {
	return h.usecase.Preview(ctx, mediadto.PreviewInput{ID: id})
}
