package out

import (
	"context"
	"io"

	"github.com/SdReum/classmood-cli/internal/modules/media/domain"
)

// RemoteStore is the backend's file surface. Implementations resolve
// the bearer token themselves and refuse to call out without one.
type RemoteStore interface {
	Upload(ctx context.Context, paths []string) ([]domain.UploadResult, error)
	List(ctx context.Context) ([]domain.File, error)
	Delete(ctx context.Context, id int64) error
	Download(ctx context.Context, id int64) (io.ReadCloser, string, error)
}

// TokenSource hands out the stored bearer token, or ErrNoSession.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// ListCache is the local projection of the last successful listing, so
// the files view has something to show while offline.
type ListCache interface {
	Replace(ctx context.Context, files []domain.File) error
	Files(ctx context.Context) ([]domain.File, error)
}

type Previewer interface {
	Preview(ctx context.Context, path string) (domain.Preview, error)
}

type Launcher interface {
	Open(ctx context.Context, path string) error
}
