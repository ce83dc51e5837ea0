package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	activitydto "github.com/SdReum/classmood-cli/internal/modules/activity/dto"
	activityin "github.com/SdReum/classmood-cli/internal/modules/activity/port/in"
	"github.com/SdReum/classmood-cli/internal/modules/media/domain"
	mediadto "github.com/SdReum/classmood-cli/internal/modules/media/dto"
	mediain "github.com/SdReum/classmood-cli/internal/modules/media/port/in"
	mediaout "github.com/SdReum/classmood-cli/internal/modules/media/port/out"
	"github.com/SdReum/classmood-cli/internal/modules/media/service"
	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"
)

type Interactor struct {
	svc       *service.MediaService
	previewer mediaout.Previewer
	launcher  mediaout.Launcher
	activity  activityin.Usecase
	cacheDir  string
}

func NewInteractor(svc *service.MediaService, previewer mediaout.Previewer, launcher mediaout.Launcher, activity activityin.Usecase, cacheDir string) mediain.Usecase {
	return &Interactor{svc: svc, previewer: previewer, launcher: launcher, activity: activity, cacheDir: cacheDir}
}

func (i *Interactor) Upload(ctx context.Context, input mediadto.UploadInput) (mediadto.UploadOutput, error) {
	if len(input.Paths) == 0 {
		return mediadto.UploadOutput{}, fmt.Errorf("%w: nothing selected for upload", apperrors.ErrInvalidInput)
	}
	results, err := i.svc.Upload(ctx, input.Paths)
	if err != nil {
		return mediadto.UploadOutput{}, err
	}
	i.record(ctx, "upload", uploadDetail(input.Paths))

	out := mediadto.UploadOutput{Files: make([]mediadto.UploadedFileOutput, 0, len(results))}
	for _, r := range results {
		out.Files = append(out.Files, mediadto.UploadedFileOutput{Filename: r.Filename, StoredPath: r.StoredPath})
	}
	return out, nil
}

func (i *Interactor) List(ctx context.Context) ([]mediadto.FileOutput, error) {
	files, err := i.svc.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return mapFiles(files), nil
}

func (i *Interactor) CachedList(ctx context.Context) ([]mediadto.FileOutput, error) {
	files, err := i.svc.Cached(ctx)
	if err != nil {
		return nil, err
	}
	return mapFiles(files), nil
}

// Delete removes a file after explicit confirmation. The listing is
// refreshed exactly once per confirmed attempt, whether or not the
// backend accepted the delete, so the caller's view never goes stale.
func (i *Interactor) Delete(ctx context.Context, input mediadto.DeleteInput) (mediadto.DeleteOutput, error) {
	if input.ID <= 0 {
		return mediadto.DeleteOutput{}, fmt.Errorf("%w: file id is required", apperrors.ErrInvalidInput)
	}
	if !input.Confirmed {
		return mediadto.DeleteOutput{Aborted: true}, nil
	}

	deleteErr := i.svc.Delete(ctx, input.ID)
	files, refreshErr := i.svc.Refresh(ctx)

	out := mediadto.DeleteOutput{Deleted: deleteErr == nil, Files: mapFiles(files)}
	if deleteErr != nil {
		return out, deleteErr
	}
	i.record(ctx, "delete", fmt.Sprintf("file %d", input.ID))
	if refreshErr != nil {
		return out, refreshErr
	}
	return out, nil
}

func (i *Interactor) Download(ctx context.Context, input mediadto.DownloadInput) (mediadto.DownloadOutput, error) {
	if input.ID <= 0 {
		return mediadto.DownloadOutput{}, fmt.Errorf("%w: file id is required", apperrors.ErrInvalidInput)
	}
	path, err := i.svc.Download(ctx, input.ID, input.Dir)
	if err != nil {
		return mediadto.DownloadOutput{}, err
	}
	i.record(ctx, "download", filepath.Base(path))
	return mediadto.DownloadOutput{Path: path}, nil
}

// Open downloads the file and hands it to the desktop.
func (i *Interactor) Open(ctx context.Context, input mediadto.OpenInput) (mediadto.OpenOutput, error) {
	out, err := i.Download(ctx, mediadto.DownloadInput{ID: input.ID})
	if err != nil {
		return mediadto.OpenOutput{}, err
	}
	if i.launcher == nil {
		return mediadto.OpenOutput{}, fmt.Errorf("no external launcher configured")
	}
	if err := i.launcher.Open(ctx, out.Path); err != nil {
		return mediadto.OpenOutput{}, err
	}
	return mediadto.OpenOutput{Path: out.Path}, nil
}

func (i *Interactor) Preview(ctx context.Context, input mediadto.PreviewInput) (mediadto.PreviewOutput, error) {
	if input.ID <= 0 {
		return mediadto.PreviewOutput{}, fmt.Errorf("%w: file id is required", apperrors.ErrInvalidInput)
	}
	if i.previewer == nil {
		return mediadto.PreviewOutput{}, fmt.Errorf("no previewer configured")
	}
	path, err := i.svc.Download(ctx, input.ID, i.cacheDir)
	if err != nil {
		return mediadto.PreviewOutput{}, err
	}
	preview, err := i.previewer.Preview(ctx, path)
	if err != nil {
		return mediadto.PreviewOutput{}, err
	}
	return mediadto.PreviewOutput{
		Kind:      string(preview.Kind),
		PageCount: preview.PageCount,
		Excerpt:   preview.Excerpt,
	}, nil
}

func (i *Interactor) record(ctx context.Context, kind, detail string) {
	if i.activity == nil {
		return
	}
	_ = i.activity.Record(ctx, activitydto.RecordInput{Kind: kind, Detail: detail})
}

func mapFiles(files []domain.File) []mediadto.FileOutput {
	out := make([]mediadto.FileOutput, 0, len(files))
	for _, f := range files {
		out = append(out, mediadto.FileOutput{ID: f.ID, Filename: f.Filename, UploadedAt: f.UploadedAt})
	}
	return out
}

func uploadDetail(paths []string) string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	return strings.Join(names, ", ")
}
