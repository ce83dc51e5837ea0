package usecase_test

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	activitydto "github.com/SdReum/classmood-cli/internal/modules/activity/dto"
	"github.com/SdReum/classmood-cli/internal/modules/media/domain"
	mediadto "github.com/SdReum/classmood-cli/internal/modules/media/dto"
	"github.com/SdReum/classmood-cli/internal/modules/media/service"
	"github.com/SdReum/classmood-cli/internal/modules/media/usecase"
	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"
)

type fakeRemote struct {
	files        []domain.File
	listCalls    int
	listErr      error
	deleteCalls  int
	deleteErr    error
	uploadCalls  int
	downloadBody string
	downloadName string
}

func (f *fakeRemote) Upload(_ context.Context, paths []string) ([]domain.UploadResult, error) {
	f.uploadCalls++
	out := make([]domain.UploadResult, 0, len(paths))
	for _, p := range paths {
		out = append(out, domain.UploadResult{Filename: p, StoredPath: "uploads/" + p})
	}
	return out, nil
}

func (f *fakeRemote) List(context.Context) ([]domain.File, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.File(nil), f.files...), nil
}

func (f *fakeRemote) Delete(context.Context, int64) error {
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeRemote) Download(context.Context, int64) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader(f.downloadBody)), f.downloadName, nil
}

type fakeCache struct {
	replaced   [][]domain.File
	replaceErr error
	files      []domain.File
}

func (f *fakeCache) Replace(_ context.Context, files []domain.File) error {
	f.replaced = append(f.replaced, files)
	return f.replaceErr
}

func (f *fakeCache) Files(context.Context) ([]domain.File, error) {
	return f.files, nil
}

type fakeLauncher struct {
	opened []string
}

func (f *fakeLauncher) Open(_ context.Context, path string) error {
	f.opened = append(f.opened, path)
	return nil
}

type fakePreviewer struct {
	preview domain.Preview
}

func (f *fakePreviewer) Preview(context.Context, string) (domain.Preview, error) {
	return f.preview, nil
}

type fakeActivity struct {
	kinds []string
}

func (f *fakeActivity) Record(_ context.Context, input activitydto.RecordInput) error {
	f.kinds = append(f.kinds, input.Kind)
	return nil
}

func (f *fakeActivity) Tail(context.Context, activitydto.TailInput) ([]activitydto.EntryOutput, error) {
	return nil, nil
}

func sampleFiles() []domain.File {
	return []domain.File{
		{ID: 1, Filename: "old.pdf", UploadedAt: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)},
		{ID: 3, Filename: "new.pdf", UploadedAt: time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)},
		{ID: 2, Filename: "mid.pdf", UploadedAt: time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC)},
	}
}

func TestDeleteConfirmedRefreshesExactlyOnce(t *testing.T) {
	t.Parallel()
	remote := &fakeRemote{files: sampleFiles()}
	activity := &fakeActivity{}
	svc := service.NewMediaService(remote, &fakeCache{}, t.TempDir())
	uc := usecase.NewInteractor(svc, nil, nil, activity, t.TempDir())

	out, err := uc.Delete(context.Background(), mediadto.DeleteInput{ID: 3, Confirmed: true})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !out.Deleted || out.Aborted {
		t.Fatalf("unexpected output flags %+v", out)
	}
	if remote.deleteCalls != 1 {
		t.Fatalf("deleteCalls = %d, want 1", remote.deleteCalls)
	}
	if remote.listCalls != 1 {
		t.Fatalf("listCalls = %d, want exactly 1 refresh", remote.listCalls)
	}
	if len(out.Files) != 3 {
		t.Fatalf("len(Files) = %d, want the refreshed list", len(out.Files))
	}
	if len(activity.kinds) != 1 || activity.kinds[0] != "delete" {
		t.Fatalf("activity kinds = %v, want [delete]", activity.kinds)
	}
}

func TestDeleteFailureStillRefreshesOnce(t *testing.T) {
	t.Parallel()
	remote := &fakeRemote{files: sampleFiles(), deleteErr: errors.New("404: File not found")}
	activity := &fakeActivity{}
	svc := service.NewMediaService(remote, &fakeCache{}, t.TempDir())
	uc := usecase.NewInteractor(svc, nil, nil, activity, t.TempDir())

	out, err := uc.Delete(context.Background(), mediadto.DeleteInput{ID: 99, Confirmed: true})
	if err == nil {
		t.Fatal("expected the delete error to surface")
	}
	if out.Deleted {
		t.Fatal("Deleted reported true for a failed delete")
	}
	if remote.listCalls != 1 {
		t.Fatalf("listCalls = %d, want exactly 1 refresh even on failure", remote.listCalls)
	}
	if len(out.Files) != 3 {
		t.Fatalf("len(Files) = %d, want the refreshed list alongside the error", len(out.Files))
	}
	if len(activity.kinds) != 0 {
		t.Fatalf("activity recorded %v for a failed delete", activity.kinds)
	}
}

func TestDeleteUnconfirmedAbortsWithoutNetwork(t *testing.T) {
	t.Parallel()
	remote := &fakeRemote{files: sampleFiles()}
	svc := service.NewMediaService(remote, &fakeCache{}, t.TempDir())
	uc := usecase.NewInteractor(svc, nil, nil, nil, t.TempDir())

	out, err := uc.Delete(context.Background(), mediadto.DeleteInput{ID: 3})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !out.Aborted || out.Deleted {
		t.Fatalf("unexpected output flags %+v", out)
	}
	if remote.deleteCalls != 0 || remote.listCalls != 0 {
		t.Fatalf("unconfirmed delete touched the backend: deletes=%d lists=%d", remote.deleteCalls, remote.listCalls)
	}
}

func TestListSortsNewestFirstAndCaches(t *testing.T) {
	t.Parallel()
	remote := &fakeRemote{files: sampleFiles()}
	cache := &fakeCache{}
	svc := service.NewMediaService(remote, cache, t.TempDir())
	uc := usecase.NewInteractor(svc, nil, nil, nil, t.TempDir())

	files, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("len(files) = %d, want 3", len(files))
	}
	if files[0].ID != 3 || files[1].ID != 2 || files[2].ID != 1 {
		t.Fatalf("order = %d,%d,%d, want newest first", files[0].ID, files[1].ID, files[2].ID)
	}
	if len(cache.replaced) != 1 || len(cache.replaced[0]) != 3 {
		t.Fatalf("cache not refreshed: %v", cache.replaced)
	}
}

func TestListCacheFailureIsNonFatal(t *testing.T) {
	t.Parallel()
	remote := &fakeRemote{files: sampleFiles()}
	cache := &fakeCache{replaceErr: errors.New("disk full")}
	svc := service.NewMediaService(remote, cache, t.TempDir())
	uc := usecase.NewInteractor(svc, nil, nil, nil, t.TempDir())

	files, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("len(files) = %d, want 3", len(files))
	}
}

func TestUploadRejectsEmptySelection(t *testing.T) {
	t.Parallel()
	svc := service.NewMediaService(&fakeRemote{}, &fakeCache{}, t.TempDir())
	uc := usecase.NewInteractor(svc, nil, nil, nil, t.TempDir())

	_, err := uc.Upload(context.Background(), mediadto.UploadInput{})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestUploadRecordsActivity(t *testing.T) {
	t.Parallel()
	remote := &fakeRemote{}
	activity := &fakeActivity{}
	svc := service.NewMediaService(remote, &fakeCache{}, t.TempDir())
	uc := usecase.NewInteractor(svc, nil, nil, activity, t.TempDir())

	out, err := uc.Upload(context.Background(), mediadto.UploadInput{Paths: []string{"a.txt", "b.txt"}})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if len(out.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2", len(out.Files))
	}
	if len(activity.kinds) != 1 || activity.kinds[0] != "upload" {
		t.Fatalf("activity kinds = %v, want [upload]", activity.kinds)
	}
}

func TestOpenDownloadsAndLaunches(t *testing.T) {
	t.Parallel()
	remote := &fakeRemote{downloadBody: "engagement data", downloadName: "Lecture 3 (final).PDF"}
	launcher := &fakeLauncher{}
	downloads := t.TempDir()
	svc := service.NewMediaService(remote, &fakeCache{}, downloads)
	uc := usecase.NewInteractor(svc, nil, launcher, nil, t.TempDir())

	out, err := uc.Open(context.Background(), mediadto.OpenInput{ID: 3})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(launcher.opened) != 1 || launcher.opened[0] != out.Path {
		t.Fatalf("launcher opened %v, want [%s]", launcher.opened, out.Path)
	}
	if !strings.HasSuffix(out.Path, "lecture-3-final.pdf") {
		t.Fatalf("path = %s, want a slugged filename", out.Path)
	}
	payload, err := os.ReadFile(out.Path)
	if err != nil {
		t.Fatalf("read download: %v", err)
	}
	if string(payload) != "engagement data" {
		t.Fatalf("payload = %q", payload)
	}
}

func TestPreviewUsesDownloadedFile(t *testing.T) {
	t.Parallel()
	remote := &fakeRemote{downloadBody: "plain text", downloadName: "notes.txt"}
	previewer := &fakePreviewer{preview: domain.Preview{Kind: domain.PreviewText, Excerpt: "plain text"}}
	svc := service.NewMediaService(remote, &fakeCache{}, t.TempDir())
	uc := usecase.NewInteractor(svc, previewer, nil, nil, t.TempDir())

	out, err := uc.Preview(context.Background(), mediadto.PreviewInput{ID: 2})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if out.Kind != "text" || out.Excerpt != "plain text" {
		t.Fatalf("unexpected preview %+v", out)
	}
}
