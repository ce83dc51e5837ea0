package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SdReum/classmood-cli/internal/modules/activity/domain"
	activitydto "github.com/SdReum/classmood-cli/internal/modules/activity/dto"
	"github.com/SdReum/classmood-cli/internal/modules/activity/service"
	"github.com/SdReum/classmood-cli/internal/modules/activity/usecase"
	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"
)

type fakeLog struct {
	entries []domain.Entry
}

func (f *fakeLog) Append(_ context.Context, entry domain.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLog) Tail(_ context.Context, limit int) ([]domain.Entry, error) {
	if limit <= 0 || limit > len(f.entries) {
		return f.entries, nil
	}
	return f.entries[len(f.entries)-limit:], nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixedID struct{ value string }

func (g fixedID) New() string { return g.value }

func TestRecordStampsEntry(t *testing.T) {
	t.Parallel()

	log := &fakeLog{}
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	svc := service.NewActivityService(fixedClock{now: now}, fixedID{value: "abc123"}, log)
	uc := usecase.NewInteractor(svc)

	if err := uc.Record(context.Background(), activitydto.RecordInput{Kind: "upload", Detail: "lecture-03.pdf"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(log.entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(log.entries))
	}
	entry := log.entries[0]
	if entry.ID != "abc123" || entry.Kind != domain.KindUpload || !entry.OccurredAt.Equal(now) {
		t.Fatalf("unexpected entry %+v", entry)
	}
}

func TestRecordRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	svc := service.NewActivityService(fixedClock{now: time.Now()}, fixedID{value: "x"}, &fakeLog{})
	uc := usecase.NewInteractor(svc)

	err := uc.Record(context.Background(), activitydto.RecordInput{Kind: "sneeze"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestTailMapsEntries(t *testing.T) {
	t.Parallel()

	log := &fakeLog{entries: []domain.Entry{
		{ID: "1", Kind: domain.KindLogin, OccurredAt: time.Now().UTC()},
		{ID: "2", Kind: domain.KindDelete, Detail: "file 9", OccurredAt: time.Now().UTC()},
	}}
	svc := service.NewActivityService(fixedClock{now: time.Now()}, fixedID{value: "x"}, log)
	uc := usecase.NewInteractor(svc)

	out, err := uc.Tail(context.Background(), activitydto.TailInput{Limit: 10})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(out) != 2 || out[1].Kind != "delete" || out[1].Detail != "file 9" {
		t.Fatalf("unexpected tail %+v", out)
	}
}
