package service

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/activity/domain"
	activityout "github.com/SdReum/classmood-cli/internal/modules/activity/port/out"
	"github.com/SdReum/classmood-cli/internal/platform/clock"
	"github.com/SdReum/classmood-cli/internal/platform/id"
)

type ActivityService struct {
	clock clock.Clock
	idGen id.Generator
	log   activityout.ActivityLog
}

func NewActivityService(clock clock.Clock, idGen id.Generator, log activityout.ActivityLog) *ActivityService {
	return &ActivityService{clock: clock, idGen: idGen, log: log}
}

func (s *ActivityService) Record(ctx context.Context, kind domain.Kind, detail string) (domain.Entry, error) {
	entry := domain.Entry{
		ID:         s.idGen.New(),
		Kind:       kind,
		Detail:     detail,
		OccurredAt: s.clock.Now(),
	}
	if err := entry.Validate(); err != nil {
		return domain.Entry{}, err
	}
	if err := s.log.Append(ctx, entry); err != nil {
		return domain.Entry{}, err
	}
	return entry, nil
}

func (s *ActivityService) Tail(ctx context.Context, limit int) ([]domain.Entry, error) {
	return s.log.Tail(ctx, limit)
}
