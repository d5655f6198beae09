package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/pkg/jobs"
)

type activityStore interface {
	Append(entry models.Activity)
	Recent(limit int) []models.Activity
}

// ActivityService feeds the admin activity log. Entries are written by a background
// queue once Start has run and synchronously otherwise.
type ActivityService struct {
	store   activityStore
	queue   *jobs.Queue[models.Activity]
	logger  *zap.Logger
	metrics *MetricsService
	now     func() time.Time
}

// NewActivityService constructs the activity feed.
func NewActivityService(store activityStore, metrics *MetricsService, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{store: store, metrics: metrics, logger: logger, now: time.Now}
}

// Start moves writes onto a worker queue until Stop.
func (s *ActivityService) Start(ctx context.Context, workers, buffer int) {
	s.queue = jobs.New("activity", func(_ context.Context, job jobs.Job[models.Activity]) error {
		s.store.Append(job.Payload)
		return nil
	}, jobs.Config{Workers: workers, BufferSize: buffer, Logger: s.logger})
	s.queue.Start(ctx)
}

// Stop flushes queued entries.
func (s *ActivityService) Stop() {
	if s.queue != nil {
		s.queue.Stop()
	}
}

// Record appends an entry. A full or stopped queue falls back to a direct write.
func (s *ActivityService) Record(kind models.ActivityKind, message, subject, actor string) {
	entry := models.Activity{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Subject:   subject,
		Actor:     actor,
		Icon:      kind.Icon(),
		CreatedAt: s.now().UTC(),
	}
	s.metrics.RecordActivity(kind)
	if s.queue != nil {
		err := s.queue.TryEnqueue(jobs.Job[models.Activity]{ID: entry.ID, Payload: entry})
		if err == nil {
			return
		}
		s.logger.Debug("activity queue unavailable, writing inline", zap.Error(err))
	}
	s.store.Append(entry)
}

// Recent returns the newest entries first.
func (s *ActivityService) Recent(limit int) []models.Activity {
	return s.store.Recent(limit)
}

// ForSubject returns the newest entries concerning one subject.
func (s *ActivityService) ForSubject(subject string, limit int) []models.Activity {
	out := make([]models.Activity, 0)
	for _, entry := range s.store.Recent(0) {
		if entry.Subject != subject {
			continue
		}
		out = append(out, entry)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
