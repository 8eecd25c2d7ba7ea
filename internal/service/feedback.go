package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"feedback-backend/internal/metrics"
	"feedback-backend/internal/models"
	"feedback-backend/internal/notify"
	"feedback-backend/internal/repository"

	"github.com/rs/zerolog"
)

// FeedbackService is the resource manager: it composes validation and
// storage into one CRUD contract and records an operation counter and
// duration for every call. It holds no record state between calls; every
// operation round-trips to storage.
type FeedbackService struct {
	repo     *repository.FeedbackRepo
	metrics  *metrics.Metrics
	notifier notify.Notifier
	logger   zerolog.Logger
	maxLen   int
}

func NewFeedbackService(repo *repository.FeedbackRepo, m *metrics.Metrics, notifier notify.Notifier, logger zerolog.Logger, maxLen int) *FeedbackService {
	return &FeedbackService{
		repo:     repo,
		metrics:  m,
		notifier: notifier,
		logger:   logger,
		maxLen:   maxLen,
	}
}

// CreateFeedback validates the payload and persists a new record.
func (s *FeedbackService) CreateFeedback(ctx context.Context, payload map[string]any) (fb *models.Feedback, err error) {
	defer s.record("create", time.Now(), &err)

	message, err := models.ValidateMessage(payload, s.maxLen)
	if err != nil {
		return nil, err
	}

	fb, err = s.repo.Create(ctx, message)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("feedback_id", fb.ID).Msg("feedback created")
	s.refreshCount(ctx)

	// Notification must not block or fail the request.
	go func() {
		msg := fmt.Sprintf("new feedback #%d: %s", fb.ID, fb.Message)
		if nerr := s.notifier.Publish(context.Background(), msg); nerr != nil {
			s.logger.Error().Err(nerr).Msg("failed to publish notification")
		}
	}()

	return fb, nil
}

// GetFeedback returns the record with the given id.
func (s *FeedbackService) GetFeedback(ctx context.Context, id int64) (fb *models.Feedback, err error) {
	defer s.record("read", time.Now(), &err)
	return s.repo.GetByID(ctx, id)
}

// ListFeedback returns all records, newest first.
func (s *FeedbackService) ListFeedback(ctx context.Context) (fbs []*models.Feedback, err error) {
	defer s.record("list", time.Now(), &err)
	return s.repo.ListAll(ctx)
}

// UpdateFeedback validates the payload and replaces the record's message.
func (s *FeedbackService) UpdateFeedback(ctx context.Context, id int64, payload map[string]any) (fb *models.Feedback, err error) {
	defer s.record("update", time.Now(), &err)

	message, err := models.ValidateMessage(payload, s.maxLen)
	if err != nil {
		return nil, err
	}

	fb, err = s.repo.Update(ctx, id, message)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("feedback_id", fb.ID).Msg("feedback updated")
	return fb, nil
}

// DeleteFeedback removes the record with the given id.
func (s *FeedbackService) DeleteFeedback(ctx context.Context, id int64) (err error) {
	defer s.record("delete", time.Now(), &err)

	if err = s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("feedback_id", id).Msg("feedback deleted")
	s.refreshCount(ctx)
	return nil
}

// Health reports storage reachability and the current record count.
func (s *FeedbackService) Health(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.metrics.RecordError("storage")
		return 0, err
	}
	s.metrics.SetFeedbackCount(count)
	return count, nil
}

// record classifies the outcome of a finished operation and updates the
// operation counter and duration histogram.
func (s *FeedbackService) record(operation string, start time.Time, errp *error) {
	outcome := metrics.OutcomeSuccess
	var verr *models.ValidationError
	switch {
	case *errp == nil:
	case errors.As(*errp, &verr):
		outcome = metrics.OutcomeValidationError
	case errors.Is(*errp, repository.ErrNotFound):
		outcome = metrics.OutcomeNotFound
	default:
		outcome = metrics.OutcomeStorageError
		s.metrics.RecordError("storage")
	}
	s.metrics.RecordOperation(operation, outcome, time.Since(start))
}

// refreshCount updates the feedback_count gauge; failures only log.
func (s *FeedbackService) refreshCount(ctx context.Context) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to refresh feedback count")
		return
	}
	s.metrics.SetFeedbackCount(count)
}
