package activityservice

import (
	"context"
	"errors"
	"log/slog"

	activitydomain "github.com/raynzz/eventdesk/app/modules/activity/domain"
	activitydb "github.com/raynzz/eventdesk/app/modules/activity/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/observability"
	"go.opentelemetry.io/otel/trace"
)

// ErrEmptyTopic is returned when recording an entry without a topic.
var ErrEmptyTopic = errors.New("activity entry has no topic")

// ActivityService implements the Service interface.
type ActivityService struct {
	repo      activitydb.Repository
	logger    *slog.Logger
	telemetry observability.Telemetry
}

// NewActivityService creates a new ActivityService.
func NewActivityService(
	repo activitydb.Repository,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *ActivityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityService{
		repo:   repo,
		logger: logger,
		telemetry: observability.Telemetry{
			Service: "ActivityService",
			Logger:  logger,
			Tracer:  tracer,
			Metrics: metrics,
			Expected: func(err error) bool {
				return errors.Is(err, ErrEmptyTopic)
			},
		},
	}
}

func (s *ActivityService) Record(ctx context.Context, e activitydomain.Entry) error {
	_, err := observability.Run(ctx, s.telemetry, "Record", e.Topic, func(ctx context.Context) (struct{}, error) {
		if e.Topic == "" {
			return struct{}{}, ErrEmptyTopic
		}
		if e.Summary == "" {
			e.Summary = activitydomain.Summarize(e.Topic, e.Payload)
		}
		s.repo.Add(e)
		return struct{}{}, nil
	})
	return err
}

// Recent reads memory only, so it skips the operation wrapper.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]activitydomain.Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.repo.Recent(limit), nil
}
