package dashboardservice

import (
	"context"
	"io"
	"log/slog"
	"time"

	dashboarddomain "github.com/raynzz/eventdesk/app/modules/dashboard/domain"
	dashboarddb "github.com/raynzz/eventdesk/app/modules/dashboard/infrastructure/repositories"
	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/observability"
	"go.opentelemetry.io/otel/trace"
)

// DashboardService implements the Service interface.
type DashboardService struct {
	repo      dashboarddb.Repository
	palette   ChartPalette
	logger    *slog.Logger
	telemetry observability.Telemetry
	now       func() time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	repo dashboarddb.Repository,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		repo:    repo,
		palette: DefaultPalette,
		logger:  logger,
		telemetry: observability.Telemetry{
			Service:  "DashboardService",
			Logger:   logger,
			Tracer:   tracer,
			Metrics:  metrics,
			Expected: directus.IsClientError,
		},
		now: time.Now,
	}
}

func all(fields ...string) directus.Query {
	return directus.Query{Fields: fields, Limit: directus.LimitAll}
}

func (s *DashboardService) Summary(ctx context.Context) (*dashboarddomain.Summary, error) {
	return observability.Run(ctx, s.telemetry, "Summary", "", func(ctx context.Context) (*dashboarddomain.Summary, error) {
		events, err := s.repo.ListEvents(ctx, all("id", "name", "status", "location", "start_date", "end_date"))
		if err != nil {
			return nil, err
		}
		participants, err := s.repo.ListParticipants(ctx, all("id", "status"))
		if err != nil {
			return nil, err
		}
		providers, err := s.repo.ListProviders(ctx, all("id"))
		if err != nil {
			return nil, err
		}
		members, err := s.repo.ListTeamMembers(ctx, all("id"))
		if err != nil {
			return nil, err
		}
		pending, err := s.repo.ListProviderDocuments(ctx, directus.Query{
			Fields: []string{"id"},
			Filter: directus.Eq("status", documentdomain.StatusPending),
			Limit:  directus.LimitAll,
		})
		if err != nil {
			return nil, err
		}

		now := s.now().UTC()
		return &dashboarddomain.Summary{
			Events:               len(events),
			EventsByStatus:       dashboarddomain.CountEvents(events),
			Providers:            len(providers),
			TeamMembers:          len(members),
			Participants:         len(participants),
			ParticipantsByStatus: dashboarddomain.CountParticipants(participants),
			PendingDocuments:     len(pending),
			Upcoming:             dashboarddomain.Upcoming(events, now, dashboarddomain.UpcomingLimit),
			GeneratedAt:          now,
		}, nil
	})
}

func (s *DashboardService) ParticipantStatusChart(ctx context.Context) ([]byte, error) {
	return observability.Run(ctx, s.telemetry, "ParticipantStatusChart", "", func(ctx context.Context) ([]byte, error) {
		participants, err := s.repo.ListParticipants(ctx, all("id", "status"))
		if err != nil {
			return nil, err
		}
		return GenerateParticipantChart(dashboarddomain.CountParticipants(participants), s.palette)
	})
}

func (s *DashboardService) Export(ctx context.Context, w io.Writer) error {
	_, err := observability.Run(ctx, s.telemetry, "Export", "", func(ctx context.Context) (struct{}, error) {
		var data exportData
		var err error
		if data.events, err = s.repo.ListEvents(ctx, directus.Query{Sort: []string{"start_date"}, Limit: directus.LimitAll}); err != nil {
			return struct{}{}, err
		}
		if data.providers, err = s.repo.ListProviders(ctx, directus.Query{Sort: []string{"name"}, Limit: directus.LimitAll}); err != nil {
			return struct{}{}, err
		}
		if data.members, err = s.repo.ListTeamMembers(ctx, directus.Query{Sort: []string{"last_name", "first_name"}, Limit: directus.LimitAll}); err != nil {
			return struct{}{}, err
		}
		if data.participants, err = s.repo.ListParticipants(ctx, directus.Query{Sort: []string{"event_id", "id"}, Limit: directus.LimitAll}); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, writeWorkbook(w, data)
	})
	return err
}
