package providerservice

import (
	"context"
	"log/slog"

	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	providerdb "github.com/raynzz/eventdesk/app/modules/provider/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/eventbus"
	"github.com/raynzz/eventdesk/pkg/events"
	"github.com/raynzz/eventdesk/pkg/observability"
	"github.com/raynzz/eventdesk/pkg/validate"
	"go.opentelemetry.io/otel/trace"
)

// ProviderService implements the Service interface.
type ProviderService struct {
	repo      providerdb.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
	telemetry observability.Telemetry
}

// NewProviderService creates a new ProviderService.
func NewProviderService(
	repo providerdb.Repository,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *ProviderService {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.Noop{}
	}
	return &ProviderService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		telemetry: observability.Telemetry{
			Service:  "ProviderService",
			Logger:   logger,
			Tracer:   tracer,
			Metrics:  metrics,
			Expected: IsClientError,
		},
	}
}

func (s *ProviderService) ListProviders(ctx context.Context, filter providerdomain.ProviderFilter) ([]providerdomain.Provider, error) {
	return observability.Run(ctx, s.telemetry, "ListProviders", filter.Search, func(ctx context.Context) ([]providerdomain.Provider, error) {
		if filter.Status != "" {
			st, err := providerdomain.ParseStatus(string(filter.Status))
			if err != nil {
				return nil, err
			}
			filter.Status = st
		}
		return s.repo.ListProviders(ctx, filter.Query())
	})
}

func (s *ProviderService) GetProvider(ctx context.Context, id directus.ID) (*providerdomain.ProviderDetail, error) {
	return observability.Run(ctx, s.telemetry, "GetProvider", id.String(), func(ctx context.Context) (*providerdomain.ProviderDetail, error) {
		p, err := s.repo.GetProvider(ctx, id)
		if err != nil {
			return nil, err
		}
		members, err := s.repo.ListTeamMembers(ctx, teamQuery(id))
		if err != nil {
			return nil, err
		}
		return &providerdomain.ProviderDetail{Provider: *p, TeamMembers: members}, nil
	})
}

func (s *ProviderService) CreateProvider(ctx context.Context, in providerdomain.ProviderInput) (*providerdomain.Provider, error) {
	return observability.Run(ctx, s.telemetry, "CreateProvider", in.Name, func(ctx context.Context) (*providerdomain.Provider, error) {
		if err := validate.Struct(in); err != nil {
			return nil, err
		}
		st, err := providerdomain.ParseStatus(string(in.Status))
		if err != nil {
			return nil, err
		}
		in.Status = st

		p, err := s.repo.CreateProvider(ctx, in)
		if err != nil {
			return nil, err
		}
		eventbus.Notify(ctx, s.publisher, s.logger, events.ProviderCreatedV1, events.ProviderCreatedPayloadV1{
			ProviderID: p.ID.String(),
			Name:       p.Name,
		})
		return p, nil
	})
}

func (s *ProviderService) UpdateProvider(ctx context.Context, id directus.ID, patch providerdomain.ProviderPatch) (*providerdomain.Provider, error) {
	return observability.Run(ctx, s.telemetry, "UpdateProvider", id.String(), func(ctx context.Context) (*providerdomain.Provider, error) {
		if err := validate.Struct(patch); err != nil {
			return nil, err
		}
		if patch.Status != nil {
			st, err := providerdomain.ParseStatus(string(*patch.Status))
			if err != nil {
				return nil, err
			}
			patch.Status = &st
		}
		return s.repo.UpdateProvider(ctx, id, patch)
	})
}

func (s *ProviderService) DeleteProvider(ctx context.Context, id directus.ID) error {
	_, err := observability.Run(ctx, s.telemetry, "DeleteProvider", id.String(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.DeleteProvider(ctx, id)
	})
	return err
}

func (s *ProviderService) ListTeamMembers(ctx context.Context, providerID directus.ID) ([]providerdomain.TeamMember, error) {
	return observability.Run(ctx, s.telemetry, "ListTeamMembers", providerID.String(), func(ctx context.Context) ([]providerdomain.TeamMember, error) {
		if _, err := s.repo.GetProvider(ctx, providerID); err != nil {
			return nil, err
		}
		return s.repo.ListTeamMembers(ctx, teamQuery(providerID))
	})
}

func (s *ProviderService) GetTeamMember(ctx context.Context, id directus.ID) (*providerdomain.TeamMember, error) {
	return observability.Run(ctx, s.telemetry, "GetTeamMember", id.String(), func(ctx context.Context) (*providerdomain.TeamMember, error) {
		return s.repo.GetTeamMember(ctx, id)
	})
}

func (s *ProviderService) AddTeamMember(ctx context.Context, in providerdomain.TeamMemberInput) (*providerdomain.TeamMember, error) {
	return observability.Run(ctx, s.telemetry, "AddTeamMember", in.ProviderID.String(), func(ctx context.Context) (*providerdomain.TeamMember, error) {
		if err := validate.Struct(in); err != nil {
			return nil, err
		}
		if _, err := s.repo.GetProvider(ctx, in.ProviderID); err != nil {
			return nil, err
		}

		m, err := s.repo.CreateTeamMember(ctx, in)
		if err != nil {
			return nil, err
		}
		eventbus.Notify(ctx, s.publisher, s.logger, events.TeamMemberAddedV1, events.TeamMemberAddedPayloadV1{
			TeamMemberID: m.ID.String(),
			ProviderID:   in.ProviderID.String(),
			FullName:     m.FullName(),
		})
		return m, nil
	})
}

func (s *ProviderService) UpdateTeamMember(ctx context.Context, id directus.ID, patch providerdomain.TeamMemberPatch) (*providerdomain.TeamMember, error) {
	return observability.Run(ctx, s.telemetry, "UpdateTeamMember", id.String(), func(ctx context.Context) (*providerdomain.TeamMember, error) {
		if err := validate.Struct(patch); err != nil {
			return nil, err
		}
		return s.repo.UpdateTeamMember(ctx, id, patch)
	})
}

func (s *ProviderService) RemoveTeamMember(ctx context.Context, id directus.ID) error {
	_, err := observability.Run(ctx, s.telemetry, "RemoveTeamMember", id.String(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.DeleteTeamMember(ctx, id)
	})
	return err
}

func teamQuery(providerID directus.ID) directus.Query {
	return directus.Query{
		Filter: directus.Eq("provider_id", providerID),
		Sort:   []string{"last_name", "first_name"},
		Limit:  directus.LimitAll,
	}
}
