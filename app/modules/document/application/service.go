package documentservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	documentdb "github.com/raynzz/eventdesk/app/modules/document/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/eventbus"
	"github.com/raynzz/eventdesk/pkg/events"
	"github.com/raynzz/eventdesk/pkg/observability"
	"github.com/raynzz/eventdesk/pkg/validate"
	"go.opentelemetry.io/otel/trace"
)

// DocumentService implements the Service interface.
type DocumentService struct {
	repo      documentdb.Repository
	providers ProviderLookup
	publisher eventbus.Publisher
	logger    *slog.Logger
	telemetry observability.Telemetry
	now       func() time.Time
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(
	repo documentdb.Repository,
	providers ProviderLookup,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.Noop{}
	}
	return &DocumentService{
		repo:      repo,
		providers: providers,
		publisher: publisher,
		logger:    logger,
		telemetry: observability.Telemetry{
			Service:  "DocumentService",
			Logger:   logger,
			Tracer:   tracer,
			Metrics:  metrics,
			Expected: IsClientError,
		},
		now: time.Now,
	}
}

func (s *DocumentService) ListRequirements(ctx context.Context, filter documentdomain.RequirementFilter) ([]documentdomain.Requirement, error) {
	return observability.Run(ctx, s.telemetry, "ListRequirements", filter.EventID.String(), func(ctx context.Context) ([]documentdomain.Requirement, error) {
		return s.repo.ListRequirements(ctx, filter.Query())
	})
}

func (s *DocumentService) GetRequirement(ctx context.Context, id directus.ID) (*documentdomain.Requirement, error) {
	return observability.Run(ctx, s.telemetry, "GetRequirement", id.String(), func(ctx context.Context) (*documentdomain.Requirement, error) {
		return s.repo.GetRequirement(ctx, id)
	})
}

func (s *DocumentService) CreateRequirement(ctx context.Context, in documentdomain.RequirementInput) (*documentdomain.Requirement, error) {
	return observability.Run(ctx, s.telemetry, "CreateRequirement", in.Name, func(ctx context.Context) (*documentdomain.Requirement, error) {
		if err := validate.Struct(in); err != nil {
			return nil, err
		}
		appliesTo, err := documentdomain.ParseAppliesTo(string(in.AppliesTo))
		if err != nil {
			return nil, err
		}
		in.AppliesTo = appliesTo
		if err := documentdomain.CheckScope(in.IsGlobal, in.EventID); err != nil {
			return nil, err
		}
		return s.repo.CreateRequirement(ctx, in)
	})
}

func (s *DocumentService) UpdateRequirement(ctx context.Context, id directus.ID, patch documentdomain.RequirementPatch) (*documentdomain.Requirement, error) {
	return observability.Run(ctx, s.telemetry, "UpdateRequirement", id.String(), func(ctx context.Context) (*documentdomain.Requirement, error) {
		if err := validate.Struct(patch); err != nil {
			return nil, err
		}
		if patch.AppliesTo != nil {
			appliesTo, err := documentdomain.ParseAppliesTo(string(*patch.AppliesTo))
			if err != nil {
				return nil, err
			}
			patch.AppliesTo = &appliesTo
		}

		current, err := s.repo.GetRequirement(ctx, id)
		if err != nil {
			return nil, err
		}
		// Turning a requirement global drops its event.
		if patch.IsGlobal != nil && *patch.IsGlobal && patch.EventID == nil {
			var none directus.ID
			patch.EventID = &none
		}
		merged := patch.Apply(*current)
		if err := documentdomain.CheckScope(merged.IsGlobal, merged.EventID); err != nil {
			return nil, err
		}
		return s.repo.UpdateRequirement(ctx, id, patch)
	})
}

func (s *DocumentService) DeleteRequirement(ctx context.Context, id directus.ID) error {
	_, err := observability.Run(ctx, s.telemetry, "DeleteRequirement", id.String(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.repo.DeleteRequirement(ctx, id)
	})
	return err
}

func (s *DocumentService) ApplicableRequirements(ctx context.Context, eventID directus.ID) ([]documentdomain.Requirement, error) {
	return observability.Run(ctx, s.telemetry, "ApplicableRequirements", eventID.String(), func(ctx context.Context) ([]documentdomain.Requirement, error) {
		return s.repo.ListRequirements(ctx, documentdomain.RequirementFilter{EventID: eventID}.Query())
	})
}

func (s *DocumentService) SubmitProviderDocument(ctx context.Context, in documentdomain.SubmitInput) (*documentdomain.ProviderDocument, error) {
	return observability.Run(ctx, s.telemetry, "SubmitProviderDocument", in.ProviderID.String(), func(ctx context.Context) (*documentdomain.ProviderDocument, error) {
		if err := validate.Struct(in); err != nil {
			return nil, err
		}
		if _, err := s.providers.GetProvider(ctx, in.ProviderID); err != nil {
			return nil, err
		}
		req, err := s.repo.GetRequirement(ctx, in.RequirementID)
		if err != nil {
			return nil, err
		}

		switch {
		case in.EventID.IsZero() && !req.IsGlobal:
			in.EventID = req.EventID
		case !in.EventID.IsZero() && !req.AppliesToEvent(in.EventID):
			return nil, fmt.Errorf("requirement %s, event %s: %w", req.ID, in.EventID, ErrRequirementMismatch)
		}
		if req.AppliesTo == documentdomain.AppliesToTeamMember && in.TeamMemberID.IsZero() {
			return nil, validate.Field("team_member_id", "is required")
		}
		if !in.TeamMemberID.IsZero() {
			member, err := s.providers.GetTeamMember(ctx, in.TeamMemberID)
			if err != nil {
				return nil, err
			}
			if member.ProviderID != in.ProviderID {
				return nil, fmt.Errorf("team member %s, provider %s: %w", member.ID, in.ProviderID, ErrTeamMemberMismatch)
			}
		}
		in.Status = documentdomain.StatusPending

		doc, err := s.repo.CreateDocument(ctx, in)
		if err != nil {
			return nil, err
		}
		eventbus.Notify(ctx, s.publisher, s.logger, events.DocumentSubmittedV1, documentPayload(doc))
		return doc, nil
	})
}

func (s *DocumentService) ListProviderDocuments(ctx context.Context, providerID directus.ID) ([]documentdomain.ProviderDocument, error) {
	return observability.Run(ctx, s.telemetry, "ListProviderDocuments", providerID.String(), func(ctx context.Context) ([]documentdomain.ProviderDocument, error) {
		if _, err := s.providers.GetProvider(ctx, providerID); err != nil {
			return nil, err
		}
		return s.repo.ListDocuments(ctx, providerDocumentsQuery(providerID))
	})
}

func (s *DocumentService) GetProviderDocument(ctx context.Context, id directus.ID) (*documentdomain.ProviderDocument, error) {
	return observability.Run(ctx, s.telemetry, "GetProviderDocument", id.String(), func(ctx context.Context) (*documentdomain.ProviderDocument, error) {
		return s.repo.GetDocument(ctx, id)
	})
}

func (s *DocumentService) ReviewProviderDocument(ctx context.Context, id directus.ID, status documentdomain.Status, notes string) (*documentdomain.ProviderDocument, error) {
	return observability.Run(ctx, s.telemetry, "ReviewProviderDocument", id.String(), func(ctx context.Context) (*documentdomain.ProviderDocument, error) {
		if status == "" {
			return nil, validate.Field("status", "is required")
		}
		st, err := documentdomain.ParseStatus(string(status))
		if err != nil {
			return nil, err
		}
		if _, err := s.repo.GetDocument(ctx, id); err != nil {
			return nil, err
		}

		now := s.now().UTC()
		review := documentdomain.Review{Status: st, ReviewedAt: &now}
		if notes != "" {
			review.Notes = &notes
		}
		doc, err := s.repo.UpdateDocument(ctx, id, review)
		if err != nil {
			return nil, err
		}
		eventbus.Notify(ctx, s.publisher, s.logger, events.DocumentReviewedV1, documentPayload(doc))
		return doc, nil
	})
}

func (s *DocumentService) Compliance(ctx context.Context, eventID, providerID directus.ID) (*documentdomain.Compliance, error) {
	return observability.Run(ctx, s.telemetry, "Compliance", eventID.String()+"/"+providerID.String(), func(ctx context.Context) (*documentdomain.Compliance, error) {
		if _, err := s.providers.GetProvider(ctx, providerID); err != nil {
			return nil, err
		}
		reqs, err := s.repo.ListRequirements(ctx, documentdomain.RequirementFilter{EventID: eventID}.Query())
		if err != nil {
			return nil, err
		}
		docs, err := s.repo.ListDocuments(ctx, providerDocumentsQuery(providerID))
		if err != nil {
			return nil, err
		}
		c := documentdomain.Evaluate(eventID, providerID, reqs, docs, s.now())
		return &c, nil
	})
}

func providerDocumentsQuery(providerID directus.ID) directus.Query {
	return directus.Query{
		Filter: directus.Eq("provider_id", providerID),
		Sort:   []string{"-date_created"},
		Limit:  directus.LimitAll,
	}
}

func documentPayload(d *documentdomain.ProviderDocument) events.DocumentPayloadV1 {
	return events.DocumentPayloadV1{
		DocumentID:    d.ID.String(),
		ProviderID:    d.ProviderID.String(),
		RequirementID: d.RequirementID.String(),
		Status:        string(d.Status),
	}
}
