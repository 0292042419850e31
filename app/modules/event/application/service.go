package eventservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	eventdb "github.com/raynzz/eventdesk/app/modules/event/infrastructure/repositories"
	eventtime "github.com/raynzz/eventdesk/app/modules/event/time_utils"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/eventbus"
	"github.com/raynzz/eventdesk/pkg/events"
	"github.com/raynzz/eventdesk/pkg/observability"
	"github.com/raynzz/eventdesk/pkg/validate"
	"go.opentelemetry.io/otel/trace"
)

const dateMessage = `must be a date such as 2026-11-02, 2026-11-02T18:00:00Z or "next friday 9am"`

// EventService implements the Service interface.
type EventService struct {
	repo         eventdb.Repository
	providers    ProviderLookup
	requirements RequirementLookup
	dates        eventtime.Parser
	publisher    eventbus.Publisher
	logger       *slog.Logger
	telemetry    observability.Telemetry
	now          func() time.Time
}

// NewEventService creates a new EventService. A nil dates parser resolves
// natural-language dates in UTC against the wall clock.
func NewEventService(
	repo eventdb.Repository,
	providers ProviderLookup,
	requirements RequirementLookup,
	dates eventtime.Parser,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.Noop{}
	}
	if dates == nil {
		dates = eventtime.NewTimeParser(time.UTC, eventtime.SystemClock{})
	}
	return &EventService{
		repo:         repo,
		providers:    providers,
		requirements: requirements,
		dates:        dates,
		publisher:    publisher,
		logger:       logger,
		telemetry: observability.Telemetry{
			Service:  "EventService",
			Logger:   logger,
			Tracer:   tracer,
			Metrics:  metrics,
			Expected: IsClientError,
		},
		now: time.Now,
	}
}

// ------------------------
// Events
// ------------------------

func (s *EventService) ListEvents(ctx context.Context, filter eventdomain.EventFilter) ([]eventdomain.Event, error) {
	return observability.Run(ctx, s.telemetry, "ListEvents", filter.Search, func(ctx context.Context) ([]eventdomain.Event, error) {
		if filter.Status != "" {
			st, err := eventdomain.ParseStatus(string(filter.Status))
			if err != nil {
				return nil, err
			}
			filter.Status = st
		}
		return s.repo.ListEvents(ctx, filter.Query(s.now()))
	})
}

func (s *EventService) GetEvent(ctx context.Context, id directus.ID) (*eventdomain.EventDetail, error) {
	return observability.Run(ctx, s.telemetry, "GetEvent", id.String(), func(ctx context.Context) (*eventdomain.EventDetail, error) {
		e, err := s.repo.GetEvent(ctx, id)
		if err != nil {
			return nil, err
		}
		detail := &eventdomain.EventDetail{Event: *e, Requirements: []documentdomain.Requirement{}}

		if detail.Participants, err = s.repo.ListParticipants(ctx, byEvent(id, "id")); err != nil {
			return nil, err
		}
		if detail.TeamMembers, err = s.repo.ListTeamMembers(ctx, byEvent(id, "last_name", "first_name")); err != nil {
			return nil, err
		}
		if detail.Documents, err = s.repo.ListEventDocuments(ctx, byEvent(id, "name")); err != nil {
			return nil, err
		}
		if s.requirements != nil {
			if detail.Requirements, err = s.requirements.ApplicableRequirements(ctx, id); err != nil {
				return nil, err
			}
		}
		return detail, nil
	})
}

func (s *EventService) CreateEvent(ctx context.Context, in eventdomain.EventInput) (*eventdomain.Event, error) {
	return observability.Run(ctx, s.telemetry, "CreateEvent", in.Name, func(ctx context.Context) (*eventdomain.Event, error) {
		if err := validate.Struct(in); err != nil {
			return nil, err
		}
		status, err := eventdomain.ParseStatus(string(in.Status))
		if err != nil {
			return nil, err
		}
		start, err := s.parseDate("start_date", in.StartDate)
		if err != nil {
			return nil, err
		}
		var end *time.Time
		if in.EndDate != "" {
			if end, err = s.parseDate("end_date", in.EndDate); err != nil {
				return nil, err
			}
		}
		if err := checkOrder(start, end); err != nil {
			return nil, err
		}

		changes := eventdomain.EventChanges{
			Name:        &in.Name,
			Description: optional(in.Description),
			Location:    optional(in.Location),
			StartDate:   start,
			EndDate:     end,
			Status:      &status,
			Organizer:   optional(in.Organizer),
		}
		if in.Capacity > 0 {
			changes.Capacity = &in.Capacity
		}

		e, err := s.repo.CreateEvent(ctx, changes)
		if err != nil {
			return nil, err
		}
		eventbus.Notify(ctx, s.publisher, s.logger, events.EventCreatedV1, eventPayload(e))
		return e, nil
	})
}

func (s *EventService) UpdateEvent(ctx context.Context, id directus.ID, patch eventdomain.EventPatch) (*eventdomain.Event, error) {
	return observability.Run(ctx, s.telemetry, "UpdateEvent", id.String(), func(ctx context.Context) (*eventdomain.Event, error) {
		if err := validate.Struct(patch); err != nil {
			return nil, err
		}
		changes := eventdomain.EventChanges{
			Name:        patch.Name,
			Description: patch.Description,
			Location:    patch.Location,
			Capacity:    patch.Capacity,
			Organizer:   patch.Organizer,
		}
		if patch.Status != nil {
			st, err := eventdomain.ParseStatus(string(*patch.Status))
			if err != nil {
				return nil, err
			}
			changes.Status = &st
		}

		current, err := s.repo.GetEvent(ctx, id)
		if err != nil {
			return nil, err
		}
		start, end := current.StartDate, current.EndDate
		if patch.StartDate != nil {
			if start, err = s.parseDate("start_date", *patch.StartDate); err != nil {
				return nil, err
			}
			changes.StartDate = start
		}
		if patch.EndDate != nil && *patch.EndDate != "" {
			if end, err = s.parseDate("end_date", *patch.EndDate); err != nil {
				return nil, err
			}
			changes.EndDate = end
		}
		if err := checkOrder(start, end); err != nil {
			return nil, err
		}

		e, err := s.repo.UpdateEvent(ctx, id, changes)
		if err != nil {
			return nil, err
		}
		eventbus.Notify(ctx, s.publisher, s.logger, events.EventUpdatedV1, eventPayload(e))
		return e, nil
	})
}

func (s *EventService) DeleteEvent(ctx context.Context, id directus.ID) error {
	_, err := observability.Run(ctx, s.telemetry, "DeleteEvent", id.String(), func(ctx context.Context) (struct{}, error) {
		if err := s.repo.DeleteEvent(ctx, id); err != nil {
			return struct{}{}, err
		}
		eventbus.Notify(ctx, s.publisher, s.logger, events.EventDeletedV1, events.EventChangedPayloadV1{EventID: id.String()})
		return struct{}{}, nil
	})
	return err
}

// ------------------------
// Participants
// ------------------------

func (s *EventService) AssignProvider(ctx context.Context, eventID, providerID directus.ID) (*eventdomain.Participant, error) {
	return observability.Run(ctx, s.telemetry, "AssignProvider", eventID.String(), func(ctx context.Context) (*eventdomain.Participant, error) {
		if providerID.IsZero() {
			return nil, validate.Field("provider_id", "is required")
		}
		if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
			return nil, err
		}
		if _, err := s.providers.GetProvider(ctx, providerID); err != nil {
			return nil, err
		}
		assigned, err := s.isParticipant(ctx, eventID, providerID)
		if err != nil {
			return nil, err
		}
		if assigned {
			return nil, fmt.Errorf("provider %s, event %s: %w", providerID, eventID, ErrAlreadyAssigned)
		}

		pending := eventdomain.ReviewPending
		p, err := s.repo.CreateParticipant(ctx, eventdomain.ParticipantChanges{
			EventID:    eventID,
			ProviderID: providerID,
			Status:     &pending,
		})
		if err != nil {
			return nil, err
		}
		eventbus.Notify(ctx, s.publisher, s.logger, events.ParticipantAssignedV1, events.ParticipantPayloadV1{
			ParticipantID: p.ID.String(),
			EventID:       eventID.String(),
			ProviderID:    providerID.String(),
			Status:        string(p.Status),
		})
		return p, nil
	})
}

func (s *EventService) ListParticipants(ctx context.Context, eventID directus.ID) ([]eventdomain.Participant, error) {
	return observability.Run(ctx, s.telemetry, "ListParticipants", eventID.String(), func(ctx context.Context) ([]eventdomain.Participant, error) {
		if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
			return nil, err
		}
		return s.repo.ListParticipants(ctx, byEvent(eventID, "id"))
	})
}

func (s *EventService) SetParticipantStatus(ctx context.Context, id directus.ID, status eventdomain.ReviewStatus, note string) (*eventdomain.Participant, error) {
	return observability.Run(ctx, s.telemetry, "SetParticipantStatus", id.String(), func(ctx context.Context) (*eventdomain.Participant, error) {
		if status == "" {
			return nil, validate.Field("status", "is required")
		}
		st, err := eventdomain.ParseParticipantStatus(string(status))
		if err != nil {
			return nil, err
		}
		current, err := s.repo.GetParticipant(ctx, id)
		if err != nil {
			return nil, err
		}

		changes := eventdomain.ParticipantChanges{Status: &st}
		if note != "" {
			changes.Notes = &note
		}
		p, err := s.repo.UpdateParticipant(ctx, id, changes)
		if err != nil {
			return nil, err
		}
		eventbus.Notify(ctx, s.publisher, s.logger, events.ParticipantStatusChangedV1, events.ParticipantPayloadV1{
			ParticipantID:  id.String(),
			EventID:        current.EventID.String(),
			ProviderID:     current.ProviderID.String(),
			Status:         string(st),
			PreviousStatus: string(current.Status),
			Note:           note,
		})
		return p, nil
	})
}

func (s *EventService) RemoveParticipant(ctx context.Context, id directus.ID) error {
	_, err := observability.Run(ctx, s.telemetry, "RemoveParticipant", id.String(), func(ctx context.Context) (struct{}, error) {
		p, err := s.repo.GetParticipant(ctx, id)
		if err != nil {
			return struct{}{}, err
		}
		members, err := s.repo.ListTeamMembers(ctx, directus.Query{
			Filter: directus.And(directus.Eq("event_id", p.EventID), directus.Eq("provider_id", p.ProviderID)),
			Limit:  directus.LimitAll,
		})
		if err != nil {
			return struct{}{}, err
		}
		for _, m := range members {
			if _, err := s.repo.SetTeamMemberEvent(ctx, m.ID, ""); err != nil {
				return struct{}{}, fmt.Errorf("detach team member %s: %w", m.ID, err)
			}
		}
		return struct{}{}, s.repo.DeleteParticipant(ctx, id)
	})
	return err
}

// ------------------------
// Team members
// ------------------------

func (s *EventService) AttachTeamMember(ctx context.Context, eventID, memberID directus.ID) (*providerdomain.TeamMember, error) {
	return observability.Run(ctx, s.telemetry, "AttachTeamMember", eventID.String(), func(ctx context.Context) (*providerdomain.TeamMember, error) {
		if memberID.IsZero() {
			return nil, validate.Field("team_member_id", "is required")
		}
		if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
			return nil, err
		}
		m, err := s.providers.GetTeamMember(ctx, memberID)
		if err != nil {
			return nil, err
		}
		switch {
		case m.EventID == eventID:
			return m, nil
		case !m.EventID.IsZero():
			return nil, fmt.Errorf("team member %s, event %s: %w", memberID, m.EventID, ErrAttachedElsewhere)
		}

		assigned, err := s.isParticipant(ctx, eventID, m.ProviderID)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, fmt.Errorf("provider %s, event %s: %w", m.ProviderID, eventID, ErrNotParticipant)
		}
		return s.repo.SetTeamMemberEvent(ctx, memberID, eventID)
	})
}

func (s *EventService) DetachTeamMember(ctx context.Context, eventID, memberID directus.ID) (*providerdomain.TeamMember, error) {
	return observability.Run(ctx, s.telemetry, "DetachTeamMember", eventID.String(), func(ctx context.Context) (*providerdomain.TeamMember, error) {
		m, err := s.providers.GetTeamMember(ctx, memberID)
		if err != nil {
			return nil, err
		}
		if m.EventID != eventID {
			return nil, fmt.Errorf("team member %s, event %s: %w", memberID, eventID, ErrNotAttached)
		}
		return s.repo.SetTeamMemberEvent(ctx, memberID, "")
	})
}

func (s *EventService) ListEventTeamMembers(ctx context.Context, eventID directus.ID) ([]providerdomain.TeamMember, error) {
	return observability.Run(ctx, s.telemetry, "ListEventTeamMembers", eventID.String(), func(ctx context.Context) ([]providerdomain.TeamMember, error) {
		if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
			return nil, err
		}
		return s.repo.ListTeamMembers(ctx, byEvent(eventID, "last_name", "first_name"))
	})
}

// ------------------------
// Event documents
// ------------------------

func (s *EventService) ListEventDocuments(ctx context.Context, eventID directus.ID) ([]eventdomain.EventDocument, error) {
	return observability.Run(ctx, s.telemetry, "ListEventDocuments", eventID.String(), func(ctx context.Context) ([]eventdomain.EventDocument, error) {
		if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
			return nil, err
		}
		return s.repo.ListEventDocuments(ctx, byEvent(eventID, "name"))
	})
}

func (s *EventService) AddEventDocument(ctx context.Context, in eventdomain.EventDocumentInput) (*eventdomain.EventDocument, error) {
	return observability.Run(ctx, s.telemetry, "AddEventDocument", in.EventID.String(), func(ctx context.Context) (*eventdomain.EventDocument, error) {
		if err := validate.Struct(in); err != nil {
			return nil, err
		}
		if _, err := s.repo.GetEvent(ctx, in.EventID); err != nil {
			return nil, err
		}
		in.Status = eventdomain.ReviewPending
		return s.repo.CreateEventDocument(ctx, in)
	})
}

func (s *EventService) SetEventDocumentStatus(ctx context.Context, id directus.ID, status eventdomain.ReviewStatus) (*eventdomain.EventDocument, error) {
	return observability.Run(ctx, s.telemetry, "SetEventDocumentStatus", id.String(), func(ctx context.Context) (*eventdomain.EventDocument, error) {
		if status == "" {
			return nil, validate.Field("status", "is required")
		}
		st, err := eventdomain.ParseDocumentStatus(string(status))
		if err != nil {
			return nil, err
		}
		return s.repo.UpdateEventDocument(ctx, id, struct {
			Status eventdomain.ReviewStatus `json:"status"`
		}{Status: st})
	})
}

// ------------------------
// Helpers
// ------------------------

func (s *EventService) isParticipant(ctx context.Context, eventID, providerID directus.ID) (bool, error) {
	existing, err := s.repo.ListParticipants(ctx, directus.Query{
		Filter: directus.And(directus.Eq("event_id", eventID), directus.Eq("provider_id", providerID)),
		Limit:  1,
	})
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}

func (s *EventService) parseDate(field, raw string) (*time.Time, error) {
	t, err := s.dates.ParseDate(raw)
	if err != nil {
		return nil, validate.Field(field, dateMessage)
	}
	return &t, nil
}

func checkOrder(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return validate.Field("end_date", "must not be before start_date")
	}
	return nil
}

func byEvent(eventID directus.ID, sort ...string) directus.Query {
	return directus.Query{
		Filter: directus.Eq("event_id", eventID),
		Sort:   sort,
		Limit:  directus.LimitAll,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func eventPayload(e *eventdomain.Event) events.EventChangedPayloadV1 {
	return events.EventChangedPayloadV1{
		EventID: e.ID.String(),
		Name:    e.Name,
		Status:  string(e.Status),
	}
}
