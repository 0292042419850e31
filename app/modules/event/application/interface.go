package eventservice

import (
	"context"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// Service defines the event service interface.
type Service interface {
	ListEvents(ctx context.Context, filter eventdomain.EventFilter) ([]eventdomain.Event, error)
	// GetEvent returns the event with its participants, attached team
	// members, documents and applicable requirements.
	GetEvent(ctx context.Context, id directus.ID) (*eventdomain.EventDetail, error)
	CreateEvent(ctx context.Context, in eventdomain.EventInput) (*eventdomain.Event, error)
	UpdateEvent(ctx context.Context, id directus.ID, patch eventdomain.EventPatch) (*eventdomain.Event, error)
	DeleteEvent(ctx context.Context, id directus.ID) error

	AssignProvider(ctx context.Context, eventID, providerID directus.ID) (*eventdomain.Participant, error)
	ListParticipants(ctx context.Context, eventID directus.ID) ([]eventdomain.Participant, error)
	SetParticipantStatus(ctx context.Context, id directus.ID, status eventdomain.ReviewStatus, note string) (*eventdomain.Participant, error)
	// RemoveParticipant deletes the participation and detaches the provider's
	// team members from the event.
	RemoveParticipant(ctx context.Context, id directus.ID) error

	AttachTeamMember(ctx context.Context, eventID, memberID directus.ID) (*providerdomain.TeamMember, error)
	DetachTeamMember(ctx context.Context, eventID, memberID directus.ID) (*providerdomain.TeamMember, error)
	ListEventTeamMembers(ctx context.Context, eventID directus.ID) ([]providerdomain.TeamMember, error)

	ListEventDocuments(ctx context.Context, eventID directus.ID) ([]eventdomain.EventDocument, error)
	AddEventDocument(ctx context.Context, in eventdomain.EventDocumentInput) (*eventdomain.EventDocument, error)
	SetEventDocumentStatus(ctx context.Context, id directus.ID, status eventdomain.ReviewStatus) (*eventdomain.EventDocument, error)
}

// ProviderLookup is the part of the provider service events depend on.
type ProviderLookup interface {
	GetProvider(ctx context.Context, id directus.ID) (*providerdomain.ProviderDetail, error)
	GetTeamMember(ctx context.Context, id directus.ID) (*providerdomain.TeamMember, error)
}

// RequirementLookup is the part of the document service events depend on.
type RequirementLookup interface {
	ApplicableRequirements(ctx context.Context, eventID directus.ID) ([]documentdomain.Requirement, error)
}
