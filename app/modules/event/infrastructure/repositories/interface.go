package eventdb

import (
	"context"

	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// Repository defines the contract for event persistence: events, their
// participants, their documents and the event side of team members.
type Repository interface {
	ListEvents(ctx context.Context, q directus.Query) ([]eventdomain.Event, error)
	GetEvent(ctx context.Context, id directus.ID) (*eventdomain.Event, error)
	CreateEvent(ctx context.Context, in eventdomain.EventChanges) (*eventdomain.Event, error)
	UpdateEvent(ctx context.Context, id directus.ID, patch eventdomain.EventChanges) (*eventdomain.Event, error)
	DeleteEvent(ctx context.Context, id directus.ID) error

	ListParticipants(ctx context.Context, q directus.Query) ([]eventdomain.Participant, error)
	GetParticipant(ctx context.Context, id directus.ID) (*eventdomain.Participant, error)
	CreateParticipant(ctx context.Context, in eventdomain.ParticipantChanges) (*eventdomain.Participant, error)
	UpdateParticipant(ctx context.Context, id directus.ID, patch eventdomain.ParticipantChanges) (*eventdomain.Participant, error)
	DeleteParticipant(ctx context.Context, id directus.ID) error

	ListEventDocuments(ctx context.Context, q directus.Query) ([]eventdomain.EventDocument, error)
	GetEventDocument(ctx context.Context, id directus.ID) (*eventdomain.EventDocument, error)
	CreateEventDocument(ctx context.Context, in eventdomain.EventDocumentInput) (*eventdomain.EventDocument, error)
	UpdateEventDocument(ctx context.Context, id directus.ID, patch any) (*eventdomain.EventDocument, error)

	ListTeamMembers(ctx context.Context, q directus.Query) ([]providerdomain.TeamMember, error)
	SetTeamMemberEvent(ctx context.Context, memberID, eventID directus.ID) (*providerdomain.TeamMember, error)
}
