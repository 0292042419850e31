package eventdb

import (
	"context"
	"errors"
	"fmt"

	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// ErrNotFound is returned when an event, participant or event document does not exist.
var ErrNotFound = errors.New("not found")

// Impl stores events in Directus collections.
type Impl struct {
	client *directus.Client
}

// NewRepository creates a Directus-backed event repository.
func NewRepository(client *directus.Client) Repository {
	return &Impl{client: client}
}

func (r *Impl) ListEvents(ctx context.Context, q directus.Query) ([]eventdomain.Event, error) {
	return directus.List[eventdomain.Event](ctx, r.client, eventdomain.EventsCollection, q)
}

func (r *Impl) GetEvent(ctx context.Context, id directus.ID) (*eventdomain.Event, error) {
	e, err := directus.FindByID[eventdomain.Event](ctx, r.client, eventdomain.EventsCollection, id)
	return e, notFound("event", id, err)
}

func (r *Impl) CreateEvent(ctx context.Context, in eventdomain.EventChanges) (*eventdomain.Event, error) {
	return directus.Create[eventdomain.Event](ctx, r.client, eventdomain.EventsCollection, in)
}

func (r *Impl) UpdateEvent(ctx context.Context, id directus.ID, patch eventdomain.EventChanges) (*eventdomain.Event, error) {
	e, err := directus.Update[eventdomain.Event](ctx, r.client, eventdomain.EventsCollection, id, patch)
	return e, notFound("event", id, err)
}

func (r *Impl) DeleteEvent(ctx context.Context, id directus.ID) error {
	if err := r.exists(ctx, eventdomain.EventsCollection, "event", id); err != nil {
		return err
	}
	return notFound("event", id, r.client.DeleteItem(ctx, eventdomain.EventsCollection, id))
}

func (r *Impl) ListParticipants(ctx context.Context, q directus.Query) ([]eventdomain.Participant, error) {
	return directus.List[eventdomain.Participant](ctx, r.client, eventdomain.ParticipantsCollection, q)
}

func (r *Impl) GetParticipant(ctx context.Context, id directus.ID) (*eventdomain.Participant, error) {
	p, err := directus.FindByID[eventdomain.Participant](ctx, r.client, eventdomain.ParticipantsCollection, id)
	return p, notFound("participant", id, err)
}

func (r *Impl) CreateParticipant(ctx context.Context, in eventdomain.ParticipantChanges) (*eventdomain.Participant, error) {
	return directus.Create[eventdomain.Participant](ctx, r.client, eventdomain.ParticipantsCollection, in)
}

func (r *Impl) UpdateParticipant(ctx context.Context, id directus.ID, patch eventdomain.ParticipantChanges) (*eventdomain.Participant, error) {
	p, err := directus.Update[eventdomain.Participant](ctx, r.client, eventdomain.ParticipantsCollection, id, patch)
	return p, notFound("participant", id, err)
}

func (r *Impl) DeleteParticipant(ctx context.Context, id directus.ID) error {
	if err := r.exists(ctx, eventdomain.ParticipantsCollection, "participant", id); err != nil {
		return err
	}
	return notFound("participant", id, r.client.DeleteItem(ctx, eventdomain.ParticipantsCollection, id))
}

func (r *Impl) ListEventDocuments(ctx context.Context, q directus.Query) ([]eventdomain.EventDocument, error) {
	return directus.List[eventdomain.EventDocument](ctx, r.client, eventdomain.EventDocumentsCollection, q)
}

func (r *Impl) GetEventDocument(ctx context.Context, id directus.ID) (*eventdomain.EventDocument, error) {
	d, err := directus.FindByID[eventdomain.EventDocument](ctx, r.client, eventdomain.EventDocumentsCollection, id)
	return d, notFound("event document", id, err)
}

func (r *Impl) CreateEventDocument(ctx context.Context, in eventdomain.EventDocumentInput) (*eventdomain.EventDocument, error) {
	return directus.Create[eventdomain.EventDocument](ctx, r.client, eventdomain.EventDocumentsCollection, in)
}

func (r *Impl) UpdateEventDocument(ctx context.Context, id directus.ID, patch any) (*eventdomain.EventDocument, error) {
	if err := r.exists(ctx, eventdomain.EventDocumentsCollection, "event document", id); err != nil {
		return nil, err
	}
	d, err := directus.Update[eventdomain.EventDocument](ctx, r.client, eventdomain.EventDocumentsCollection, id, patch)
	return d, notFound("event document", id, err)
}

func (r *Impl) ListTeamMembers(ctx context.Context, q directus.Query) ([]providerdomain.TeamMember, error) {
	return directus.List[providerdomain.TeamMember](ctx, r.client, providerdomain.TeamMembersCollection, q)
}

func (r *Impl) SetTeamMemberEvent(ctx context.Context, memberID, eventID directus.ID) (*providerdomain.TeamMember, error) {
	m, err := directus.Update[providerdomain.TeamMember](ctx, r.client, providerdomain.TeamMembersCollection, memberID,
		eventdomain.TeamMemberEvent{EventID: eventID})
	return m, notFound("team member", memberID, err)
}

// exists looks the item up first: Directus answers 403, not 404, when a write
// names an unknown primary key.
func (r *Impl) exists(ctx context.Context, collection, kind string, id directus.ID) error {
	_, err := directus.FindByID[struct{}](ctx, r.client, collection, id, "id")
	return notFound(kind, id, err)
}

func notFound(kind string, id directus.ID, err error) error {
	if err != nil && directus.IsNotFound(err) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return err
}
