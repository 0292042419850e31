package dashboarddb

import (
	"context"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// Impl reads the dashboard collections from Directus.
type Impl struct {
	client *directus.Client
}

// NewRepository creates a Directus-backed dashboard repository.
func NewRepository(client *directus.Client) Repository {
	return &Impl{client: client}
}

func (r *Impl) ListEvents(ctx context.Context, q directus.Query) ([]eventdomain.Event, error) {
	return directus.List[eventdomain.Event](ctx, r.client, eventdomain.EventsCollection, q)
}

func (r *Impl) ListParticipants(ctx context.Context, q directus.Query) ([]eventdomain.Participant, error) {
	return directus.List[eventdomain.Participant](ctx, r.client, eventdomain.ParticipantsCollection, q)
}

func (r *Impl) ListProviders(ctx context.Context, q directus.Query) ([]providerdomain.Provider, error) {
	return directus.List[providerdomain.Provider](ctx, r.client, providerdomain.ProvidersCollection, q)
}

func (r *Impl) ListTeamMembers(ctx context.Context, q directus.Query) ([]providerdomain.TeamMember, error) {
	return directus.List[providerdomain.TeamMember](ctx, r.client, providerdomain.TeamMembersCollection, q)
}

func (r *Impl) ListProviderDocuments(ctx context.Context, q directus.Query) ([]documentdomain.ProviderDocument, error) {
	return directus.List[documentdomain.ProviderDocument](ctx, r.client, documentdomain.ProviderDocumentsCollection, q)
}
