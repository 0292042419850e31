package dashboarddb

import (
	"context"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// Repository reads every collection the dashboard aggregates. It never writes.
type Repository interface {
	ListEvents(ctx context.Context, q directus.Query) ([]eventdomain.Event, error)
	ListParticipants(ctx context.Context, q directus.Query) ([]eventdomain.Participant, error)
	ListProviders(ctx context.Context, q directus.Query) ([]providerdomain.Provider, error)
	ListTeamMembers(ctx context.Context, q directus.Query) ([]providerdomain.TeamMember, error)
	ListProviderDocuments(ctx context.Context, q directus.Query) ([]documentdomain.ProviderDocument, error)
}
