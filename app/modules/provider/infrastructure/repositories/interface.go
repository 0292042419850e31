package providerdb

import (
	"context"

	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// Repository defines the contract for provider and team member persistence.
type Repository interface {
	ListProviders(ctx context.Context, q directus.Query) ([]providerdomain.Provider, error)
	GetProvider(ctx context.Context, id directus.ID) (*providerdomain.Provider, error)
	CreateProvider(ctx context.Context, in any) (*providerdomain.Provider, error)
	UpdateProvider(ctx context.Context, id directus.ID, patch any) (*providerdomain.Provider, error)
	DeleteProvider(ctx context.Context, id directus.ID) error

	ListTeamMembers(ctx context.Context, q directus.Query) ([]providerdomain.TeamMember, error)
	GetTeamMember(ctx context.Context, id directus.ID) (*providerdomain.TeamMember, error)
	CreateTeamMember(ctx context.Context, in any) (*providerdomain.TeamMember, error)
	UpdateTeamMember(ctx context.Context, id directus.ID, patch any) (*providerdomain.TeamMember, error)
	DeleteTeamMember(ctx context.Context, id directus.ID) error
}
