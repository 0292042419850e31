package providerservice

import (
	"context"

	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// Service defines the provider service interface.
type Service interface {
	ListProviders(ctx context.Context, filter providerdomain.ProviderFilter) ([]providerdomain.Provider, error)
	// GetProvider returns the provider with its team members.
	GetProvider(ctx context.Context, id directus.ID) (*providerdomain.ProviderDetail, error)
	CreateProvider(ctx context.Context, in providerdomain.ProviderInput) (*providerdomain.Provider, error)
	UpdateProvider(ctx context.Context, id directus.ID, patch providerdomain.ProviderPatch) (*providerdomain.Provider, error)
	DeleteProvider(ctx context.Context, id directus.ID) error

	ListTeamMembers(ctx context.Context, providerID directus.ID) ([]providerdomain.TeamMember, error)
	GetTeamMember(ctx context.Context, id directus.ID) (*providerdomain.TeamMember, error)
	// AddTeamMember creates a member under an existing provider.
	AddTeamMember(ctx context.Context, in providerdomain.TeamMemberInput) (*providerdomain.TeamMember, error)
	UpdateTeamMember(ctx context.Context, id directus.ID, patch providerdomain.TeamMemberPatch) (*providerdomain.TeamMember, error)
	RemoveTeamMember(ctx context.Context, id directus.ID) error
}
