package providerdb

import (
	"context"
	"errors"
	"fmt"

	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// ErrNotFound is returned when a provider or team member does not exist.
var ErrNotFound = errors.New("not found")

// Impl stores providers and team members in Directus collections.
type Impl struct {
	client *directus.Client
}

// NewRepository creates a Directus-backed provider repository.
func NewRepository(client *directus.Client) Repository {
	return &Impl{client: client}
}

func (r *Impl) ListProviders(ctx context.Context, q directus.Query) ([]providerdomain.Provider, error) {
	return directus.List[providerdomain.Provider](ctx, r.client, providerdomain.ProvidersCollection, q)
}

func (r *Impl) GetProvider(ctx context.Context, id directus.ID) (*providerdomain.Provider, error) {
	p, err := directus.FindByID[providerdomain.Provider](ctx, r.client, providerdomain.ProvidersCollection, id)
	return p, notFound("provider", id, err)
}

func (r *Impl) CreateProvider(ctx context.Context, in any) (*providerdomain.Provider, error) {
	return directus.Create[providerdomain.Provider](ctx, r.client, providerdomain.ProvidersCollection, in)
}

func (r *Impl) UpdateProvider(ctx context.Context, id directus.ID, patch any) (*providerdomain.Provider, error) {
	if err := r.exists(ctx, providerdomain.ProvidersCollection, "provider", id); err != nil {
		return nil, err
	}
	p, err := directus.Update[providerdomain.Provider](ctx, r.client, providerdomain.ProvidersCollection, id, patch)
	return p, notFound("provider", id, err)
}

func (r *Impl) DeleteProvider(ctx context.Context, id directus.ID) error {
	if err := r.exists(ctx, providerdomain.ProvidersCollection, "provider", id); err != nil {
		return err
	}
	return notFound("provider", id, r.client.DeleteItem(ctx, providerdomain.ProvidersCollection, id))
}

func (r *Impl) ListTeamMembers(ctx context.Context, q directus.Query) ([]providerdomain.TeamMember, error) {
	return directus.List[providerdomain.TeamMember](ctx, r.client, providerdomain.TeamMembersCollection, q)
}

func (r *Impl) GetTeamMember(ctx context.Context, id directus.ID) (*providerdomain.TeamMember, error) {
	m, err := directus.FindByID[providerdomain.TeamMember](ctx, r.client, providerdomain.TeamMembersCollection, id)
	return m, notFound("team member", id, err)
}

func (r *Impl) CreateTeamMember(ctx context.Context, in any) (*providerdomain.TeamMember, error) {
	return directus.Create[providerdomain.TeamMember](ctx, r.client, providerdomain.TeamMembersCollection, in)
}

func (r *Impl) UpdateTeamMember(ctx context.Context, id directus.ID, patch any) (*providerdomain.TeamMember, error) {
	if err := r.exists(ctx, providerdomain.TeamMembersCollection, "team member", id); err != nil {
		return nil, err
	}
	m, err := directus.Update[providerdomain.TeamMember](ctx, r.client, providerdomain.TeamMembersCollection, id, patch)
	return m, notFound("team member", id, err)
}

func (r *Impl) DeleteTeamMember(ctx context.Context, id directus.ID) error {
	if err := r.exists(ctx, providerdomain.TeamMembersCollection, "team member", id); err != nil {
		return err
	}
	return notFound("team member", id, r.client.DeleteItem(ctx, providerdomain.TeamMembersCollection, id))
}

// exists looks the item up first. Directus answers 403 rather than 404 for
// writes to an unknown primary key.
func (r *Impl) exists(ctx context.Context, collection, kind string, id directus.ID) error {
	_, err := directus.FindByID[struct{}](ctx, r.client, collection, id, "id")
	return notFound(kind, id, err)
}

// notFound replaces the client's not-found error with ErrNotFound.
func notFound(kind string, id directus.ID, err error) error {
	if err != nil && directus.IsNotFound(err) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return err
}
