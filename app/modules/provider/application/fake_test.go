package providerservice

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	providerdb "github.com/raynzz/eventdesk/app/modules/provider/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// ------------------------
// Fake Provider Repo
// ------------------------

// FakeProviderRepo keeps records in maps and round-trips create/patch bodies
// through JSON, the way Directus receives them.
type FakeProviderRepo struct {
	trace     []string
	nextID    int
	providers map[directus.ID]providerdomain.Provider
	members   map[directus.ID]providerdomain.TeamMember
	queries   []directus.Query

	CreateProviderFunc func(ctx context.Context, in any) (*providerdomain.Provider, error)
}

func NewFakeProviderRepo() *FakeProviderRepo {
	return &FakeProviderRepo{
		trace:     []string{},
		providers: map[directus.ID]providerdomain.Provider{},
		members:   map[directus.ID]providerdomain.TeamMember{},
	}
}

func (f *FakeProviderRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeProviderRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeProviderRepo) id() directus.ID {
	f.nextID++
	return directus.ID(strconv.Itoa(f.nextID))
}

func roundTrip(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (f *FakeProviderRepo) ListProviders(ctx context.Context, q directus.Query) ([]providerdomain.Provider, error) {
	f.record("ListProviders")
	f.queries = append(f.queries, q)
	out := []providerdomain.Provider{}
	for _, p := range f.providers {
		out = append(out, p)
	}
	return out, nil
}

func (f *FakeProviderRepo) GetProvider(ctx context.Context, id directus.ID) (*providerdomain.Provider, error) {
	f.record("GetProvider")
	p, ok := f.providers[id]
	if !ok {
		return nil, fmt.Errorf("provider %s: %w", id, providerdb.ErrNotFound)
	}
	return &p, nil
}

func (f *FakeProviderRepo) CreateProvider(ctx context.Context, in any) (*providerdomain.Provider, error) {
	f.record("CreateProvider")
	if f.CreateProviderFunc != nil {
		return f.CreateProviderFunc(ctx, in)
	}
	var p providerdomain.Provider
	if err := roundTrip(in, &p); err != nil {
		return nil, err
	}
	p.ID = f.id()
	f.providers[p.ID] = p
	return &p, nil
}

func (f *FakeProviderRepo) UpdateProvider(ctx context.Context, id directus.ID, patch any) (*providerdomain.Provider, error) {
	f.record("UpdateProvider")
	p, ok := f.providers[id]
	if !ok {
		return nil, fmt.Errorf("provider %s: %w", id, providerdb.ErrNotFound)
	}
	if err := roundTrip(patch, &p); err != nil {
		return nil, err
	}
	f.providers[id] = p
	return &p, nil
}

func (f *FakeProviderRepo) DeleteProvider(ctx context.Context, id directus.ID) error {
	f.record("DeleteProvider")
	if _, ok := f.providers[id]; !ok {
		return fmt.Errorf("provider %s: %w", id, providerdb.ErrNotFound)
	}
	delete(f.providers, id)
	return nil
}

func (f *FakeProviderRepo) ListTeamMembers(ctx context.Context, q directus.Query) ([]providerdomain.TeamMember, error) {
	f.record("ListTeamMembers")
	f.queries = append(f.queries, q)
	out := []providerdomain.TeamMember{}
	for _, m := range f.members {
		out = append(out, m)
	}
	return out, nil
}

func (f *FakeProviderRepo) GetTeamMember(ctx context.Context, id directus.ID) (*providerdomain.TeamMember, error) {
	f.record("GetTeamMember")
	m, ok := f.members[id]
	if !ok {
		return nil, fmt.Errorf("team member %s: %w", id, providerdb.ErrNotFound)
	}
	return &m, nil
}

func (f *FakeProviderRepo) CreateTeamMember(ctx context.Context, in any) (*providerdomain.TeamMember, error) {
	f.record("CreateTeamMember")
	var m providerdomain.TeamMember
	if err := roundTrip(in, &m); err != nil {
		return nil, err
	}
	m.ID = f.id()
	f.members[m.ID] = m
	return &m, nil
}

func (f *FakeProviderRepo) UpdateTeamMember(ctx context.Context, id directus.ID, patch any) (*providerdomain.TeamMember, error) {
	f.record("UpdateTeamMember")
	m, ok := f.members[id]
	if !ok {
		return nil, fmt.Errorf("team member %s: %w", id, providerdb.ErrNotFound)
	}
	if err := roundTrip(patch, &m); err != nil {
		return nil, err
	}
	f.members[id] = m
	return &m, nil
}

func (f *FakeProviderRepo) DeleteTeamMember(ctx context.Context, id directus.ID) error {
	f.record("DeleteTeamMember")
	delete(f.members, id)
	return nil
}

var _ providerdb.Repository = (*FakeProviderRepo)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type published struct {
	Topic   string
	Payload any
}

type FakePublisher struct {
	Events []published
	Err    error
}

func (f *FakePublisher) PublishJSON(ctx context.Context, topic string, payload any) error {
	f.Events = append(f.Events, published{Topic: topic, Payload: payload})
	return f.Err
}
