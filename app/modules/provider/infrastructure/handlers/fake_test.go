package providerhandlers

import (
	"context"

	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// FakeService is a programmable providerservice.Service.
type FakeService struct {
	trace []string

	ListProvidersFunc    func(ctx context.Context, filter providerdomain.ProviderFilter) ([]providerdomain.Provider, error)
	GetProviderFunc      func(ctx context.Context, id directus.ID) (*providerdomain.ProviderDetail, error)
	CreateProviderFunc   func(ctx context.Context, in providerdomain.ProviderInput) (*providerdomain.Provider, error)
	UpdateProviderFunc   func(ctx context.Context, id directus.ID, patch providerdomain.ProviderPatch) (*providerdomain.Provider, error)
	DeleteProviderFunc   func(ctx context.Context, id directus.ID) error
	ListTeamMembersFunc  func(ctx context.Context, providerID directus.ID) ([]providerdomain.TeamMember, error)
	GetTeamMemberFunc    func(ctx context.Context, id directus.ID) (*providerdomain.TeamMember, error)
	AddTeamMemberFunc    func(ctx context.Context, in providerdomain.TeamMemberInput) (*providerdomain.TeamMember, error)
	UpdateTeamMemberFunc func(ctx context.Context, id directus.ID, patch providerdomain.TeamMemberPatch) (*providerdomain.TeamMember, error)
	RemoveTeamMemberFunc func(ctx context.Context, id directus.ID) error
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) ListProviders(ctx context.Context, filter providerdomain.ProviderFilter) ([]providerdomain.Provider, error) {
	f.record("ListProviders")
	if f.ListProvidersFunc != nil {
		return f.ListProvidersFunc(ctx, filter)
	}
	return []providerdomain.Provider{}, nil
}

func (f *FakeService) GetProvider(ctx context.Context, id directus.ID) (*providerdomain.ProviderDetail, error) {
	f.record("GetProvider")
	if f.GetProviderFunc != nil {
		return f.GetProviderFunc(ctx, id)
	}
	return &providerdomain.ProviderDetail{Provider: providerdomain.Provider{ID: id}}, nil
}

func (f *FakeService) CreateProvider(ctx context.Context, in providerdomain.ProviderInput) (*providerdomain.Provider, error) {
	f.record("CreateProvider")
	if f.CreateProviderFunc != nil {
		return f.CreateProviderFunc(ctx, in)
	}
	return &providerdomain.Provider{ID: "1", Name: in.Name}, nil
}

func (f *FakeService) UpdateProvider(ctx context.Context, id directus.ID, patch providerdomain.ProviderPatch) (*providerdomain.Provider, error) {
	f.record("UpdateProvider")
	if f.UpdateProviderFunc != nil {
		return f.UpdateProviderFunc(ctx, id, patch)
	}
	return &providerdomain.Provider{ID: id}, nil
}

func (f *FakeService) DeleteProvider(ctx context.Context, id directus.ID) error {
	f.record("DeleteProvider")
	if f.DeleteProviderFunc != nil {
		return f.DeleteProviderFunc(ctx, id)
	}
	return nil
}

func (f *FakeService) ListTeamMembers(ctx context.Context, providerID directus.ID) ([]providerdomain.TeamMember, error) {
	f.record("ListTeamMembers")
	if f.ListTeamMembersFunc != nil {
		return f.ListTeamMembersFunc(ctx, providerID)
	}
	return []providerdomain.TeamMember{}, nil
}

func (f *FakeService) GetTeamMember(ctx context.Context, id directus.ID) (*providerdomain.TeamMember, error) {
	f.record("GetTeamMember")
	if f.GetTeamMemberFunc != nil {
		return f.GetTeamMemberFunc(ctx, id)
	}
	return &providerdomain.TeamMember{ID: id}, nil
}

func (f *FakeService) AddTeamMember(ctx context.Context, in providerdomain.TeamMemberInput) (*providerdomain.TeamMember, error) {
	f.record("AddTeamMember")
	if f.AddTeamMemberFunc != nil {
		return f.AddTeamMemberFunc(ctx, in)
	}
	return &providerdomain.TeamMember{ID: "1", ProviderID: in.ProviderID}, nil
}

func (f *FakeService) UpdateTeamMember(ctx context.Context, id directus.ID, patch providerdomain.TeamMemberPatch) (*providerdomain.TeamMember, error) {
	f.record("UpdateTeamMember")
	if f.UpdateTeamMemberFunc != nil {
		return f.UpdateTeamMemberFunc(ctx, id, patch)
	}
	return &providerdomain.TeamMember{ID: id}, nil
}

func (f *FakeService) RemoveTeamMember(ctx context.Context, id directus.ID) error {
	f.record("RemoveTeamMember")
	if f.RemoveTeamMemberFunc != nil {
		return f.RemoveTeamMemberFunc(ctx, id)
	}
	return nil
}
