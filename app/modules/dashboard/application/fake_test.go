package dashboardservice

import (
	"context"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// FakeDashboardRepo returns fixed collections and records the queries it got.
type FakeDashboardRepo struct {
	Events       []eventdomain.Event
	Participants []eventdomain.Participant
	Providers    []providerdomain.Provider
	TeamMembers  []providerdomain.TeamMember
	Documents    []documentdomain.ProviderDocument
	Err          error

	queries map[string]directus.Query
}

func (f *FakeDashboardRepo) record(step string, q directus.Query) {
	if f.queries == nil {
		f.queries = map[string]directus.Query{}
	}
	f.queries[step] = q
}

func (f *FakeDashboardRepo) ListEvents(ctx context.Context, q directus.Query) ([]eventdomain.Event, error) {
	f.record("ListEvents", q)
	return f.Events, f.Err
}

func (f *FakeDashboardRepo) ListParticipants(ctx context.Context, q directus.Query) ([]eventdomain.Participant, error) {
	f.record("ListParticipants", q)
	return f.Participants, f.Err
}

func (f *FakeDashboardRepo) ListProviders(ctx context.Context, q directus.Query) ([]providerdomain.Provider, error) {
	f.record("ListProviders", q)
	return f.Providers, f.Err
}

func (f *FakeDashboardRepo) ListTeamMembers(ctx context.Context, q directus.Query) ([]providerdomain.TeamMember, error) {
	f.record("ListTeamMembers", q)
	return f.TeamMembers, f.Err
}

// ListProviderDocuments honors a status _eq filter.
func (f *FakeDashboardRepo) ListProviderDocuments(ctx context.Context, q directus.Query) ([]documentdomain.ProviderDocument, error) {
	f.record("ListProviderDocuments", q)
	if f.Err != nil {
		return nil, f.Err
	}
	cond, ok := q.Filter["status"].(map[string]any)
	if !ok {
		return f.Documents, nil
	}
	out := []documentdomain.ProviderDocument{}
	for _, d := range f.Documents {
		if d.Status == cond["_eq"] {
			out = append(out, d)
		}
	}
	return out, nil
}
