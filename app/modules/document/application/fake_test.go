package documentservice

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	documentdb "github.com/raynzz/eventdesk/app/modules/document/infrastructure/repositories"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	providerdb "github.com/raynzz/eventdesk/app/modules/provider/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// ------------------------
// Fake Document Repo
// ------------------------

type FakeDocumentRepo struct {
	trace        []string
	nextID       int
	requirements map[directus.ID]documentdomain.Requirement
	documents    map[directus.ID]documentdomain.ProviderDocument
	queries      []directus.Query
	patches      []any
}

func NewFakeDocumentRepo() *FakeDocumentRepo {
	return &FakeDocumentRepo{
		trace:        []string{},
		requirements: map[directus.ID]documentdomain.Requirement{},
		documents:    map[directus.ID]documentdomain.ProviderDocument{},
	}
}

func (f *FakeDocumentRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeDocumentRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeDocumentRepo) id() directus.ID {
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

func (f *FakeDocumentRepo) ListRequirements(ctx context.Context, q directus.Query) ([]documentdomain.Requirement, error) {
	f.record("ListRequirements")
	f.queries = append(f.queries, q)
	out := []documentdomain.Requirement{}
	for _, r := range f.requirements {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *FakeDocumentRepo) GetRequirement(ctx context.Context, id directus.ID) (*documentdomain.Requirement, error) {
	f.record("GetRequirement")
	r, ok := f.requirements[id]
	if !ok {
		return nil, fmt.Errorf("requirement %s: %w", id, documentdb.ErrNotFound)
	}
	return &r, nil
}

func (f *FakeDocumentRepo) CreateRequirement(ctx context.Context, in any) (*documentdomain.Requirement, error) {
	f.record("CreateRequirement")
	var r documentdomain.Requirement
	if err := roundTrip(in, &r); err != nil {
		return nil, err
	}
	r.ID = f.id()
	f.requirements[r.ID] = r
	return &r, nil
}

func (f *FakeDocumentRepo) UpdateRequirement(ctx context.Context, id directus.ID, patch any) (*documentdomain.Requirement, error) {
	f.record("UpdateRequirement")
	f.patches = append(f.patches, patch)
	r, ok := f.requirements[id]
	if !ok {
		return nil, fmt.Errorf("requirement %s: %w", id, documentdb.ErrNotFound)
	}
	if err := roundTrip(patch, &r); err != nil {
		return nil, err
	}
	f.requirements[id] = r
	return &r, nil
}

func (f *FakeDocumentRepo) DeleteRequirement(ctx context.Context, id directus.ID) error {
	f.record("DeleteRequirement")
	if _, ok := f.requirements[id]; !ok {
		return fmt.Errorf("requirement %s: %w", id, documentdb.ErrNotFound)
	}
	delete(f.requirements, id)
	return nil
}

func (f *FakeDocumentRepo) ListDocuments(ctx context.Context, q directus.Query) ([]documentdomain.ProviderDocument, error) {
	f.record("ListDocuments")
	f.queries = append(f.queries, q)
	out := []documentdomain.ProviderDocument{}
	for _, d := range f.documents {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *FakeDocumentRepo) GetDocument(ctx context.Context, id directus.ID) (*documentdomain.ProviderDocument, error) {
	f.record("GetDocument")
	d, ok := f.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, documentdb.ErrNotFound)
	}
	return &d, nil
}

func (f *FakeDocumentRepo) CreateDocument(ctx context.Context, in any) (*documentdomain.ProviderDocument, error) {
	f.record("CreateDocument")
	var d documentdomain.ProviderDocument
	if err := roundTrip(in, &d); err != nil {
		return nil, err
	}
	d.ID = f.id()
	f.documents[d.ID] = d
	return &d, nil
}

func (f *FakeDocumentRepo) UpdateDocument(ctx context.Context, id directus.ID, patch any) (*documentdomain.ProviderDocument, error) {
	f.record("UpdateDocument")
	f.patches = append(f.patches, patch)
	d, ok := f.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, documentdb.ErrNotFound)
	}
	if err := roundTrip(patch, &d); err != nil {
		return nil, err
	}
	f.documents[id] = d
	return &d, nil
}

var _ documentdb.Repository = (*FakeDocumentRepo)(nil)

// ------------------------
// Fake Provider Lookup
// ------------------------

type FakeProviders struct {
	known   map[directus.ID]bool
	members map[directus.ID]providerdomain.TeamMember
}

func (f *FakeProviders) GetProvider(ctx context.Context, id directus.ID) (*providerdomain.ProviderDetail, error) {
	if !f.known[id] {
		return nil, fmt.Errorf("provider %s: %w", id, providerdb.ErrNotFound)
	}
	return &providerdomain.ProviderDetail{Provider: providerdomain.Provider{ID: id}}, nil
}

func (f *FakeProviders) GetTeamMember(ctx context.Context, id directus.ID) (*providerdomain.TeamMember, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, fmt.Errorf("team member %s: %w", id, providerdb.ErrNotFound)
	}
	return &m, nil
}

var _ ProviderLookup = (*FakeProviders)(nil)

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
