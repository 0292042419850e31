package eventservice

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	eventdb "github.com/raynzz/eventdesk/app/modules/event/infrastructure/repositories"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	providerdb "github.com/raynzz/eventdesk/app/modules/provider/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// ------------------------
// Fake Event Repo
// ------------------------

// FakeEventRepo keeps records in maps. Listing filters understand the plain
// {"field":{"_eq":v}} form and its _and combination.
type FakeEventRepo struct {
	trace        []string
	nextID       int
	events       map[directus.ID]eventdomain.Event
	participants map[directus.ID]eventdomain.Participant
	documents    map[directus.ID]eventdomain.EventDocument
	members      map[directus.ID]providerdomain.TeamMember
	queries      []directus.Query
}

func NewFakeEventRepo() *FakeEventRepo {
	return &FakeEventRepo{
		trace:        []string{},
		events:       map[directus.ID]eventdomain.Event{},
		participants: map[directus.ID]eventdomain.Participant{},
		documents:    map[directus.ID]eventdomain.EventDocument{},
		members:      map[directus.ID]providerdomain.TeamMember{},
	}
}

func (f *FakeEventRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeEventRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeEventRepo) id() directus.ID {
	f.nextID++
	return directus.ID(strconv.Itoa(100 + f.nextID))
}

func roundTrip(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// matches evaluates the _eq/_and subset of Directus filters against item's JSON form.
func matches(item any, filter directus.Filter) bool {
	if len(filter) == 0 {
		return true
	}
	var fields map[string]any
	if err := roundTrip(item, &fields); err != nil {
		return false
	}
	return evalFilter(fields, filter)
}

func evalFilter(fields map[string]any, filter directus.Filter) bool {
	for key, cond := range filter {
		if key == "_and" {
			for _, sub := range cond.([]directus.Filter) {
				if !evalFilter(fields, sub) {
					return false
				}
			}
			continue
		}
		eq, ok := cond.(map[string]any)["_eq"]
		if !ok {
			continue
		}
		if fmt.Sprint(fields[key]) != fmt.Sprint(eq) {
			return false
		}
	}
	return true
}

func sortedIDs[T any](m map[directus.ID]T) []directus.ID {
	ids := make([]directus.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func list[T any](m map[directus.ID]T, q directus.Query) []T {
	out := []T{}
	for _, id := range sortedIDs(m) {
		if matches(m[id], q.Filter) {
			out = append(out, m[id])
		}
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out
}

func (f *FakeEventRepo) ListEvents(ctx context.Context, q directus.Query) ([]eventdomain.Event, error) {
	f.record("ListEvents")
	f.queries = append(f.queries, q)
	return list(f.events, q), nil
}

func (f *FakeEventRepo) GetEvent(ctx context.Context, id directus.ID) (*eventdomain.Event, error) {
	f.record("GetEvent")
	e, ok := f.events[id]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, eventdb.ErrNotFound)
	}
	return &e, nil
}

func (f *FakeEventRepo) CreateEvent(ctx context.Context, in eventdomain.EventChanges) (*eventdomain.Event, error) {
	f.record("CreateEvent")
	var e eventdomain.Event
	if err := roundTrip(in, &e); err != nil {
		return nil, err
	}
	e.ID = f.id()
	f.events[e.ID] = e
	return &e, nil
}

func (f *FakeEventRepo) UpdateEvent(ctx context.Context, id directus.ID, patch eventdomain.EventChanges) (*eventdomain.Event, error) {
	f.record("UpdateEvent")
	e, ok := f.events[id]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, eventdb.ErrNotFound)
	}
	if err := roundTrip(patch, &e); err != nil {
		return nil, err
	}
	f.events[id] = e
	return &e, nil
}

func (f *FakeEventRepo) DeleteEvent(ctx context.Context, id directus.ID) error {
	f.record("DeleteEvent")
	if _, ok := f.events[id]; !ok {
		return fmt.Errorf("event %s: %w", id, eventdb.ErrNotFound)
	}
	delete(f.events, id)
	return nil
}

func (f *FakeEventRepo) ListParticipants(ctx context.Context, q directus.Query) ([]eventdomain.Participant, error) {
	f.record("ListParticipants")
	f.queries = append(f.queries, q)
	return list(f.participants, q), nil
}

func (f *FakeEventRepo) GetParticipant(ctx context.Context, id directus.ID) (*eventdomain.Participant, error) {
	f.record("GetParticipant")
	p, ok := f.participants[id]
	if !ok {
		return nil, fmt.Errorf("participant %s: %w", id, eventdb.ErrNotFound)
	}
	return &p, nil
}

func (f *FakeEventRepo) CreateParticipant(ctx context.Context, in eventdomain.ParticipantChanges) (*eventdomain.Participant, error) {
	f.record("CreateParticipant")
	var p eventdomain.Participant
	if err := roundTrip(in, &p); err != nil {
		return nil, err
	}
	p.ID = f.id()
	f.participants[p.ID] = p
	return &p, nil
}

func (f *FakeEventRepo) UpdateParticipant(ctx context.Context, id directus.ID, patch eventdomain.ParticipantChanges) (*eventdomain.Participant, error) {
	f.record("UpdateParticipant")
	p, ok := f.participants[id]
	if !ok {
		return nil, fmt.Errorf("participant %s: %w", id, eventdb.ErrNotFound)
	}
	if err := roundTrip(patch, &p); err != nil {
		return nil, err
	}
	f.participants[id] = p
	return &p, nil
}

func (f *FakeEventRepo) DeleteParticipant(ctx context.Context, id directus.ID) error {
	f.record("DeleteParticipant")
	delete(f.participants, id)
	return nil
}

func (f *FakeEventRepo) ListEventDocuments(ctx context.Context, q directus.Query) ([]eventdomain.EventDocument, error) {
	f.record("ListEventDocuments")
	f.queries = append(f.queries, q)
	return list(f.documents, q), nil
}

func (f *FakeEventRepo) GetEventDocument(ctx context.Context, id directus.ID) (*eventdomain.EventDocument, error) {
	f.record("GetEventDocument")
	d, ok := f.documents[id]
	if !ok {
		return nil, fmt.Errorf("event document %s: %w", id, eventdb.ErrNotFound)
	}
	return &d, nil
}

func (f *FakeEventRepo) CreateEventDocument(ctx context.Context, in eventdomain.EventDocumentInput) (*eventdomain.EventDocument, error) {
	f.record("CreateEventDocument")
	var d eventdomain.EventDocument
	if err := roundTrip(in, &d); err != nil {
		return nil, err
	}
	d.ID = f.id()
	f.documents[d.ID] = d
	return &d, nil
}

func (f *FakeEventRepo) UpdateEventDocument(ctx context.Context, id directus.ID, patch any) (*eventdomain.EventDocument, error) {
	f.record("UpdateEventDocument")
	d, ok := f.documents[id]
	if !ok {
		return nil, fmt.Errorf("event document %s: %w", id, eventdb.ErrNotFound)
	}
	if err := roundTrip(patch, &d); err != nil {
		return nil, err
	}
	f.documents[id] = d
	return &d, nil
}

func (f *FakeEventRepo) ListTeamMembers(ctx context.Context, q directus.Query) ([]providerdomain.TeamMember, error) {
	f.record("ListTeamMembers")
	f.queries = append(f.queries, q)
	return list(f.members, q), nil
}

func (f *FakeEventRepo) SetTeamMemberEvent(ctx context.Context, memberID, eventID directus.ID) (*providerdomain.TeamMember, error) {
	f.record("SetTeamMemberEvent")
	m, ok := f.members[memberID]
	if !ok {
		return nil, fmt.Errorf("team member %s: %w", memberID, providerdb.ErrNotFound)
	}
	m.EventID = eventID
	f.members[memberID] = m
	return &m, nil
}

var _ eventdb.Repository = (*FakeEventRepo)(nil)

// ------------------------
// Fake Providers
// ------------------------

// FakeProviders answers from the team members stored in the event repo, so
// attachments made through the repo are visible to lookups.
type FakeProviders struct {
	repo      *FakeEventRepo
	providers map[directus.ID]bool
}

func (f *FakeProviders) GetProvider(ctx context.Context, id directus.ID) (*providerdomain.ProviderDetail, error) {
	if !f.providers[id] {
		return nil, fmt.Errorf("provider %s: %w", id, providerdb.ErrNotFound)
	}
	return &providerdomain.ProviderDetail{Provider: providerdomain.Provider{ID: id}}, nil
}

func (f *FakeProviders) GetTeamMember(ctx context.Context, id directus.ID) (*providerdomain.TeamMember, error) {
	m, ok := f.repo.members[id]
	if !ok {
		return nil, fmt.Errorf("team member %s: %w", id, providerdb.ErrNotFound)
	}
	return &m, nil
}

// ------------------------
// Fake Requirements
// ------------------------

type FakeRequirements struct {
	Requirements []documentdomain.Requirement
	Err          error
}

func (f *FakeRequirements) ApplicableRequirements(ctx context.Context, eventID directus.ID) ([]documentdomain.Requirement, error) {
	return f.Requirements, f.Err
}

// ------------------------
// Fake Date Parser
// ------------------------

// FakeDates maps inputs to fixed instants.
type FakeDates map[string]time.Time

func (f FakeDates) ParseDate(input string) (time.Time, error) {
	t, ok := f[input]
	if !ok {
		return time.Time{}, fmt.Errorf("unrecognized %q", input)
	}
	return t, nil
}

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

func (f *FakePublisher) Topics() []string {
	out := make([]string, 0, len(f.Events))
	for _, e := range f.Events {
		out = append(out, e.Topic)
	}
	return out
}
