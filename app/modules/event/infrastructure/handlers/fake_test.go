package eventhandlers

import (
	"context"

	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// FakeService is a programmable eventservice.Service.
type FakeService struct {
	trace []string

	ListEventsFunc             func(ctx context.Context, filter eventdomain.EventFilter) ([]eventdomain.Event, error)
	GetEventFunc               func(ctx context.Context, id directus.ID) (*eventdomain.EventDetail, error)
	CreateEventFunc            func(ctx context.Context, in eventdomain.EventInput) (*eventdomain.Event, error)
	UpdateEventFunc            func(ctx context.Context, id directus.ID, patch eventdomain.EventPatch) (*eventdomain.Event, error)
	DeleteEventFunc            func(ctx context.Context, id directus.ID) error
	AssignProviderFunc         func(ctx context.Context, eventID, providerID directus.ID) (*eventdomain.Participant, error)
	ListParticipantsFunc       func(ctx context.Context, eventID directus.ID) ([]eventdomain.Participant, error)
	SetParticipantStatusFunc   func(ctx context.Context, id directus.ID, status eventdomain.ReviewStatus, note string) (*eventdomain.Participant, error)
	RemoveParticipantFunc      func(ctx context.Context, id directus.ID) error
	AttachTeamMemberFunc       func(ctx context.Context, eventID, memberID directus.ID) (*providerdomain.TeamMember, error)
	DetachTeamMemberFunc       func(ctx context.Context, eventID, memberID directus.ID) (*providerdomain.TeamMember, error)
	ListEventTeamMembersFunc   func(ctx context.Context, eventID directus.ID) ([]providerdomain.TeamMember, error)
	ListEventDocumentsFunc     func(ctx context.Context, eventID directus.ID) ([]eventdomain.EventDocument, error)
	AddEventDocumentFunc       func(ctx context.Context, in eventdomain.EventDocumentInput) (*eventdomain.EventDocument, error)
	SetEventDocumentStatusFunc func(ctx context.Context, id directus.ID, status eventdomain.ReviewStatus) (*eventdomain.EventDocument, error)
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) ListEvents(ctx context.Context, filter eventdomain.EventFilter) ([]eventdomain.Event, error) {
	f.record("ListEvents")
	if f.ListEventsFunc != nil {
		return f.ListEventsFunc(ctx, filter)
	}
	return []eventdomain.Event{}, nil
}

func (f *FakeService) GetEvent(ctx context.Context, id directus.ID) (*eventdomain.EventDetail, error) {
	f.record("GetEvent")
	if f.GetEventFunc != nil {
		return f.GetEventFunc(ctx, id)
	}
	return &eventdomain.EventDetail{Event: eventdomain.Event{ID: id}}, nil
}

func (f *FakeService) CreateEvent(ctx context.Context, in eventdomain.EventInput) (*eventdomain.Event, error) {
	f.record("CreateEvent")
	if f.CreateEventFunc != nil {
		return f.CreateEventFunc(ctx, in)
	}
	return &eventdomain.Event{ID: "1", Name: in.Name, Status: eventdomain.StatusDraft}, nil
}

func (f *FakeService) UpdateEvent(ctx context.Context, id directus.ID, patch eventdomain.EventPatch) (*eventdomain.Event, error) {
	f.record("UpdateEvent")
	if f.UpdateEventFunc != nil {
		return f.UpdateEventFunc(ctx, id, patch)
	}
	return &eventdomain.Event{ID: id}, nil
}

func (f *FakeService) DeleteEvent(ctx context.Context, id directus.ID) error {
	f.record("DeleteEvent")
	if f.DeleteEventFunc != nil {
		return f.DeleteEventFunc(ctx, id)
	}
	return nil
}

func (f *FakeService) AssignProvider(ctx context.Context, eventID, providerID directus.ID) (*eventdomain.Participant, error) {
	f.record("AssignProvider")
	if f.AssignProviderFunc != nil {
		return f.AssignProviderFunc(ctx, eventID, providerID)
	}
	return &eventdomain.Participant{ID: "1", EventID: eventID, ProviderID: providerID, Status: eventdomain.ReviewPending}, nil
}

func (f *FakeService) ListParticipants(ctx context.Context, eventID directus.ID) ([]eventdomain.Participant, error) {
	f.record("ListParticipants")
	if f.ListParticipantsFunc != nil {
		return f.ListParticipantsFunc(ctx, eventID)
	}
	return []eventdomain.Participant{}, nil
}

func (f *FakeService) SetParticipantStatus(ctx context.Context, id directus.ID, status eventdomain.ReviewStatus, note string) (*eventdomain.Participant, error) {
	f.record("SetParticipantStatus")
	if f.SetParticipantStatusFunc != nil {
		return f.SetParticipantStatusFunc(ctx, id, status, note)
	}
	return &eventdomain.Participant{ID: id, Status: status, Notes: note}, nil
}

func (f *FakeService) RemoveParticipant(ctx context.Context, id directus.ID) error {
	f.record("RemoveParticipant")
	if f.RemoveParticipantFunc != nil {
		return f.RemoveParticipantFunc(ctx, id)
	}
	return nil
}

func (f *FakeService) AttachTeamMember(ctx context.Context, eventID, memberID directus.ID) (*providerdomain.TeamMember, error) {
	f.record("AttachTeamMember")
	if f.AttachTeamMemberFunc != nil {
		return f.AttachTeamMemberFunc(ctx, eventID, memberID)
	}
	return &providerdomain.TeamMember{ID: memberID, EventID: eventID}, nil
}

func (f *FakeService) DetachTeamMember(ctx context.Context, eventID, memberID directus.ID) (*providerdomain.TeamMember, error) {
	f.record("DetachTeamMember")
	if f.DetachTeamMemberFunc != nil {
		return f.DetachTeamMemberFunc(ctx, eventID, memberID)
	}
	return &providerdomain.TeamMember{ID: memberID}, nil
}

func (f *FakeService) ListEventTeamMembers(ctx context.Context, eventID directus.ID) ([]providerdomain.TeamMember, error) {
	f.record("ListEventTeamMembers")
	if f.ListEventTeamMembersFunc != nil {
		return f.ListEventTeamMembersFunc(ctx, eventID)
	}
	return []providerdomain.TeamMember{}, nil
}

func (f *FakeService) ListEventDocuments(ctx context.Context, eventID directus.ID) ([]eventdomain.EventDocument, error) {
	f.record("ListEventDocuments")
	if f.ListEventDocumentsFunc != nil {
		return f.ListEventDocumentsFunc(ctx, eventID)
	}
	return []eventdomain.EventDocument{}, nil
}

func (f *FakeService) AddEventDocument(ctx context.Context, in eventdomain.EventDocumentInput) (*eventdomain.EventDocument, error) {
	f.record("AddEventDocument")
	if f.AddEventDocumentFunc != nil {
		return f.AddEventDocumentFunc(ctx, in)
	}
	return &eventdomain.EventDocument{ID: "1", EventID: in.EventID, Name: in.Name, Status: eventdomain.ReviewPending}, nil
}

func (f *FakeService) SetEventDocumentStatus(ctx context.Context, id directus.ID, status eventdomain.ReviewStatus) (*eventdomain.EventDocument, error) {
	f.record("SetEventDocumentStatus")
	if f.SetEventDocumentStatusFunc != nil {
		return f.SetEventDocumentStatusFunc(ctx, id, status)
	}
	return &eventdomain.EventDocument{ID: id, Status: status}, nil
}
