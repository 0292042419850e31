package eventdomain

import (
	"errors"
	"strings"
	"time"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

const (
	EventsCollection         = "events"
	ParticipantsCollection   = "event_participants"
	EventDocumentsCollection = "event_documents"
)

var (
	ErrInvalidStatus            = errors.New("invalid event status")
	ErrInvalidParticipantStatus = errors.New("invalid participant status")
	ErrInvalidDocumentStatus    = errors.New("invalid event document status")
)

// Status is the dropdown value of an event.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ParseStatus accepts the dropdown values case-insensitively. Empty means draft.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StatusDraft, nil
	case StatusDraft, StatusPublished, StatusCancelled, StatusCompleted:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// Statuses lists the event statuses in dropdown order.
var Statuses = []Status{StatusDraft, StatusPublished, StatusCancelled, StatusCompleted}

// ReviewStatus is the approval state of a participant or an event document.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// ReviewStatuses lists the review statuses in dropdown order.
var ReviewStatuses = []ReviewStatus{ReviewPending, ReviewApproved, ReviewRejected}

func parseReview(s string, invalid error) (ReviewStatus, error) {
	switch st := ReviewStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return ReviewPending, nil
	case ReviewPending, ReviewApproved, ReviewRejected:
		return st, nil
	}
	return "", invalid
}

// ParseParticipantStatus accepts pending, approved or rejected. Empty means pending.
func ParseParticipantStatus(s string) (ReviewStatus, error) {
	return parseReview(s, ErrInvalidParticipantStatus)
}

// ParseDocumentStatus accepts pending, approved or rejected. Empty means pending.
func ParseDocumentStatus(s string) (ReviewStatus, error) {
	return parseReview(s, ErrInvalidDocumentStatus)
}

// Event is a scheduled happening providers are assigned to.
type Event struct {
	ID          directus.ID `json:"id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location,omitempty"`
	StartDate   *time.Time  `json:"start_date,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	Status      Status      `json:"status"`
	Capacity    int         `json:"capacity,omitempty"`
	Organizer   string      `json:"organizer,omitempty"`
	DateCreated *time.Time  `json:"date_created,omitempty"`
	DateUpdated *time.Time  `json:"date_updated,omitempty"`
}

// EventDetail is an event with everything hanging off it.
type EventDetail struct {
	Event
	Participants []Participant                `json:"participants"`
	TeamMembers  []providerdomain.TeamMember  `json:"team_members"`
	Documents    []EventDocument              `json:"documents"`
	Requirements []documentdomain.Requirement `json:"requirements"`
}

// EventInput is the create body of an event. Dates are parsed by the service
// and accept natural language.
type EventInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty" validate:"max=255"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date,omitempty"`
	Status      Status `json:"status,omitempty"`
	Capacity    int    `json:"capacity,omitempty" validate:"gte=0"`
	Organizer   string `json:"organizer,omitempty" validate:"max=255"`
}

// EventPatch is a partial update of an event.
type EventPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=255"`
	StartDate   *string `json:"start_date,omitempty" validate:"omitempty,min=1"`
	EndDate     *string `json:"end_date,omitempty"`
	Status      *Status `json:"status,omitempty"`
	Capacity    *int    `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	Organizer   *string `json:"organizer,omitempty" validate:"omitempty,max=255"`
}

// EventChanges is the Directus body of an event create or update.
type EventChanges struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	Organizer   *string    `json:"organizer,omitempty"`
}

// EventFilter narrows an event listing. Upcoming keeps events starting at or
// after the reference time passed to Query.
type EventFilter struct {
	Search   string
	Status   Status
	Upcoming bool
	Limit    int
	Offset   int
}

// Query translates the filter to a Directus query sorted by start date.
func (f EventFilter) Query(now time.Time) directus.Query {
	var filters []directus.Filter
	if f.Status != "" {
		filters = append(filters, directus.Eq("status", string(f.Status)))
	}
	if f.Upcoming {
		filters = append(filters, directus.Gte("start_date", now.UTC().Format(time.RFC3339)))
	}
	return directus.Query{
		Filter: directus.And(filters...),
		Search: f.Search,
		Sort:   []string{"start_date"},
		Limit:  f.Limit,
		Offset: f.Offset,
	}
}

// Participant links a provider to an event.
type Participant struct {
	ID          directus.ID  `json:"id,omitempty"`
	EventID     directus.ID  `json:"event_id"`
	ProviderID  directus.ID  `json:"provider_id"`
	Status      ReviewStatus `json:"status"`
	Notes       string       `json:"notes,omitempty"`
	DateCreated *time.Time   `json:"date_created,omitempty"`
}

// ParticipantChanges is the Directus body of a participant create or update.
type ParticipantChanges struct {
	EventID    directus.ID   `json:"event_id,omitempty"`
	ProviderID directus.ID   `json:"provider_id,omitempty"`
	Status     *ReviewStatus `json:"status,omitempty"`
	Notes      *string       `json:"notes,omitempty"`
}

// EventDocument is a file kept against an event, e.g. the venue permit.
type EventDocument struct {
	ID            directus.ID  `json:"id,omitempty"`
	EventID       directus.ID  `json:"event_id"`
	RequirementID directus.ID  `json:"requirement_id"`
	Name          string       `json:"name"`
	File          string       `json:"file,omitempty"`
	Status        ReviewStatus `json:"status"`
	Notes         string       `json:"notes,omitempty"`
	DateCreated   *time.Time   `json:"date_created,omitempty"`
}

// EventDocumentInput is the create body of an event document.
type EventDocumentInput struct {
	EventID       directus.ID  `json:"event_id" validate:"required"`
	RequirementID directus.ID  `json:"requirement_id,omitempty"`
	Name          string       `json:"name" validate:"required,max=255"`
	File          string       `json:"file,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	Status        ReviewStatus `json:"status,omitempty"`
}

// TeamMemberEvent is the Directus body attaching a team member to an event.
// The zero EventID clears the attachment.
type TeamMemberEvent struct {
	EventID directus.ID `json:"event_id"`
}
