package documentdomain

import (
	"errors"
	"strings"
	"time"

	"github.com/raynzz/eventdesk/pkg/directus"
)

const (
	RequirementsCollection      = "document_requirements"
	ProviderDocumentsCollection = "provider_documents"
)

var (
	// ErrInvalidStatus is returned for a document status outside the dropdown.
	ErrInvalidStatus = errors.New("invalid document status")
	// ErrInvalidAppliesTo is returned for an applies_to value other than provider or team_member.
	ErrInvalidAppliesTo = errors.New("invalid applies_to")
	// ErrScope is returned when a requirement is both global and event specific, or neither.
	ErrScope = errors.New("requirement must be either global or tied to one event")
)

// AppliesTo says who has to hand in documents for a requirement.
type AppliesTo string

const (
	AppliesToProvider   AppliesTo = "provider"
	AppliesToTeamMember AppliesTo = "team_member"
)

// ParseAppliesTo accepts the dropdown values case-insensitively. Empty means provider.
func ParseAppliesTo(s string) (AppliesTo, error) {
	switch AppliesTo(strings.ToLower(strings.TrimSpace(s))) {
	case "", AppliesToProvider:
		return AppliesToProvider, nil
	case AppliesToTeamMember:
		return AppliesToTeamMember, nil
	}
	return "", ErrInvalidAppliesTo
}

// Status is the review state of a provider document.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus accepts the dropdown values case-insensitively. Empty means pending.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StatusPending, nil
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// Requirement is a compliance document type, e.g. an insurance certificate.
type Requirement struct {
	ID          directus.ID `json:"id,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	IsGlobal    bool        `json:"is_global"`
	EventID     directus.ID `json:"event_id"`
	AppliesTo   AppliesTo   `json:"applies_to"`
	Mandatory   bool        `json:"mandatory"`
}

// CheckScope enforces that a requirement is global or tied to exactly one event.
func CheckScope(isGlobal bool, eventID directus.ID) error {
	if isGlobal == eventID.IsZero() {
		return nil
	}
	return ErrScope
}

// AppliesToEvent reports whether r is in force for eventID.
func (r Requirement) AppliesToEvent(eventID directus.ID) bool {
	return r.IsGlobal || r.EventID == eventID
}

// RequirementInput is the create body of a requirement.
type RequirementInput struct {
	Name        string      `json:"name" validate:"required,max=255"`
	Description string      `json:"description,omitempty"`
	IsGlobal    bool        `json:"is_global"`
	EventID     directus.ID `json:"event_id,omitempty"`
	AppliesTo   AppliesTo   `json:"applies_to,omitempty"`
	Mandatory   bool        `json:"mandatory"`
}

// RequirementPatch is a partial update of a requirement.
type RequirementPatch struct {
	Name        *string      `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string      `json:"description,omitempty"`
	IsGlobal    *bool        `json:"is_global,omitempty"`
	EventID     *directus.ID `json:"event_id,omitempty"`
	AppliesTo   *AppliesTo   `json:"applies_to,omitempty"`
	Mandatory   *bool        `json:"mandatory,omitempty"`
}

// Apply returns r with the patch applied.
func (p RequirementPatch) Apply(r Requirement) Requirement {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.IsGlobal != nil {
		r.IsGlobal = *p.IsGlobal
	}
	if p.EventID != nil {
		r.EventID = *p.EventID
	}
	if p.AppliesTo != nil {
		r.AppliesTo = *p.AppliesTo
	}
	if p.Mandatory != nil {
		r.Mandatory = *p.Mandatory
	}
	return r
}

// RequirementFilter narrows a requirement listing. EventID returns the
// requirements applicable to that event; GlobalOnly returns only global ones.
type RequirementFilter struct {
	EventID    directus.ID
	GlobalOnly bool
}

// Query translates the filter to a Directus query sorted by name.
func (f RequirementFilter) Query() directus.Query {
	q := directus.Query{Sort: []string{"name"}, Limit: directus.LimitAll}
	switch {
	case f.GlobalOnly:
		q.Filter = directus.Eq("is_global", true)
	case !f.EventID.IsZero():
		q.Filter = ApplicableFilter(f.EventID)
	}
	return q
}

// ApplicableFilter matches global requirements and those of eventID.
func ApplicableFilter(eventID directus.ID) directus.Filter {
	return directus.Or(directus.Eq("is_global", true), directus.Eq("event_id", eventID))
}

// ProviderDocument is a file a provider handed in against a requirement.
type ProviderDocument struct {
	ID            directus.ID `json:"id,omitempty"`
	ProviderID    directus.ID `json:"provider_id"`
	RequirementID directus.ID `json:"requirement_id"`
	EventID       directus.ID `json:"event_id"`
	TeamMemberID  directus.ID `json:"team_member_id"`
	File          string      `json:"file,omitempty"`
	Status        Status      `json:"status"`
	ExpiresAt     *time.Time  `json:"expires_at,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	ReviewedAt    *time.Time  `json:"reviewed_at,omitempty"`
	DateCreated   *time.Time  `json:"date_created,omitempty"`
}

// Expired reports whether the document has an expiry before now.
func (d ProviderDocument) Expired(now time.Time) bool {
	return d.ExpiresAt != nil && d.ExpiresAt.Before(now)
}

// SubmitInput is the create body of a provider document.
type SubmitInput struct {
	ProviderID    directus.ID `json:"provider_id" validate:"required"`
	RequirementID directus.ID `json:"requirement_id" validate:"required"`
	EventID       directus.ID `json:"event_id,omitempty"`
	TeamMemberID  directus.ID `json:"team_member_id,omitempty"`
	File          string      `json:"file" validate:"required"`
	ExpiresAt     *time.Time  `json:"expires_at,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	Status        Status      `json:"status"`
}

// Review is the body of a document review.
type Review struct {
	Status     Status     `json:"status" validate:"required"`
	Notes      *string    `json:"notes,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}
