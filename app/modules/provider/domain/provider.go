package providerdomain

import (
	"errors"
	"strings"
	"time"

	"github.com/raynzz/eventdesk/pkg/directus"
)

const (
	ProvidersCollection   = "providers"
	TeamMembersCollection = "team_members"
)

// Status is the dropdown value of a provider.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ErrInvalidStatus is returned for a provider status outside the dropdown.
var ErrInvalidStatus = errors.New("invalid provider status")

// ParseStatus accepts the dropdown values case-insensitively. Empty means active.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case "", StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	}
	return "", ErrInvalidStatus
}

// Provider is a vendor that can be assigned to events.
type Provider struct {
	ID          directus.ID `json:"id,omitempty"`
	Name        string      `json:"name"`
	ContactName string      `json:"contact_name,omitempty"`
	Email       string      `json:"email,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	Category    string      `json:"category,omitempty"`
	TaxID       string      `json:"tax_id,omitempty"`
	Status      Status      `json:"status"`
	Notes       string      `json:"notes,omitempty"`
	DateCreated *time.Time  `json:"date_created,omitempty"`
	DateUpdated *time.Time  `json:"date_updated,omitempty"`
}

// ProviderDetail is a provider with its team.
type ProviderDetail struct {
	Provider
	TeamMembers []TeamMember `json:"team_members"`
}

// TeamMember is a person working for a provider. EventID is set while the
// member is attached to an event.
type TeamMember struct {
	ID             directus.ID `json:"id,omitempty"`
	ProviderID     directus.ID `json:"provider_id"`
	EventID        directus.ID `json:"event_id"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Email          string      `json:"email,omitempty"`
	Phone          string      `json:"phone,omitempty"`
	Role           string      `json:"role,omitempty"`
	DocumentNumber string      `json:"document_number,omitempty"`
}

// FullName joins first and last name.
func (m TeamMember) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// ProviderInput is the body of a provider create.
type ProviderInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	ContactName string `json:"contact_name,omitempty" validate:"max=255"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty" validate:"max=50"`
	Category    string `json:"category,omitempty" validate:"max=100"`
	TaxID       string `json:"tax_id,omitempty" validate:"max=20"`
	Status      Status `json:"status,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// ProviderPatch is a partial provider update; nil fields are left untouched.
type ProviderPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	ContactName *string `json:"contact_name,omitempty" validate:"omitempty,max=255"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=100"`
	TaxID       *string `json:"tax_id,omitempty" validate:"omitempty,max=20"`
	Status      *Status `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// TeamMemberInput is the body of a team member create.
type TeamMemberInput struct {
	ProviderID     directus.ID `json:"provider_id" validate:"required"`
	FirstName      string      `json:"first_name" validate:"required,max=100"`
	LastName       string      `json:"last_name" validate:"required,max=100"`
	Email          string      `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string      `json:"phone,omitempty" validate:"max=50"`
	Role           string      `json:"role,omitempty" validate:"max=100"`
	DocumentNumber string      `json:"document_number,omitempty" validate:"max=50"`
}

// TeamMemberPatch is a partial team member update.
type TeamMemberPatch struct {
	FirstName      *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName       *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Role           *string `json:"role,omitempty" validate:"omitempty,max=100"`
	DocumentNumber *string `json:"document_number,omitempty" validate:"omitempty,max=50"`
}

// ProviderFilter narrows a provider listing.
type ProviderFilter struct {
	Search   string
	Status   Status
	Category string
	Limit    int
	Offset   int
}

// Query translates the filter to a Directus query sorted by name.
func (f ProviderFilter) Query() directus.Query {
	var filters []directus.Filter
	if f.Status != "" {
		filters = append(filters, directus.Eq("status", string(f.Status)))
	}
	if f.Category != "" {
		filters = append(filters, directus.Eq("category", f.Category))
	}
	return directus.Query{
		Filter: directus.And(filters...),
		Search: f.Search,
		Sort:   []string{"name"},
		Limit:  f.Limit,
		Offset: f.Offset,
	}
}
