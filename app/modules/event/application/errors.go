package eventservice

import (
	"errors"

	documentservice "github.com/raynzz/eventdesk/app/modules/document/application"
	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	eventdb "github.com/raynzz/eventdesk/app/modules/event/infrastructure/repositories"
	providerservice "github.com/raynzz/eventdesk/app/modules/provider/application"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/validate"
)

var (
	// ErrAlreadyAssigned is returned when a provider already participates in the event.
	ErrAlreadyAssigned = errors.New("provider already assigned to event")
	// ErrNotParticipant is returned when a team member's provider is not assigned to the event.
	ErrNotParticipant = errors.New("provider is not a participant of the event")
	// ErrAttachedElsewhere is returned when a team member is attached to another event.
	ErrAttachedElsewhere = errors.New("team member is attached to another event")
	// ErrNotAttached is returned when detaching a team member that is not attached to the event.
	ErrNotAttached = errors.New("team member is not attached to the event")
)

// IsConflict reports errors that contradict the current state of the event.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyAssigned) ||
		errors.Is(err, ErrNotParticipant) ||
		errors.Is(err, ErrAttachedElsewhere) ||
		errors.Is(err, ErrNotAttached)
}

// IsClientError reports errors caused by the request rather than the system.
func IsClientError(err error) bool {
	return directus.IsClientError(err) ||
		providerservice.IsClientError(err) ||
		documentservice.IsClientError(err) ||
		IsConflict(err) ||
		errors.Is(err, validate.ErrInvalid) ||
		errors.Is(err, eventdb.ErrNotFound) ||
		errors.Is(err, eventdomain.ErrInvalidStatus) ||
		errors.Is(err, eventdomain.ErrInvalidParticipantStatus) ||
		errors.Is(err, eventdomain.ErrInvalidDocumentStatus)
}
