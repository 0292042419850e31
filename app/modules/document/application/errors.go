package documentservice

import (
	"errors"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	documentdb "github.com/raynzz/eventdesk/app/modules/document/infrastructure/repositories"
	providerservice "github.com/raynzz/eventdesk/app/modules/provider/application"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/validate"
)

// ErrRequirementMismatch is returned when a document targets a requirement
// of another event.
var ErrRequirementMismatch = errors.New("requirement does not apply to this event")

// ErrTeamMemberMismatch is returned when a document names a team member of
// another provider.
var ErrTeamMemberMismatch = errors.New("team member does not belong to this provider")

// IsClientError reports errors caused by the request rather than the system.
func IsClientError(err error) bool {
	return directus.IsClientError(err) ||
		providerservice.IsClientError(err) ||
		errors.Is(err, validate.ErrInvalid) ||
		errors.Is(err, documentdb.ErrNotFound) ||
		errors.Is(err, documentdomain.ErrInvalidStatus) ||
		errors.Is(err, documentdomain.ErrInvalidAppliesTo) ||
		errors.Is(err, documentdomain.ErrScope) ||
		errors.Is(err, ErrRequirementMismatch) ||
		errors.Is(err, ErrTeamMemberMismatch)
}
