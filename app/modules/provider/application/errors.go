package providerservice

import (
	"errors"

	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	providerdb "github.com/raynzz/eventdesk/app/modules/provider/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/validate"
)

// IsClientError reports errors caused by the request rather than the system.
func IsClientError(err error) bool {
	return directus.IsClientError(err) ||
		errors.Is(err, validate.ErrInvalid) ||
		errors.Is(err, providerdb.ErrNotFound) ||
		errors.Is(err, providerdomain.ErrInvalidStatus)
}
