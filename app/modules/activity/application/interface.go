package activityservice

import (
	"context"

	activitydomain "github.com/raynzz/eventdesk/app/modules/activity/domain"
)

// DefaultLimit is the number of entries Recent returns when no limit is given.
const DefaultLimit = 50

// Service defines the activity feed.
type Service interface {
	Record(ctx context.Context, e activitydomain.Entry) error
	// Recent returns the newest entries first. A non-positive limit means DefaultLimit.
	Recent(ctx context.Context, limit int) ([]activitydomain.Entry, error)
}
