package schemaservice

import (
	"context"

	schemadomain "github.com/raynzz/eventdesk/app/modules/schema/domain"
)

// SetupOptions controls a setup run.
type SetupOptions struct {
	// DryRun lists the steps without calling Directus.
	DryRun bool `json:"dry_run"`
}

// Service creates the dashboard collections in Directus.
type Service interface {
	Plan() []schemadomain.Step
	Setup(ctx context.Context, opts SetupOptions) (*schemadomain.Report, error)
}
