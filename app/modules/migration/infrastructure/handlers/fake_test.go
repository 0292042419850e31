package migrationhandlers

import (
	"context"

	"github.com/google/uuid"
	migrationservice "github.com/raynzz/eventdesk/app/modules/migration/application"
	migrationdomain "github.com/raynzz/eventdesk/app/modules/migration/domain"
)

// FakeService is a programmable migrationservice.Service.
type FakeService struct {
	trace []string

	RunFunc      func(ctx context.Context, opts migrationservice.Options) (*migrationdomain.Report, error)
	ListRunsFunc func(ctx context.Context, limit int) ([]migrationdomain.RunSummary, error)
	GetRunFunc   func(ctx context.Context, id uuid.UUID) (*migrationdomain.Report, error)
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) Run(ctx context.Context, opts migrationservice.Options) (*migrationdomain.Report, error) {
	f.record("Run")
	if f.RunFunc != nil {
		return f.RunFunc(ctx, opts)
	}
	return &migrationdomain.Report{DryRun: opts.DryRun, IncludeEvents: opts.IncludeEvents}, nil
}

func (f *FakeService) ListRuns(ctx context.Context, limit int) ([]migrationdomain.RunSummary, error) {
	f.record("ListRuns")
	if f.ListRunsFunc != nil {
		return f.ListRunsFunc(ctx, limit)
	}
	return []migrationdomain.RunSummary{}, nil
}

func (f *FakeService) GetRun(ctx context.Context, id uuid.UUID) (*migrationdomain.Report, error) {
	f.record("GetRun")
	if f.GetRunFunc != nil {
		return f.GetRunFunc(ctx, id)
	}
	return &migrationdomain.Report{RunID: id}, nil
}
