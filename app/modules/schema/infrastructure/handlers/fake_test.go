package schemahandlers

import (
	"context"

	schemaservice "github.com/raynzz/eventdesk/app/modules/schema/application"
	schemadomain "github.com/raynzz/eventdesk/app/modules/schema/domain"
)

// FakeService is a programmable schemaservice.Service.
type FakeService struct {
	trace []string

	PlanFunc  func() []schemadomain.Step
	SetupFunc func(ctx context.Context, opts schemaservice.SetupOptions) (*schemadomain.Report, error)
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) Plan() []schemadomain.Step {
	f.record("Plan")
	if f.PlanFunc != nil {
		return f.PlanFunc()
	}
	return []schemadomain.Step{}
}

func (f *FakeService) Setup(ctx context.Context, opts schemaservice.SetupOptions) (*schemadomain.Report, error) {
	f.record("Setup")
	if f.SetupFunc != nil {
		return f.SetupFunc(ctx, opts)
	}
	return &schemadomain.Report{DryRun: opts.DryRun}, nil
}
