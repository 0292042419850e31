package dashboardhandlers

import (
	"context"
	"io"

	dashboarddomain "github.com/raynzz/eventdesk/app/modules/dashboard/domain"
)

// FakeService is a programmable dashboardservice.Service.
type FakeService struct {
	trace []string

	SummaryFunc                func(ctx context.Context) (*dashboarddomain.Summary, error)
	ParticipantStatusChartFunc func(ctx context.Context) ([]byte, error)
	ExportFunc                 func(ctx context.Context, w io.Writer) error
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	return f.trace
}

func (f *FakeService) Summary(ctx context.Context) (*dashboarddomain.Summary, error) {
	f.record("Summary")
	if f.SummaryFunc != nil {
		return f.SummaryFunc(ctx)
	}
	return &dashboarddomain.Summary{}, nil
}

func (f *FakeService) ParticipantStatusChart(ctx context.Context) ([]byte, error) {
	f.record("ParticipantStatusChart")
	if f.ParticipantStatusChartFunc != nil {
		return f.ParticipantStatusChartFunc(ctx)
	}
	return []byte("png"), nil
}

func (f *FakeService) Export(ctx context.Context, w io.Writer) error {
	f.record("Export")
	if f.ExportFunc != nil {
		return f.ExportFunc(ctx, w)
	}
	_, err := w.Write([]byte("xlsx"))
	return err
}
