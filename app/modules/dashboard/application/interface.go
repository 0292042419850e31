package dashboardservice

import (
	"context"
	"io"

	dashboarddomain "github.com/raynzz/eventdesk/app/modules/dashboard/domain"
)

// Service defines the dashboard service interface.
type Service interface {
	Summary(ctx context.Context) (*dashboarddomain.Summary, error)
	// ParticipantStatusChart renders participants by review status as a PNG bar chart.
	ParticipantStatusChart(ctx context.Context) ([]byte, error)
	// Export writes an XLSX workbook with one sheet per collection to w.
	Export(ctx context.Context, w io.Writer) error
}
