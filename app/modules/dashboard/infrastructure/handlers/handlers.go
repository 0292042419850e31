package dashboardhandlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	dashboardservice "github.com/raynzz/eventdesk/app/modules/dashboard/application"
	"github.com/raynzz/eventdesk/pkg/httpx"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
)

const (
	contentTypePNG  = "image/png"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilename  = "eventdesk-export.xlsx"
)

// Handlers is the HTTP surface of the dashboard module.
type Handlers interface {
	HandleSummary(w http.ResponseWriter, r *http.Request)
	HandleParticipantChart(w http.ResponseWriter, r *http.Request)
	HandleExport(w http.ResponseWriter, r *http.Request)
}

// DashboardHandlers implements Handlers.
type DashboardHandlers struct {
	service dashboardservice.Service
	logger  *slog.Logger
}

// NewDashboardHandlers creates a new DashboardHandlers instance.
func NewDashboardHandlers(service dashboardservice.Service, logger *slog.Logger) Handlers {
	return &DashboardHandlers{service: service, logger: logger}
}

func (h *DashboardHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, summary)
}

func (h *DashboardHandlers) HandleParticipantChart(w http.ResponseWriter, r *http.Request) {
	png, err := h.service.ParticipantStatusChart(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypePNG)
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

// HandleExport buffers the workbook so a failure halfway through still
// produces a JSON error instead of a truncated download.
func (h *DashboardHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.Export(r.Context(), &buf); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

func (h *DashboardHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := httpx.UpstreamStatus(err)
	if status >= http.StatusInternalServerError {
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "Dashboard request failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
	}
	httpx.WriteFailure(w, status, err, "dashboard data unavailable")
}
