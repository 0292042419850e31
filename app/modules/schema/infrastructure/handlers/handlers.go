package schemahandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	schemaservice "github.com/raynzz/eventdesk/app/modules/schema/application"
	"github.com/raynzz/eventdesk/pkg/httpx"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
)

// Handlers is the HTTP surface of the schema module.
type Handlers interface {
	HandlePlan(w http.ResponseWriter, r *http.Request)
	HandleSetup(w http.ResponseWriter, r *http.Request)
}

// SchemaHandlers implements Handlers.
type SchemaHandlers struct {
	service schemaservice.Service
	logger  *slog.Logger
}

// NewSchemaHandlers creates a new SchemaHandlers instance.
func NewSchemaHandlers(service schemaservice.Service, logger *slog.Logger) Handlers {
	return &SchemaHandlers{service: service, logger: logger}
}

func (h *SchemaHandlers) HandlePlan(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.service.Plan())
}

// HandleSetup runs the setup. ?dry_run=true only lists the steps.
func (h *SchemaHandlers) HandleSetup(w http.ResponseWriter, r *http.Request) {
	var opts schemaservice.SetupOptions
	if v := r.URL.Query().Get("dry_run"); v != "" {
		dry, err := strconv.ParseBool(v)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "dry_run must be a boolean")
			return
		}
		opts.DryRun = dry
	}

	report, err := h.service.Setup(r.Context(), opts)
	if err != nil {
		status := httpx.UpstreamStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.ErrorContext(r.Context(), "Schema setup failed", attr.ExtractCorrelationID(r.Context()), attr.Error(err))
		}
		httpx.WriteFailure(w, status, err, "schema setup failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, report)
}
