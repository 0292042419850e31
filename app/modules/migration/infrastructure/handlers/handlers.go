package migrationhandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	migrationservice "github.com/raynzz/eventdesk/app/modules/migration/application"
	migrationdb "github.com/raynzz/eventdesk/app/modules/migration/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/httpx"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
)

// Handlers is the HTTP surface of the migration module.
type Handlers interface {
	HandleRun(w http.ResponseWriter, r *http.Request)
	HandleListRuns(w http.ResponseWriter, r *http.Request)
	HandleGetRun(w http.ResponseWriter, r *http.Request)
}

// MigrationHandlers implements Handlers.
type MigrationHandlers struct {
	service migrationservice.Service
	logger  *slog.Logger
}

// NewMigrationHandlers creates a new MigrationHandlers instance.
func NewMigrationHandlers(service migrationservice.Service, logger *slog.Logger) Handlers {
	return &MigrationHandlers{service: service, logger: logger}
}

// HandleRun starts a run. Options come from a JSON body or, without one, from
// the include_events and dry_run query parameters.
// RunIDHeader names the stored run when a migration aborts.
const RunIDHeader = "X-Migration-Run-ID"

func (h *MigrationHandlers) HandleRun(w http.ResponseWriter, r *http.Request) {
	var opts migrationservice.Options
	if r.ContentLength > 0 {
		if err := httpx.Decode(w, r, &opts); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	} else {
		q := r.URL.Query()
		for name, dst := range map[string]*bool{"include_events": &opts.IncludeEvents, "dry_run": &opts.DryRun} {
			v := q.Get(name)
			if v == "" {
				continue
			}
			b, err := strconv.ParseBool(v)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, name+" must be a boolean")
				return
			}
			*dst = b
		}
	}

	report, err := h.service.Run(r.Context(), opts)
	if err != nil {
		if report != nil {
			// Aborted runs are stored; the id points at the partial report.
			w.Header().Set(RunIDHeader, report.RunID.String())
		}
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, report)
}

func (h *MigrationHandlers) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.service.ListRuns(r.Context(), httpx.QueryInt(r, "limit", migrationservice.DefaultRunsLimit))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, runs)
}

func (h *MigrationHandlers) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid run id")
		return
	}
	report, err := h.service.GetRun(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, report)
}

func (h *MigrationHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Migration request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
	}
	httpx.WriteFailure(w, status, err, "migration failed")
}

func statusFor(err error) int {
	if errors.Is(err, migrationdb.ErrNotFound) {
		return http.StatusNotFound
	}
	return httpx.UpstreamStatus(err)
}
