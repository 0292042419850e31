package providerhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	providerservice "github.com/raynzz/eventdesk/app/modules/provider/application"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	providerdb "github.com/raynzz/eventdesk/app/modules/provider/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/httpx"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
	"github.com/raynzz/eventdesk/pkg/validate"
)

// DefaultPageSize is used when a listing omits ?limit.
const DefaultPageSize = 100

// Handlers is the HTTP surface of the provider module.
type Handlers interface {
	HandleListProviders(w http.ResponseWriter, r *http.Request)
	HandleGetProvider(w http.ResponseWriter, r *http.Request)
	HandleCreateProvider(w http.ResponseWriter, r *http.Request)
	HandleUpdateProvider(w http.ResponseWriter, r *http.Request)
	HandleDeleteProvider(w http.ResponseWriter, r *http.Request)

	HandleListTeamMembers(w http.ResponseWriter, r *http.Request)
	HandleAddTeamMember(w http.ResponseWriter, r *http.Request)
	HandleGetTeamMember(w http.ResponseWriter, r *http.Request)
	HandleUpdateTeamMember(w http.ResponseWriter, r *http.Request)
	HandleRemoveTeamMember(w http.ResponseWriter, r *http.Request)
}

// ProviderHandlers implements Handlers.
type ProviderHandlers struct {
	service providerservice.Service
	logger  *slog.Logger
}

// NewProviderHandlers creates a new ProviderHandlers instance.
func NewProviderHandlers(service providerservice.Service, logger *slog.Logger) Handlers {
	return &ProviderHandlers{service: service, logger: logger}
}

func idParam(r *http.Request) directus.ID {
	return directus.ID(chi.URLParam(r, "id"))
}

func (h *ProviderHandlers) HandleListProviders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	providers, err := h.service.ListProviders(r.Context(), providerdomain.ProviderFilter{
		Search:   q.Get("search"),
		Status:   providerdomain.Status(q.Get("status")),
		Category: q.Get("category"),
		Limit:    httpx.QueryInt(r, "limit", DefaultPageSize),
		Offset:   httpx.QueryInt(r, "offset", 0),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, providers)
}

func (h *ProviderHandlers) HandleGetProvider(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetProvider(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, detail)
}

func (h *ProviderHandlers) HandleCreateProvider(w http.ResponseWriter, r *http.Request) {
	var in providerdomain.ProviderInput
	if err := httpx.Decode(w, r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.service.CreateProvider(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *ProviderHandlers) HandleUpdateProvider(w http.ResponseWriter, r *http.Request) {
	var patch providerdomain.ProviderPatch
	if err := httpx.Decode(w, r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.service.UpdateProvider(r.Context(), idParam(r), patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *ProviderHandlers) HandleDeleteProvider(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProvider(r.Context(), idParam(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProviderHandlers) HandleListTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListTeamMembers(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, members)
}

func (h *ProviderHandlers) HandleAddTeamMember(w http.ResponseWriter, r *http.Request) {
	var in providerdomain.TeamMemberInput
	if err := httpx.Decode(w, r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	in.ProviderID = idParam(r)
	m, err := h.service.AddTeamMember(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, m)
}

func (h *ProviderHandlers) HandleGetTeamMember(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.GetTeamMember(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

func (h *ProviderHandlers) HandleUpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	var patch providerdomain.TeamMemberPatch
	if err := httpx.Decode(w, r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.service.UpdateTeamMember(r.Context(), idParam(r), patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

func (h *ProviderHandlers) HandleRemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveTeamMember(r.Context(), idParam(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProviderHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "Provider request failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
	}
	httpx.WriteFailure(w, status, err, "provider store unavailable")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, validate.ErrInvalid), errors.Is(err, providerdomain.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, providerdb.ErrNotFound):
		return http.StatusNotFound
	}
	return httpx.UpstreamStatus(err)
}
