package documenthandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	documentservice "github.com/raynzz/eventdesk/app/modules/document/application"
	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	documentdb "github.com/raynzz/eventdesk/app/modules/document/infrastructure/repositories"
	providerdb "github.com/raynzz/eventdesk/app/modules/provider/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/httpx"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
	"github.com/raynzz/eventdesk/pkg/validate"
)

// Handlers is the HTTP surface of the document module.
type Handlers interface {
	HandleListRequirements(w http.ResponseWriter, r *http.Request)
	HandleGetRequirement(w http.ResponseWriter, r *http.Request)
	HandleCreateRequirement(w http.ResponseWriter, r *http.Request)
	HandleUpdateRequirement(w http.ResponseWriter, r *http.Request)
	HandleDeleteRequirement(w http.ResponseWriter, r *http.Request)
	HandleEventRequirements(w http.ResponseWriter, r *http.Request)

	HandleListProviderDocuments(w http.ResponseWriter, r *http.Request)
	HandleSubmitProviderDocument(w http.ResponseWriter, r *http.Request)
	HandleGetProviderDocument(w http.ResponseWriter, r *http.Request)
	HandleReviewProviderDocument(w http.ResponseWriter, r *http.Request)

	HandleCompliance(w http.ResponseWriter, r *http.Request)
}

// DocumentHandlers implements Handlers.
type DocumentHandlers struct {
	service documentservice.Service
	logger  *slog.Logger
}

// NewDocumentHandlers creates a new DocumentHandlers instance.
func NewDocumentHandlers(service documentservice.Service, logger *slog.Logger) Handlers {
	return &DocumentHandlers{service: service, logger: logger}
}

type reviewRequest struct {
	Status documentdomain.Status `json:"status"`
	Notes  string                `json:"notes"`
}

func idParam(r *http.Request) directus.ID {
	return directus.ID(chi.URLParam(r, "id"))
}

func (h *DocumentHandlers) HandleListRequirements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	global, _ := strconv.ParseBool(q.Get("global"))
	reqs, err := h.service.ListRequirements(r.Context(), documentdomain.RequirementFilter{
		EventID:    directus.ID(q.Get("event_id")),
		GlobalOnly: global,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, reqs)
}

func (h *DocumentHandlers) HandleGetRequirement(w http.ResponseWriter, r *http.Request) {
	req, err := h.service.GetRequirement(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, req)
}

func (h *DocumentHandlers) HandleCreateRequirement(w http.ResponseWriter, r *http.Request) {
	var in documentdomain.RequirementInput
	if err := httpx.Decode(w, r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := h.service.CreateRequirement(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, req)
}

func (h *DocumentHandlers) HandleUpdateRequirement(w http.ResponseWriter, r *http.Request) {
	var patch documentdomain.RequirementPatch
	if err := httpx.Decode(w, r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	req, err := h.service.UpdateRequirement(r.Context(), idParam(r), patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, req)
}

func (h *DocumentHandlers) HandleDeleteRequirement(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRequirement(r.Context(), idParam(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DocumentHandlers) HandleEventRequirements(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.service.ApplicableRequirements(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, reqs)
}

func (h *DocumentHandlers) HandleListProviderDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.ListProviderDocuments(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, docs)
}

func (h *DocumentHandlers) HandleSubmitProviderDocument(w http.ResponseWriter, r *http.Request) {
	var in documentdomain.SubmitInput
	if err := httpx.Decode(w, r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	in.ProviderID = idParam(r)
	doc, err := h.service.SubmitProviderDocument(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandlers) HandleGetProviderDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.GetProviderDocument(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandlers) HandleReviewProviderDocument(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, err := h.service.ReviewProviderDocument(r.Context(), idParam(r), req.Status, req.Notes)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandlers) HandleCompliance(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Compliance(r.Context(), idParam(r), directus.ID(chi.URLParam(r, "providerID")))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *DocumentHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "Document request failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
	}
	httpx.WriteFailure(w, status, err, "document store unavailable")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, validate.ErrInvalid),
		errors.Is(err, documentdomain.ErrInvalidStatus),
		errors.Is(err, documentdomain.ErrInvalidAppliesTo),
		errors.Is(err, documentdomain.ErrScope):
		return http.StatusBadRequest
	case errors.Is(err, documentservice.ErrRequirementMismatch),
		errors.Is(err, documentservice.ErrTeamMemberMismatch):
		return http.StatusConflict
	case errors.Is(err, documentdb.ErrNotFound), errors.Is(err, providerdb.ErrNotFound):
		return http.StatusNotFound
	}
	return httpx.UpstreamStatus(err)
}
