package eventhandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	documentdb "github.com/raynzz/eventdesk/app/modules/document/infrastructure/repositories"
	eventservice "github.com/raynzz/eventdesk/app/modules/event/application"
	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	eventdb "github.com/raynzz/eventdesk/app/modules/event/infrastructure/repositories"
	providerdb "github.com/raynzz/eventdesk/app/modules/provider/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/httpx"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
	"github.com/raynzz/eventdesk/pkg/validate"
)

// DefaultPageSize is used when a listing omits ?limit.
const DefaultPageSize = 100

// Handlers is the HTTP surface of the event module.
type Handlers interface {
	HandleListEvents(w http.ResponseWriter, r *http.Request)
	HandleGetEvent(w http.ResponseWriter, r *http.Request)
	HandleCreateEvent(w http.ResponseWriter, r *http.Request)
	HandleUpdateEvent(w http.ResponseWriter, r *http.Request)
	HandleDeleteEvent(w http.ResponseWriter, r *http.Request)

	HandleListParticipants(w http.ResponseWriter, r *http.Request)
	HandleAssignProvider(w http.ResponseWriter, r *http.Request)
	HandleSetParticipantStatus(w http.ResponseWriter, r *http.Request)
	HandleRemoveParticipant(w http.ResponseWriter, r *http.Request)

	HandleListTeamMembers(w http.ResponseWriter, r *http.Request)
	HandleAttachTeamMember(w http.ResponseWriter, r *http.Request)
	HandleDetachTeamMember(w http.ResponseWriter, r *http.Request)

	HandleListDocuments(w http.ResponseWriter, r *http.Request)
	HandleAddDocument(w http.ResponseWriter, r *http.Request)
	HandleSetDocumentStatus(w http.ResponseWriter, r *http.Request)
}

// EventHandlers implements Handlers.
type EventHandlers struct {
	service eventservice.Service
	logger  *slog.Logger
}

// NewEventHandlers creates a new EventHandlers instance.
func NewEventHandlers(service eventservice.Service, logger *slog.Logger) Handlers {
	return &EventHandlers{service: service, logger: logger}
}

type assignRequest struct {
	ProviderID directus.ID `json:"provider_id"`
}

type statusRequest struct {
	Status eventdomain.ReviewStatus `json:"status"`
	Note   string                   `json:"note,omitempty"`
}

type attachRequest struct {
	TeamMemberID directus.ID `json:"team_member_id"`
}

func idParam(r *http.Request) directus.ID {
	return directus.ID(chi.URLParam(r, "id"))
}

// ------------------------
// Events
// ------------------------

func (h *EventHandlers) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	upcoming, _ := strconv.ParseBool(q.Get("upcoming"))
	list, err := h.service.ListEvents(r.Context(), eventdomain.EventFilter{
		Search:   q.Get("search"),
		Status:   eventdomain.Status(q.Get("status")),
		Upcoming: upcoming,
		Limit:    httpx.QueryInt(r, "limit", DefaultPageSize),
		Offset:   httpx.QueryInt(r, "offset", 0),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *EventHandlers) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetEvent(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, detail)
}

func (h *EventHandlers) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var in eventdomain.EventInput
	if err := httpx.Decode(w, r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := h.service.CreateEvent(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, e)
}

func (h *EventHandlers) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var patch eventdomain.EventPatch
	if err := httpx.Decode(w, r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, err := h.service.UpdateEvent(r.Context(), idParam(r), patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}

func (h *EventHandlers) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEvent(r.Context(), idParam(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ------------------------
// Participants
// ------------------------

func (h *EventHandlers) HandleListParticipants(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListParticipants(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *EventHandlers) HandleAssignProvider(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.service.AssignProvider(r.Context(), idParam(r), req.ProviderID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *EventHandlers) HandleSetParticipantStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.service.SetParticipantStatus(r.Context(), idParam(r), req.Status, req.Note)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *EventHandlers) HandleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveParticipant(r.Context(), idParam(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ------------------------
// Team members
// ------------------------

func (h *EventHandlers) HandleListTeamMembers(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListEventTeamMembers(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *EventHandlers) HandleAttachTeamMember(w http.ResponseWriter, r *http.Request) {
	var req attachRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.service.AttachTeamMember(r.Context(), idParam(r), req.TeamMemberID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

func (h *EventHandlers) HandleDetachTeamMember(w http.ResponseWriter, r *http.Request) {
	memberID := directus.ID(chi.URLParam(r, "memberID"))
	if _, err := h.service.DetachTeamMember(r.Context(), idParam(r), memberID); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ------------------------
// Event documents
// ------------------------

func (h *EventHandlers) HandleListDocuments(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListEventDocuments(r.Context(), idParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *EventHandlers) HandleAddDocument(w http.ResponseWriter, r *http.Request) {
	var in eventdomain.EventDocumentInput
	if err := httpx.Decode(w, r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	in.EventID = idParam(r)
	d, err := h.service.AddEventDocument(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, d)
}

func (h *EventHandlers) HandleSetDocumentStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := h.service.SetEventDocumentStatus(r.Context(), idParam(r), req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

func (h *EventHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		ctx := r.Context()
		h.logger.ErrorContext(ctx, "Event request failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
	}
	httpx.WriteFailure(w, status, err, "event store unavailable")
}

func statusFor(err error) int {
	switch {
	case eventservice.IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, validate.ErrInvalid),
		errors.Is(err, eventdomain.ErrInvalidStatus),
		errors.Is(err, eventdomain.ErrInvalidParticipantStatus),
		errors.Is(err, eventdomain.ErrInvalidDocumentStatus):
		return http.StatusBadRequest
	case errors.Is(err, eventdb.ErrNotFound),
		errors.Is(err, providerdb.ErrNotFound),
		errors.Is(err, documentdb.ErrNotFound):
		return http.StatusNotFound
	}
	return httpx.UpstreamStatus(err)
}
