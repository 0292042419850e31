package activityhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	activityservice "github.com/raynzz/eventdesk/app/modules/activity/application"
	activitydomain "github.com/raynzz/eventdesk/app/modules/activity/domain"
	"github.com/raynzz/eventdesk/pkg/eventbus"
	"github.com/raynzz/eventdesk/pkg/httpx"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
)

// Handlers is the message and HTTP surface of the activity module.
type Handlers interface {
	// HandleDomainEvent records a published message. It never fails the
	// message: a feed entry is not worth a redelivery.
	HandleDomainEvent(msg *message.Message) ([]*message.Message, error)
	HandleRecent(w http.ResponseWriter, r *http.Request)
}

// ActivityHandlers implements Handlers.
type ActivityHandlers struct {
	service activityservice.Service
	logger  *slog.Logger
	now     func() time.Time
}

// NewActivityHandlers creates a new ActivityHandlers instance.
func NewActivityHandlers(service activityservice.Service, logger *slog.Logger) Handlers {
	return &ActivityHandlers{service: service, logger: logger, now: time.Now}
}

func (h *ActivityHandlers) HandleDomainEvent(msg *message.Message) ([]*message.Message, error) {
	ctx := msg.Context()
	correlationID := msg.Metadata.Get(eventbus.MetadataCorrelationID)
	if correlationID == "" {
		correlationID = middleware.MessageCorrelationID(msg)
	}
	if correlationID != "" {
		ctx = attr.WithCorrelationID(ctx, correlationID)
	}

	entry := activitydomain.Entry{
		ID:            msg.UUID,
		Topic:         msg.Metadata.Get(eventbus.MetadataTopic),
		CorrelationID: correlationID,
		OccurredAt:    h.occurredAt(msg),
	}
	if json.Valid(msg.Payload) {
		entry.Payload = json.RawMessage(msg.Payload)
	}

	if err := h.service.Record(ctx, entry); err != nil {
		h.logger.WarnContext(ctx, "Dropped activity entry",
			attr.ExtractCorrelationID(ctx),
			attr.String("message_id", msg.UUID),
			attr.Error(err),
		)
	}
	return nil, nil
}

func (h *ActivityHandlers) occurredAt(msg *message.Message) time.Time {
	if raw := msg.Metadata.Get(eventbus.MetadataOccurredAt); raw != "" {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			return t
		}
	}
	return h.now().UTC()
}

func (h *ActivityHandlers) HandleRecent(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Recent(r.Context(), httpx.QueryInt(r, "limit", activityservice.DefaultLimit))
	if err != nil {
		httpx.WriteFailure(w, http.StatusInternalServerError, err, "activity feed unavailable")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, entries)
}
