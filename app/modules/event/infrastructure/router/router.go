package eventrouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	eventhandlers "github.com/raynzz/eventdesk/app/modules/event/infrastructure/handlers"
)

const (
	// EventsPath is where event routes are mounted.
	EventsPath = "/api/events"
	// ParticipantsPath is where single participant routes are mounted.
	ParticipantsPath = "/api/participants"
	// EventDocumentsPath is where single event document routes are mounted.
	EventDocumentsPath = "/api/event-documents"
)

// Router mounts the event HTTP routes.
type Router struct {
	handlers      eventhandlers.Handlers
	authenticated func(http.Handler) http.Handler
}

// NewRouter creates a new event router.
func NewRouter(handlers eventhandlers.Handlers, authenticated func(http.Handler) http.Handler) *Router {
	return &Router{handlers: handlers, authenticated: authenticated}
}

// Configure registers the event routes on mux.
func (r *Router) Configure(mux chi.Router) {
	mux.Group(func(rt chi.Router) {
		if r.authenticated != nil {
			rt.Use(r.authenticated)
		}

		rt.Get(EventsPath, r.handlers.HandleListEvents)
		rt.Post(EventsPath, r.handlers.HandleCreateEvent)
		rt.Get(EventsPath+"/{id}", r.handlers.HandleGetEvent)
		rt.Patch(EventsPath+"/{id}", r.handlers.HandleUpdateEvent)
		rt.Delete(EventsPath+"/{id}", r.handlers.HandleDeleteEvent)

		rt.Get(EventsPath+"/{id}/participants", r.handlers.HandleListParticipants)
		rt.Post(EventsPath+"/{id}/participants", r.handlers.HandleAssignProvider)
		rt.Patch(ParticipantsPath+"/{id}", r.handlers.HandleSetParticipantStatus)
		rt.Delete(ParticipantsPath+"/{id}", r.handlers.HandleRemoveParticipant)

		rt.Get(EventsPath+"/{id}/team-members", r.handlers.HandleListTeamMembers)
		rt.Post(EventsPath+"/{id}/team-members", r.handlers.HandleAttachTeamMember)
		rt.Delete(EventsPath+"/{id}/team-members/{memberID}", r.handlers.HandleDetachTeamMember)

		rt.Get(EventsPath+"/{id}/documents", r.handlers.HandleListDocuments)
		rt.Post(EventsPath+"/{id}/documents", r.handlers.HandleAddDocument)
		rt.Patch(EventDocumentsPath+"/{id}", r.handlers.HandleSetDocumentStatus)
	})
}
