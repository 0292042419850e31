package documentrouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	documenthandlers "github.com/raynzz/eventdesk/app/modules/document/infrastructure/handlers"
)

const (
	RequirementsPath      = "/api/document-requirements"
	ProviderDocumentsPath = "/api/provider-documents"
)

// Router mounts the document HTTP routes.
type Router struct {
	handlers      documenthandlers.Handlers
	authenticated func(http.Handler) http.Handler
}

// NewRouter creates a new document router.
func NewRouter(handlers documenthandlers.Handlers, authenticated func(http.Handler) http.Handler) *Router {
	return &Router{handlers: handlers, authenticated: authenticated}
}

// Configure registers the document routes on mux, including the ones nested
// under /api/providers/{id} and /api/events/{id}.
func (r *Router) Configure(mux chi.Router) {
	mux.Group(func(rt chi.Router) {
		if r.authenticated != nil {
			rt.Use(r.authenticated)
		}

		rt.Get(RequirementsPath, r.handlers.HandleListRequirements)
		rt.Post(RequirementsPath, r.handlers.HandleCreateRequirement)
		rt.Get(RequirementsPath+"/{id}", r.handlers.HandleGetRequirement)
		rt.Patch(RequirementsPath+"/{id}", r.handlers.HandleUpdateRequirement)
		rt.Delete(RequirementsPath+"/{id}", r.handlers.HandleDeleteRequirement)

		rt.Get(ProviderDocumentsPath+"/{id}", r.handlers.HandleGetProviderDocument)
		rt.Post(ProviderDocumentsPath+"/{id}/review", r.handlers.HandleReviewProviderDocument)

		rt.Get("/api/providers/{id}/documents", r.handlers.HandleListProviderDocuments)
		rt.Post("/api/providers/{id}/documents", r.handlers.HandleSubmitProviderDocument)

		rt.Get("/api/events/{id}/requirements", r.handlers.HandleEventRequirements)
		rt.Get("/api/events/{id}/compliance/{providerID}", r.handlers.HandleCompliance)
	})
}
