package providerrouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	providerhandlers "github.com/raynzz/eventdesk/app/modules/provider/infrastructure/handlers"
)

const (
	// ProvidersPath is where provider routes are mounted.
	ProvidersPath = "/api/providers"
	// TeamMembersPath is where single team member routes are mounted.
	TeamMembersPath = "/api/team-members"
)

// Router mounts the provider HTTP routes.
type Router struct {
	handlers      providerhandlers.Handlers
	authenticated func(http.Handler) http.Handler
}

// NewRouter creates a new provider router. Every route is wrapped in
// authenticated.
func NewRouter(handlers providerhandlers.Handlers, authenticated func(http.Handler) http.Handler) *Router {
	return &Router{handlers: handlers, authenticated: authenticated}
}

// Configure registers the provider routes on mux. Routes are registered with
// full paths so other modules can add siblings under /api/providers/{id}.
func (r *Router) Configure(mux chi.Router) {
	mux.Group(func(rt chi.Router) {
		if r.authenticated != nil {
			rt.Use(r.authenticated)
		}

		rt.Get(ProvidersPath, r.handlers.HandleListProviders)
		rt.Post(ProvidersPath, r.handlers.HandleCreateProvider)
		rt.Get(ProvidersPath+"/{id}", r.handlers.HandleGetProvider)
		rt.Patch(ProvidersPath+"/{id}", r.handlers.HandleUpdateProvider)
		rt.Delete(ProvidersPath+"/{id}", r.handlers.HandleDeleteProvider)

		rt.Get(ProvidersPath+"/{id}/team-members", r.handlers.HandleListTeamMembers)
		rt.Post(ProvidersPath+"/{id}/team-members", r.handlers.HandleAddTeamMember)

		rt.Get(TeamMembersPath+"/{id}", r.handlers.HandleGetTeamMember)
		rt.Patch(TeamMembersPath+"/{id}", r.handlers.HandleUpdateTeamMember)
		rt.Delete(TeamMembersPath+"/{id}", r.handlers.HandleRemoveTeamMember)
	})
}
