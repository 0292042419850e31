package dashboardrouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	dashboardhandlers "github.com/raynzz/eventdesk/app/modules/dashboard/infrastructure/handlers"
)

// DashboardPath is where dashboard routes are mounted.
const DashboardPath = "/api/dashboard"

// Router mounts the dashboard HTTP routes.
type Router struct {
	handlers      dashboardhandlers.Handlers
	authenticated func(http.Handler) http.Handler
}

// NewRouter creates a new dashboard router.
func NewRouter(handlers dashboardhandlers.Handlers, authenticated func(http.Handler) http.Handler) *Router {
	return &Router{handlers: handlers, authenticated: authenticated}
}

// Configure registers the dashboard routes on mux.
func (r *Router) Configure(mux chi.Router) {
	mux.Group(func(rt chi.Router) {
		if r.authenticated != nil {
			rt.Use(r.authenticated)
		}
		rt.Get(DashboardPath, r.handlers.HandleSummary)
		rt.Get(DashboardPath+"/participants.png", r.handlers.HandleParticipantChart)
		rt.Get(DashboardPath+"/export.xlsx", r.handlers.HandleExport)
	})
}
