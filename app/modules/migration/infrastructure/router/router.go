package migrationrouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	migrationhandlers "github.com/raynzz/eventdesk/app/modules/migration/infrastructure/handlers"
)

// MigrationsPath is where the admin migration routes are mounted.
const MigrationsPath = "/api/admin/migrations"

// Router mounts the migration HTTP routes.
type Router struct {
	handlers migrationhandlers.Handlers
	admin    func(http.Handler) http.Handler
}

// NewRouter creates a new migration router. Every route is wrapped in admin.
func NewRouter(handlers migrationhandlers.Handlers, admin func(http.Handler) http.Handler) *Router {
	return &Router{handlers: handlers, admin: admin}
}

// Configure registers the migration routes on mux.
func (r *Router) Configure(mux chi.Router) {
	mux.Group(func(rt chi.Router) {
		if r.admin != nil {
			rt.Use(r.admin)
		}
		rt.Post(MigrationsPath+"/legacy", r.handlers.HandleRun)
		rt.Get(MigrationsPath+"/runs", r.handlers.HandleListRuns)
		rt.Get(MigrationsPath+"/runs/{id}", r.handlers.HandleGetRun)
	})
}
