package schemarouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	schemahandlers "github.com/raynzz/eventdesk/app/modules/schema/infrastructure/handlers"
)

// SchemaPath is where the admin schema routes are mounted.
const SchemaPath = "/api/admin/schema"

// Router mounts the schema HTTP routes.
type Router struct {
	handlers schemahandlers.Handlers
	admin    func(http.Handler) http.Handler
}

// NewRouter creates a new schema router. Every route is wrapped in admin.
func NewRouter(handlers schemahandlers.Handlers, admin func(http.Handler) http.Handler) *Router {
	return &Router{handlers: handlers, admin: admin}
}

// Configure registers the schema routes on mux.
func (r *Router) Configure(mux chi.Router) {
	mux.Group(func(rt chi.Router) {
		if r.admin != nil {
			rt.Use(r.admin)
		}
		rt.Get(SchemaPath+"/plan", r.handlers.HandlePlan)
		rt.Post(SchemaPath+"/setup", r.handlers.HandleSetup)
	})
}
