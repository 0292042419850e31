package providerrouter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// namedHandlers answers every route with the handler name and the {id} param.
type namedHandlers struct{}

func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Handler", name)
		w.Header().Set("X-ID", chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusOK)
	}
}

func (namedHandlers) HandleListProviders(w http.ResponseWriter, r *http.Request) {
	named("ListProviders")(w, r)
}

func (namedHandlers) HandleGetProvider(w http.ResponseWriter, r *http.Request) {
	named("GetProvider")(w, r)
}

func (namedHandlers) HandleCreateProvider(w http.ResponseWriter, r *http.Request) {
	named("CreateProvider")(w, r)
}

func (namedHandlers) HandleUpdateProvider(w http.ResponseWriter, r *http.Request) {
	named("UpdateProvider")(w, r)
}

func (namedHandlers) HandleDeleteProvider(w http.ResponseWriter, r *http.Request) {
	named("DeleteProvider")(w, r)
}

func (namedHandlers) HandleListTeamMembers(w http.ResponseWriter, r *http.Request) {
	named("ListTeamMembers")(w, r)
}

func (namedHandlers) HandleAddTeamMember(w http.ResponseWriter, r *http.Request) {
	named("AddTeamMember")(w, r)
}

func (namedHandlers) HandleGetTeamMember(w http.ResponseWriter, r *http.Request) {
	named("GetTeamMember")(w, r)
}

func (namedHandlers) HandleUpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	named("UpdateTeamMember")(w, r)
}

func (namedHandlers) HandleRemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	named("RemoveTeamMember")(w, r)
}

func TestRouter_Routes(t *testing.T) {
	requireToken := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
	mux := chi.NewRouter()
	NewRouter(namedHandlers{}, requireToken).Configure(mux)

	tests := []struct {
		method      string
		path        string
		wantHandler string
		wantID      string
	}{
		{http.MethodGet, "/api/providers", "ListProviders", ""},
		{http.MethodPost, "/api/providers", "CreateProvider", ""},
		{http.MethodGet, "/api/providers/7", "GetProvider", "7"},
		{http.MethodPatch, "/api/providers/7", "UpdateProvider", "7"},
		{http.MethodDelete, "/api/providers/7", "DeleteProvider", "7"},
		{http.MethodGet, "/api/providers/7/team-members", "ListTeamMembers", "7"},
		{http.MethodPost, "/api/providers/7/team-members", "AddTeamMember", "7"},
		{http.MethodGet, "/api/team-members/3", "GetTeamMember", "3"},
		{http.MethodPatch, "/api/team-members/3", "UpdateTeamMember", "3"},
		{http.MethodDelete, "/api/team-members/3", "RemoveTeamMember", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", "Bearer t")
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.wantHandler, rr.Header().Get("X-Handler"))
			assert.Equal(t, tt.wantID, rr.Header().Get("X-ID"))
		})
	}

	t.Run("anonymous", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/providers", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
