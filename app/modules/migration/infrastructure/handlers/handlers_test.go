package migrationhandlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	migrationservice "github.com/raynzz/eventdesk/app/modules/migration/application"
	migrationdomain "github.com/raynzz/eventdesk/app/modules/migration/domain"
	migrationdb "github.com/raynzz/eventdesk/app/modules/migration/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/stretchr/testify/assert"
)

func newHandlers(s *FakeService) Handlers {
	return NewMigrationHandlers(s, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleRun(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		body       string
		runErr     error
		wantStatus int
		wantOpts   migrationservice.Options
		wantCalls  []string
	}{
		{name: "defaults", url: "/", wantStatus: http.StatusOK, wantCalls: []string{"Run"}},
		{name: "query flags", url: "/?include_events=true&dry_run=1", wantStatus: http.StatusOK, wantOpts: migrationservice.Options{IncludeEvents: true, DryRun: true}, wantCalls: []string{"Run"}},
		{name: "json body", url: "/", body: `{"include_events":true}`, wantStatus: http.StatusOK, wantOpts: migrationservice.Options{IncludeEvents: true}, wantCalls: []string{"Run"}},
		{name: "unknown field", url: "/", body: `{"everything":true}`, wantStatus: http.StatusBadRequest},
		{name: "bad flag", url: "/?dry_run=perhaps", wantStatus: http.StatusBadRequest},
		{name: "admin token rejected", url: "/", runErr: &directus.Error{Status: http.StatusUnauthorized}, wantStatus: http.StatusUnauthorized, wantCalls: []string{"Run"}},
		{name: "cms down", url: "/", runErr: &directus.Error{Status: http.StatusBadGateway}, wantStatus: http.StatusBadGateway, wantCalls: []string{"Run"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got migrationservice.Options
			s := &FakeService{RunFunc: func(ctx context.Context, opts migrationservice.Options) (*migrationdomain.Report, error) {
				got = opts
				if tt.runErr != nil {
					return nil, tt.runErr
				}
				return &migrationdomain.Report{}, nil
			}}

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(http.MethodPost, "/api/admin/migrations/legacy"+strings.TrimPrefix(tt.url, "/"), body)
			rr := httptest.NewRecorder()
			newHandlers(s).HandleRun(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalls, s.Trace())
			assert.Equal(t, tt.wantOpts, got)
			if tt.wantStatus == http.StatusBadGateway {
				assert.Contains(t, rr.Body.String(), "migration failed")
			}
		})
	}
}

func TestHandleRun_AbortedRunID(t *testing.T) {
	id := uuid.MustParse("6f1c2f8e-1d2a-4c3b-9e4f-5a6b7c8d9e0f")
	s := &FakeService{RunFunc: func(ctx context.Context, opts migrationservice.Options) (*migrationdomain.Report, error) {
		return &migrationdomain.Report{RunID: id, Aborted: "token rejected"}, &directus.Error{Status: http.StatusUnauthorized}
	}}

	rr := httptest.NewRecorder()
	newHandlers(s).HandleRun(rr, httptest.NewRequest(http.MethodPost, "/api/admin/migrations/legacy", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, id.String(), rr.Header().Get(RunIDHeader))
}

func TestHandleGetRun(t *testing.T) {
	known := uuid.New()
	s := &FakeService{GetRunFunc: func(ctx context.Context, id uuid.UUID) (*migrationdomain.Report, error) {
		if id != known {
			return nil, migrationdb.ErrNotFound
		}
		return &migrationdomain.Report{RunID: id}, nil
	}}
	h := newHandlers(s)

	tests := []struct {
		name string
		id   string
		want int
	}{
		{name: "found", id: known.String(), want: http.StatusOK},
		{name: "missing", id: uuid.NewString(), want: http.StatusNotFound},
		{name: "not a uuid", id: "42", want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/migrations/runs/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rr := httptest.NewRecorder()
			h.HandleGetRun(rr, req)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestHandleListRuns(t *testing.T) {
	var gotLimit int
	s := &FakeService{ListRunsFunc: func(ctx context.Context, limit int) ([]migrationdomain.RunSummary, error) {
		gotLimit = limit
		return []migrationdomain.RunSummary{{Created: 3}}, nil
	}}
	rr := httptest.NewRecorder()
	newHandlers(s).HandleListRuns(rr, httptest.NewRequest(http.MethodGet, "/api/admin/migrations/runs?limit=5", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, gotLimit)
	assert.Contains(t, rr.Body.String(), `"created":3`)
}
