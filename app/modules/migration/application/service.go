package migrationservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	migrationdomain "github.com/raynzz/eventdesk/app/modules/migration/domain"
	migrationdb "github.com/raynzz/eventdesk/app/modules/migration/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/eventbus"
	"github.com/raynzz/eventdesk/pkg/events"
	"github.com/raynzz/eventdesk/pkg/observability"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// DefaultRunsLimit bounds ListRuns when no limit is given.
const DefaultRunsLimit = 20

// MigrationService implements the Service interface.
type MigrationService struct {
	collections migrationdb.Collections
	runs        migrationdb.RunRepository
	db          *bun.DB
	publisher   eventbus.Publisher
	logger      *slog.Logger
	telemetry   observability.Telemetry
	now         func() time.Time
	newID       func() uuid.UUID
}

// NewMigrationService creates a new MigrationService. db may be nil when the
// run history is kept in memory.
func NewMigrationService(
	collections migrationdb.Collections,
	runs migrationdb.RunRepository,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *MigrationService {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.Noop{}
	}
	return &MigrationService{
		collections: collections,
		runs:        runs,
		db:          db,
		publisher:   publisher,
		logger:      logger,
		telemetry: observability.Telemetry{
			Service: "MigrationService",
			Logger:  logger,
			Tracer:  tracer,
			Metrics: metrics,
			Expected: func(err error) bool {
				return directus.IsUnauthorized(err) || errors.Is(err, migrationdb.ErrNotFound)
			},
		},
		now:   time.Now,
		newID: uuid.New,
	}
}

// runner is the state of one run.
type runner struct {
	collections migrationdb.Collections
	report      *migrationdomain.Report
	ids         migrationdomain.IDMap
	dryRun      bool
}

// Run migrates the legacy collections step by step. Errors are collected in
// the report; the run only stops early when the context is cancelled or the
// admin token is rejected. An aborted run is still finished and stored, and
// its report is returned together with the error. Nothing is rolled back.
func (s *MigrationService) Run(ctx context.Context, opts Options) (*migrationdomain.Report, error) {
	runID := s.newID()
	ctx, _ = attr.EnsureCorrelationID(ctx)

	return observability.Run(ctx, s.telemetry, "Run", runID.String(), func(ctx context.Context) (*migrationdomain.Report, error) {
		r := &runner{
			collections: s.collections,
			report:      migrationdomain.NewReport(runID, s.now().UTC(), opts.DryRun, opts.IncludeEvents),
			ids:         migrationdomain.IDMap{},
			dryRun:      opts.DryRun,
		}

		var abort error
	run:
		for _, st := range steps(opts.IncludeEvents) {
			s.logger.InfoContext(ctx, "Migrating collection",
				attr.ExtractCorrelationID(ctx),
				attr.String("run_id", runID.String()),
				attr.String("source", st.source),
				attr.String("target", st.target),
			)
			err := st.run(ctx, r)
			switch {
			case err == nil:
			case ctx.Err() != nil:
				abort = ctx.Err()
				break run
			case directus.IsUnauthorized(err):
				abort = err
				r.report.ReadFailed(st.source, err)
				break run
			default:
				r.report.ReadFailed(st.source, err)
				s.logger.WarnContext(ctx, "Migration step failed",
					attr.ExtractCorrelationID(ctx),
					attr.String("run_id", runID.String()),
					attr.String("source", st.source),
					attr.Error(err),
				)
			}
		}

		r.report.FinishedAt = s.now().UTC()
		if abort != nil {
			r.report.Aborted = abort.Error()
		}
		created, failed := r.report.Totals()

		// The history keeps aborted runs too, even when ctx is what ended them.
		if err := s.runs.SaveRun(context.WithoutCancel(ctx), s.db, r.report); err != nil {
			s.logger.WarnContext(ctx, "Failed to store migration run",
				attr.ExtractCorrelationID(ctx),
				attr.String("run_id", runID.String()),
				attr.Error(err),
			)
		}
		if abort != nil {
			return r.report, abort
		}

		eventbus.Notify(ctx, s.publisher, s.logger, events.MigrationCompletedV1, events.MigrationCompletedPayloadV1{
			RunID:      runID.String(),
			Created:    created,
			Failed:     failed,
			DryRun:     opts.DryRun,
			FinishedAt: r.report.FinishedAt,
		})
		return r.report, nil
	})
}

func (s *MigrationService) ListRuns(ctx context.Context, limit int) ([]migrationdomain.RunSummary, error) {
	if limit <= 0 {
		limit = DefaultRunsLimit
	}
	return observability.Run(ctx, s.telemetry, "ListRuns", fmt.Sprintf("limit=%d", limit), func(ctx context.Context) ([]migrationdomain.RunSummary, error) {
		return s.runs.ListRuns(ctx, s.db, limit)
	})
}

func (s *MigrationService) GetRun(ctx context.Context, id uuid.UUID) (*migrationdomain.Report, error) {
	return observability.Run(ctx, s.telemetry, "GetRun", id.String(), func(ctx context.Context) (*migrationdomain.Report, error) {
		return s.runs.GetRun(ctx, s.db, id)
	})
}
