package schemaservice

import (
	"context"
	"fmt"
	"log/slog"

	schemadomain "github.com/raynzz/eventdesk/app/modules/schema/domain"
	schemadb "github.com/raynzz/eventdesk/app/modules/schema/infrastructure/repositories"
	"github.com/raynzz/eventdesk/pkg/directus"
	"github.com/raynzz/eventdesk/pkg/eventbus"
	"github.com/raynzz/eventdesk/pkg/events"
	"github.com/raynzz/eventdesk/pkg/observability"
	"github.com/raynzz/eventdesk/pkg/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// SchemaService implements the Service interface.
type SchemaService struct {
	repo      schemadb.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
	telemetry observability.Telemetry
	plan      func() []schemadomain.Step
}

// NewSchemaService creates a new SchemaService.
func NewSchemaService(
	repo schemadb.Repository,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *SchemaService {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.Noop{}
	}
	return &SchemaService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		telemetry: observability.Telemetry{
			Service:  "SchemaService",
			Logger:   logger,
			Tracer:   tracer,
			Metrics:  metrics,
			Expected: directus.IsUnauthorized,
		},
		plan: schemadomain.Plan,
	}
}

func (s *SchemaService) Plan() []schemadomain.Step {
	return s.plan()
}

// Setup applies the plan one step at a time. Steps that already exist count
// as done; any other failure is recorded and the run moves on. Only a
// cancelled context or a rejected admin token stops it early.
func (s *SchemaService) Setup(ctx context.Context, opts SetupOptions) (*schemadomain.Report, error) {
	return observability.Run(ctx, s.telemetry, "Setup", fmt.Sprintf("dry_run=%t", opts.DryRun), func(ctx context.Context) (*schemadomain.Report, error) {
		report := &schemadomain.Report{DryRun: opts.DryRun, Steps: []schemadomain.StepResult{}}

		for _, step := range s.plan() {
			res := schemadomain.StepResult{Kind: step.Kind, Name: step.Name}
			if opts.DryRun {
				res.Outcome = schemadomain.OutcomePlanned
				report.Add(res)
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			err := s.apply(ctx, step)
			switch {
			case err == nil:
				res.Outcome = schemadomain.OutcomeCreated
			case directus.IsAlreadyExists(err):
				res.Outcome = schemadomain.OutcomeExisting
			case directus.IsUnauthorized(err):
				return nil, err
			default:
				res.Outcome = schemadomain.OutcomeFailed
				res.Message = err.Error()
				s.logger.WarnContext(ctx, "Schema step failed",
					attr.ExtractCorrelationID(ctx),
					attr.String("kind", string(step.Kind)),
					attr.String("step", step.Name),
					attr.Error(err),
				)
			}
			report.Add(res)
		}

		eventbus.Notify(ctx, s.publisher, s.logger, events.SchemaSetupCompletedV1, events.SchemaSetupCompletedPayloadV1{
			Created:  report.Created,
			Existing: report.Existing,
			Failed:   report.Failed,
			DryRun:   report.DryRun,
		})
		return report, nil
	})
}

func (s *SchemaService) apply(ctx context.Context, step schemadomain.Step) error {
	switch step.Kind {
	case schemadomain.KindCollection:
		return s.repo.CreateCollection(ctx, *step.Collection)
	case schemadomain.KindField:
		return s.repo.CreateField(ctx, step.Field.Collection, *step.Field)
	case schemadomain.KindRelation:
		return s.repo.CreateRelation(ctx, *step.Relation)
	}
	return fmt.Errorf("unknown step kind %q", step.Kind)
}
