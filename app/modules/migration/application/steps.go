package migrationservice

import (
	"context"
	"encoding/json"
	"fmt"

	documentdomain "github.com/raynzz/eventdesk/app/modules/document/domain"
	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
	migrationdomain "github.com/raynzz/eventdesk/app/modules/migration/domain"
	providerdomain "github.com/raynzz/eventdesk/app/modules/provider/domain"
	"github.com/raynzz/eventdesk/pkg/directus"
)

// step copies one legacy collection.
type step struct {
	source string
	target string
	run    func(ctx context.Context, r *runner) error
}

// steps returns the run order. Later steps resolve references through the
// ids created by earlier ones.
func steps(includeEvents bool) []step {
	out := []step{
		{migrationdomain.LegacyProviders, providerdomain.ProvidersCollection, func(ctx context.Context, r *runner) error {
			return migrate(ctx, r, migrationdomain.LegacyProviders, providerdomain.ProvidersCollection,
				func(p migrationdomain.LegacyProvider) (any, error) { return p.ToProvider() })
		}},
		{migrationdomain.LegacyTeamMembers, providerdomain.TeamMembersCollection, func(ctx context.Context, r *runner) error {
			return migrate(ctx, r, migrationdomain.LegacyTeamMembers, providerdomain.TeamMembersCollection,
				func(m migrationdomain.LegacyTeamMember) (any, error) { return m.ToTeamMember(r.ids) })
		}},
	}
	if !includeEvents {
		return out
	}
	return append(out,
		step{migrationdomain.LegacyEvents, eventdomain.EventsCollection, func(ctx context.Context, r *runner) error {
			return migrate(ctx, r, migrationdomain.LegacyEvents, eventdomain.EventsCollection,
				func(e migrationdomain.LegacyEvent) (any, error) { return e.ToEvent() })
		}},
		step{migrationdomain.LegacyRequirements, documentdomain.RequirementsCollection, func(ctx context.Context, r *runner) error {
			return migrate(ctx, r, migrationdomain.LegacyRequirements, documentdomain.RequirementsCollection,
				func(q migrationdomain.LegacyRequirement) (any, error) { return q.ToRequirement(r.ids) })
		}},
		step{migrationdomain.LegacyParticipants, eventdomain.ParticipantsCollection, func(ctx context.Context, r *runner) error {
			return migrate(ctx, r, migrationdomain.LegacyParticipants, eventdomain.ParticipantsCollection,
				func(p migrationdomain.LegacyParticipant) (any, error) { return p.ToParticipant(r.ids) })
		}},
	)
}

// migrate reads source in full and creates one target record per source
// record, in order. Record failures go to the report. A cancelled context,
// an unreadable source or a rejected token ends the step early.
func migrate[S migrationdomain.Record](
	ctx context.Context,
	r *runner,
	source, target string,
	convert func(S) (any, error),
) error {
	raw, err := r.collections.ReadAll(ctx, source)
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}
	r.report.AddRead(source, len(raw))

	for _, msg := range raw {
		if err := ctx.Err(); err != nil {
			return err
		}

		var rec S
		if err := json.Unmarshal(msg, &rec); err != nil {
			r.report.Fail(source, "", fmt.Errorf("decode: %w", err))
			continue
		}
		srcID := rec.SourceID()

		out, err := convert(rec)
		if err != nil {
			r.report.Fail(source, srcID.String(), err)
			continue
		}

		if r.dryRun {
			// Dry runs map references onto the source ids so dependent steps
			// can still be checked.
			r.ids.Set(source, srcID, srcID)
			r.report.AddCreated(source)
			continue
		}

		newID, err := r.collections.Create(ctx, target, out)
		if err != nil {
			if directus.IsUnauthorized(err) {
				return fmt.Errorf("create %s: %w", target, err)
			}
			r.report.Fail(source, srcID.String(), err)
			continue
		}
		if !srcID.IsZero() {
			r.ids.Set(source, srcID, newID)
		}
		r.report.AddCreated(source)
	}
	return nil
}
