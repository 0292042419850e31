package activitydomain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/raynzz/eventdesk/pkg/events"
)

// Entry is one domain event as shown in the activity feed.
type Entry struct {
	ID            string          `json:"id"`
	Topic         string          `json:"topic"`
	Summary       string          `json:"summary"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload,omitempty"`
}

// Summarize renders a one-line description of a published payload. Unknown
// topics and undecodable payloads fall back to the topic name.
func Summarize(topic string, payload []byte) string {
	switch topic {
	case events.EventCreatedV1, events.EventUpdatedV1, events.EventDeletedV1:
		var p events.EventChangedPayloadV1
		if json.Unmarshal(payload, &p) != nil {
			break
		}
		verb := map[string]string{
			events.EventCreatedV1: "created",
			events.EventUpdatedV1: "updated",
			events.EventDeletedV1: "deleted",
		}[topic]
		if p.Name == "" {
			return fmt.Sprintf("Event %s %s", p.EventID, verb)
		}
		return fmt.Sprintf("Event %q %s", p.Name, verb)

	case events.ParticipantAssignedV1:
		var p events.ParticipantPayloadV1
		if json.Unmarshal(payload, &p) != nil {
			break
		}
		return fmt.Sprintf("Provider %s assigned to event %s", p.ProviderID, p.EventID)

	case events.ParticipantStatusChangedV1:
		var p events.ParticipantPayloadV1
		if json.Unmarshal(payload, &p) != nil {
			break
		}
		return fmt.Sprintf("Provider %s on event %s: %s -> %s", p.ProviderID, p.EventID, p.PreviousStatus, p.Status)

	case events.ProviderCreatedV1:
		var p events.ProviderCreatedPayloadV1
		if json.Unmarshal(payload, &p) != nil {
			break
		}
		return fmt.Sprintf("Provider %q created", p.Name)

	case events.TeamMemberAddedV1:
		var p events.TeamMemberAddedPayloadV1
		if json.Unmarshal(payload, &p) != nil {
			break
		}
		return fmt.Sprintf("%s joined provider %s", p.FullName, p.ProviderID)

	case events.DocumentSubmittedV1, events.DocumentReviewedV1:
		var p events.DocumentPayloadV1
		if json.Unmarshal(payload, &p) != nil {
			break
		}
		if topic == events.DocumentSubmittedV1 {
			return fmt.Sprintf("Provider %s submitted a document for requirement %s", p.ProviderID, p.RequirementID)
		}
		return fmt.Sprintf("Document %s of provider %s %s", p.DocumentID, p.ProviderID, p.Status)

	case events.SchemaSetupCompletedV1:
		var p events.SchemaSetupCompletedPayloadV1
		if json.Unmarshal(payload, &p) != nil {
			break
		}
		return fmt.Sprintf("Schema setup%s: %d created, %d existing, %d failed", dryRun(p.DryRun), p.Created, p.Existing, p.Failed)

	case events.MigrationCompletedV1:
		var p events.MigrationCompletedPayloadV1
		if json.Unmarshal(payload, &p) != nil {
			break
		}
		return fmt.Sprintf("Legacy migration%s: %d created, %d failed", dryRun(p.DryRun), p.Created, p.Failed)
	}
	return topic
}

func dryRun(on bool) string {
	if on {
		return " (dry run)"
	}
	return ""
}
