// Package events declares the domain event topics and their payloads.
package events

import "time"

const (
	EventCreatedV1             = "event.created.v1"
	EventUpdatedV1             = "event.updated.v1"
	EventDeletedV1             = "event.deleted.v1"
	ParticipantAssignedV1      = "participant.assigned.v1"
	ParticipantStatusChangedV1 = "participant.status_changed.v1"
	ProviderCreatedV1          = "provider.created.v1"
	TeamMemberAddedV1          = "team_member.added.v1"
	DocumentSubmittedV1        = "document.submitted.v1"
	DocumentReviewedV1         = "document.reviewed.v1"
	SchemaSetupCompletedV1     = "schema.setup_completed.v1"
	MigrationCompletedV1       = "migration.completed.v1"
)

// AllTopics lists every topic the service publishes.
var AllTopics = []string{
	EventCreatedV1,
	EventUpdatedV1,
	EventDeletedV1,
	ParticipantAssignedV1,
	ParticipantStatusChangedV1,
	ProviderCreatedV1,
	TeamMemberAddedV1,
	DocumentSubmittedV1,
	DocumentReviewedV1,
	SchemaSetupCompletedV1,
	MigrationCompletedV1,
}

// EventChangedPayloadV1 is published on event create, update and delete.
type EventChangedPayloadV1 struct {
	EventID string `json:"event_id"`
	Name    string `json:"name,omitempty"`
	Status  string `json:"status,omitempty"`
}

// ParticipantPayloadV1 is published when a provider is assigned to an event
// or its participation status changes.
type ParticipantPayloadV1 struct {
	ParticipantID  string `json:"participant_id"`
	EventID        string `json:"event_id"`
	ProviderID     string `json:"provider_id"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status,omitempty"`
	Note           string `json:"note,omitempty"`
}

// ProviderCreatedPayloadV1 is published when a provider is created.
type ProviderCreatedPayloadV1 struct {
	ProviderID string `json:"provider_id"`
	Name       string `json:"name"`
}

// TeamMemberAddedPayloadV1 is published when a team member joins a provider.
type TeamMemberAddedPayloadV1 struct {
	TeamMemberID string `json:"team_member_id"`
	ProviderID   string `json:"provider_id"`
	FullName     string `json:"full_name"`
}

// DocumentPayloadV1 is published when a provider document is submitted or reviewed.
type DocumentPayloadV1 struct {
	DocumentID    string `json:"document_id"`
	ProviderID    string `json:"provider_id"`
	RequirementID string `json:"requirement_id"`
	Status        string `json:"status"`
}

// SchemaSetupCompletedPayloadV1 summarizes a schema setup run.
type SchemaSetupCompletedPayloadV1 struct {
	Created  int  `json:"created"`
	Existing int  `json:"existing"`
	Failed   int  `json:"failed"`
	DryRun   bool `json:"dry_run"`
}

// MigrationCompletedPayloadV1 summarizes a legacy migration run.
type MigrationCompletedPayloadV1 struct {
	RunID      string    `json:"run_id"`
	Created    int       `json:"created"`
	Failed     int       `json:"failed"`
	DryRun     bool      `json:"dry_run"`
	FinishedAt time.Time `json:"finished_at"`
}
