package migrationdomain

import (
	"time"

	"github.com/google/uuid"
)

// StepReport counts the records of one step.
type StepReport struct {
	Read    int `json:"read"`
	Created int `json:"created"`
	Failed  int `json:"failed"`
}

// RecordError is one record that could not be migrated. SourceID is empty
// when the whole collection failed.
type RecordError struct {
	Collection string `json:"collection"`
	SourceID   string `json:"source_id,omitempty"`
	Error      string `json:"error"`
}

// Report is the outcome of one migration run. In a dry run Created counts
// the records that would have been created.
type Report struct {
	RunID         uuid.UUID             `json:"run_id"`
	DryRun        bool                  `json:"dry_run"`
	IncludeEvents bool                  `json:"include_events"`
	StartedAt     time.Time             `json:"started_at"`
	FinishedAt    time.Time             `json:"finished_at"`
	Steps         map[string]StepReport `json:"steps"`
	Errors        []RecordError         `json:"errors"`
	// Aborted holds the error that stopped the run early.
	Aborted string `json:"aborted,omitempty"`
}

// NewReport starts an empty report.
func NewReport(runID uuid.UUID, startedAt time.Time, dryRun, includeEvents bool) *Report {
	return &Report{
		RunID:         runID,
		DryRun:        dryRun,
		IncludeEvents: includeEvents,
		StartedAt:     startedAt,
		Steps:         map[string]StepReport{},
		Errors:        []RecordError{},
	}
}

// Fail records a failed record of collection.
func (r *Report) Fail(collection, sourceID string, err error) {
	step := r.Steps[collection]
	step.Failed++
	r.Steps[collection] = step
	r.Errors = append(r.Errors, RecordError{Collection: collection, SourceID: sourceID, Error: err.Error()})
}

// ReadFailed records that a source collection could not be read.
func (r *Report) ReadFailed(collection string, err error) {
	if _, ok := r.Steps[collection]; !ok {
		r.Steps[collection] = StepReport{}
	}
	r.Errors = append(r.Errors, RecordError{Collection: collection, Error: err.Error()})
}

// AddRead records how many records a step read.
func (r *Report) AddRead(collection string, n int) {
	step := r.Steps[collection]
	step.Read += n
	r.Steps[collection] = step
}

// AddCreated records one created record.
func (r *Report) AddCreated(collection string) {
	step := r.Steps[collection]
	step.Created++
	r.Steps[collection] = step
}

// Totals sums created and failed records across steps.
func (r *Report) Totals() (created, failed int) {
	for _, s := range r.Steps {
		created += s.Created
		failed += s.Failed
	}
	return created, failed
}

// RunSummary is a run as listed in the history.
type RunSummary struct {
	RunID         uuid.UUID `json:"run_id"`
	DryRun        bool      `json:"dry_run"`
	IncludeEvents bool      `json:"include_events"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Created       int       `json:"created"`
	Failed        int       `json:"failed"`
}

// Summary condenses the report for the history listing.
func (r *Report) Summary() RunSummary {
	created, failed := r.Totals()
	return RunSummary{
		RunID:         r.RunID,
		DryRun:        r.DryRun,
		IncludeEvents: r.IncludeEvents,
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
		Created:       created,
		Failed:        failed,
	}
}
