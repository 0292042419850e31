package schemadomain

// Outcome is what happened to one step.
type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeExisting Outcome = "existing"
	OutcomeFailed   Outcome = "failed"
	OutcomePlanned  Outcome = "planned"
)

// StepResult is one line of a setup report.
type StepResult struct {
	Kind    StepKind `json:"kind"`
	Name    string   `json:"name"`
	Outcome Outcome  `json:"outcome"`
	Message string   `json:"message,omitempty"`
}

// Report summarizes a setup run.
type Report struct {
	DryRun   bool         `json:"dry_run"`
	Created  int          `json:"created"`
	Existing int          `json:"existing"`
	Failed   int          `json:"failed"`
	Steps    []StepResult `json:"steps"`
}

// Add appends a result and bumps the matching counter.
func (r *Report) Add(res StepResult) {
	switch res.Outcome {
	case OutcomeCreated:
		r.Created++
	case OutcomeExisting:
		r.Existing++
	case OutcomeFailed:
		r.Failed++
	}
	r.Steps = append(r.Steps, res)
}

// OK reports whether every applied step succeeded or already existed.
func (r *Report) OK() bool { return r.Failed == 0 }
