package documentdomain

import (
	"time"

	"github.com/raynzz/eventdesk/pkg/directus"
)

// State is the compliance of one requirement for one provider.
type State string

const (
	StateSatisfied State = "satisfied"
	StateMissing   State = "missing"
	StateExpired   State = "expired"
	StatePending   State = "pending"
)

// RequirementState pairs a requirement with the document that decided its state.
type RequirementState struct {
	Requirement Requirement       `json:"requirement"`
	State       State             `json:"state"`
	Document    *ProviderDocument `json:"document,omitempty"`
}

// Compliance is the document standing of a provider for an event. Compliant
// is true when every mandatory requirement is satisfied.
type Compliance struct {
	EventID      directus.ID        `json:"event_id"`
	ProviderID   directus.ID        `json:"provider_id"`
	Compliant    bool               `json:"compliant"`
	Requirements []RequirementState `json:"requirements"`
}

// rank orders candidate documents; the highest wins.
func rank(d ProviderDocument, now time.Time) (State, int) {
	switch {
	case d.Status == StatusApproved && !d.Expired(now):
		return StateSatisfied, 4
	case d.Status == StatusPending:
		return StatePending, 3
	case d.Status == StatusApproved:
		return StateExpired, 2
	}
	return StateMissing, 1
}

// Evaluate computes the compliance of providerID for eventID from the
// provider-level requirements and the provider's documents. Documents tied to
// another event or to a team member are ignored.
func Evaluate(eventID, providerID directus.ID, reqs []Requirement, docs []ProviderDocument, now time.Time) Compliance {
	out := Compliance{
		EventID:      eventID,
		ProviderID:   providerID,
		Compliant:    true,
		Requirements: make([]RequirementState, 0, len(reqs)),
	}

	for _, req := range reqs {
		if req.AppliesTo == AppliesToTeamMember || !req.AppliesToEvent(eventID) {
			continue
		}

		rs := RequirementState{Requirement: req, State: StateMissing}
		best := 0
		for i := range docs {
			d := docs[i]
			if d.ProviderID != providerID || d.RequirementID != req.ID || !d.TeamMemberID.IsZero() {
				continue
			}
			if !d.EventID.IsZero() && d.EventID != eventID {
				continue
			}
			state, score := rank(d, now)
			if score > best {
				best = score
				rs.State = state
				rs.Document = &d
			}
		}

		if req.Mandatory && rs.State != StateSatisfied {
			out.Compliant = false
		}
		out.Requirements = append(out.Requirements, rs)
	}
	return out
}
