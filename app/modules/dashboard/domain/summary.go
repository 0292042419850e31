package dashboarddomain

import (
	"sort"
	"time"

	eventdomain "github.com/raynzz/eventdesk/app/modules/event/domain"
)

// UpcomingLimit caps Summary.Upcoming.
const UpcomingLimit = 5

// Summary is the overview shown on the dashboard landing page.
type Summary struct {
	Events               int                              `json:"events"`
	EventsByStatus       map[eventdomain.Status]int       `json:"events_by_status"`
	Providers            int                              `json:"providers"`
	TeamMembers          int                              `json:"team_members"`
	Participants         int                              `json:"participants"`
	ParticipantsByStatus map[eventdomain.ReviewStatus]int `json:"participants_by_status"`
	PendingDocuments     int                              `json:"pending_documents"`
	Upcoming             []eventdomain.Event              `json:"upcoming"`
	GeneratedAt          time.Time                        `json:"generated_at"`
}

// CountEvents tallies events by status. Every dropdown status is present.
// Values outside the dropdown are counted under their raw value.
func CountEvents(events []eventdomain.Event) map[eventdomain.Status]int {
	out := make(map[eventdomain.Status]int, len(eventdomain.Statuses))
	for _, st := range eventdomain.Statuses {
		out[st] = 0
	}
	for _, e := range events {
		out[e.Status]++
	}
	return out
}

// CountParticipants tallies participants by review status. An empty status
// counts as pending.
func CountParticipants(ps []eventdomain.Participant) map[eventdomain.ReviewStatus]int {
	out := make(map[eventdomain.ReviewStatus]int, len(eventdomain.ReviewStatuses))
	for _, st := range eventdomain.ReviewStatuses {
		out[st] = 0
	}
	for _, p := range ps {
		st := p.Status
		if st == "" {
			st = eventdomain.ReviewPending
		}
		out[st]++
	}
	return out
}

// Upcoming returns up to limit events starting at or after now, soonest
// first. Cancelled events and events without a start date are left out.
func Upcoming(events []eventdomain.Event, now time.Time, limit int) []eventdomain.Event {
	out := make([]eventdomain.Event, 0, limit)
	for _, e := range events {
		if e.StartDate == nil || e.StartDate.Before(now) || e.Status == eventdomain.StatusCancelled {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.Before(*out[j].StartDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
