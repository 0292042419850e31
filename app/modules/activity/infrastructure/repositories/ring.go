package activitydb

import (
	"sync"

	activitydomain "github.com/raynzz/eventdesk/app/modules/activity/domain"
)

// DefaultCapacity is the number of entries kept when none is configured.
const DefaultCapacity = 200

// Repository stores the most recent activity entries.
type Repository interface {
	Add(e activitydomain.Entry)
	// Recent returns up to limit entries, newest first.
	Recent(limit int) []activitydomain.Entry
	Len() int
}

// Ring is a fixed-size Repository that overwrites its oldest entry when full.
type Ring struct {
	mu      sync.RWMutex
	entries []activitydomain.Entry
	next    int
	full    bool
}

var _ Repository = (*Ring)(nil)

// NewRing creates a ring holding capacity entries. A non-positive capacity
// uses DefaultCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{entries: make([]activitydomain.Entry, capacity)}
}

func (r *Ring) Add(e activitydomain.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = e
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
}

func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lenLocked()
}

func (r *Ring) lenLocked() int {
	if r.full {
		return len(r.entries)
	}
	return r.next
}

func (r *Ring) Recent(limit int) []activitydomain.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := r.lenLocked()
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]activitydomain.Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + len(r.entries)) % len(r.entries)
		out = append(out, r.entries[idx])
	}
	return out
}
