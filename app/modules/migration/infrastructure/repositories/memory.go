package migrationdb

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	migrationdomain "github.com/raynzz/eventdesk/app/modules/migration/domain"
	"github.com/uptrace/bun"
)

// MemoryRunRepository keeps run history in process memory. It is used when
// no Postgres DSN is configured.
type MemoryRunRepository struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]migrationdomain.Report
}

// NewMemoryRunRepository creates an empty history.
func NewMemoryRunRepository() *MemoryRunRepository {
	return &MemoryRunRepository{runs: make(map[uuid.UUID]migrationdomain.Report)}
}

var _ RunRepository = (*MemoryRunRepository)(nil)

func (m *MemoryRunRepository) SaveRun(_ context.Context, _ bun.IDB, report *migrationdomain.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[report.RunID] = *report
	return nil
}

func (m *MemoryRunRepository) ListRuns(_ context.Context, _ bun.IDB, limit int) ([]migrationdomain.RunSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]migrationdomain.RunSummary, 0, len(m.runs))
	for _, r := range m.runs {
		out = append(out, r.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryRunRepository) GetRun(_ context.Context, _ bun.IDB, id uuid.UUID) (*migrationdomain.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}
