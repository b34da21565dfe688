package store

import (
	"context"
	"sync"

	"hubflow/internal/model"
)

// Memory is a simple in-memory store used when no DATABASE_URL is set.
type Memory struct {
	mu       sync.Mutex
	runs     map[string]model.SolveRun       // id -> run
	byTenant map[string][]string             // tenant -> run ids, insertion order
	defaults map[string]model.EngineDefaults // tenant -> defaults
}

func NewMemory() *Memory {
	return &Memory{
		runs:     map[string]model.SolveRun{},
		byTenant: map[string][]string{},
		defaults: map[string]model.EngineDefaults{},
	}
}

func (m *Memory) SaveSolveRun(ctx context.Context, run model.SolveRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.runs[run.ID]; !exists {
		m.byTenant[run.TenantID] = append(m.byTenant[run.TenantID], run.ID)
	}
	m.runs[run.ID] = run
	return nil
}

func (m *Memory) GetSolveRun(ctx context.Context, tenantID, id string) (model.SolveRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.runs[id]
	if !ok || r.TenantID != tenantID {
		return model.SolveRun{}, ErrNotFound
	}
	return r, nil
}

// ListSolveRuns pages newest-first with an opaque id cursor, optionally
// filtered by algorithm.
func (m *Memory) ListSolveRuns(ctx context.Context, tenantID, algorithm, cursor string, limit int) ([]model.SolveRun, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.byTenant[tenantID]
	start := len(ids) - 1
	if cursor != "" {
		for i := len(ids) - 1; i >= 0; i-- {
			if ids[i] == cursor {
				start = i - 1
				break
			}
		}
	}
	if limit <= 0 {
		limit = 100
	}
	out := []model.SolveRun{}
	var next string
	for i := start; i >= 0 && len(out) < limit; i-- {
		r := m.runs[ids[i]]
		if algorithm == "" || r.Algorithm == algorithm {
			out = append(out, r)
		}
		next = ids[i]
	}
	if len(out) < limit {
		next = ""
	}
	return out, next, nil
}

func (m *Memory) GetEngineDefaults(ctx context.Context, tenantID string) (model.EngineDefaults, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defaults[tenantID], nil
}

func (m *Memory) SaveEngineDefaults(ctx context.Context, tenantID string, defaults model.EngineDefaults) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults[tenantID] = defaults
	return nil
}
