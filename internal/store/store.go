package store

import (
	"context"
	"errors"

	"hubflow/internal/model"
)

// Store is the persistence interface used by the API server.
type Store interface {
	// Solve runs
	SaveSolveRun(ctx context.Context, run model.SolveRun) error
	GetSolveRun(ctx context.Context, tenantID, id string) (model.SolveRun, error)
	ListSolveRuns(ctx context.Context, tenantID, algorithm, cursor string, limit int) (items []model.SolveRun, nextCursor string, err error)

	// Engine defaults per tenant
	GetEngineDefaults(ctx context.Context, tenantID string) (model.EngineDefaults, error)
	SaveEngineDefaults(ctx context.Context, tenantID string, defaults model.EngineDefaults) error
}

var ErrNotFound = errors.New("not found")
