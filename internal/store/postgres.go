package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib"

	"hubflow/internal/model"
)

type Postgres struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	p := &Postgres{db: db}
	if err := p.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS solve_runs (
			id         UUID PRIMARY KEY,
			tenant_id  TEXT NOT NULL,
			algorithm  TEXT NOT NULL,
			status     TEXT NOT NULL,
			seed       BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			request    JSONB NOT NULL,
			result     JSONB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS solve_runs_tenant_created ON solve_runs (tenant_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS engine_defaults (
			tenant_id TEXT PRIMARY KEY,
			defaults  JSONB NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := p.db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (p *Postgres) SaveSolveRun(ctx context.Context, run model.SolveRun) error {
	req, err := json.Marshal(run.Request)
	if err != nil {
		return err
	}
	res, err := json.Marshal(run.Result)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `INSERT INTO solve_runs (id, tenant_id, algorithm, status, seed, created_at, request, result)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET status=EXCLUDED.status, result=EXCLUDED.result`,
		run.ID, run.TenantID, run.Algorithm, run.Status, run.Seed, run.CreatedAt, req, res)
	return err
}

func (p *Postgres) GetSolveRun(ctx context.Context, tenantID, id string) (model.SolveRun, error) {
	row := p.db.QueryRowContext(ctx, `SELECT id::text, tenant_id, algorithm, status, seed, created_at, request, result
		FROM solve_runs WHERE tenant_id=$1 AND id=$2::uuid`, tenantID, id)
	return scanSolveRun(row)
}

// ListSolveRuns pages newest-first keyed on (created_at, id); the cursor is
// the last returned run id.
func (p *Postgres) ListSolveRuns(ctx context.Context, tenantID, algorithm, cursor string, limit int) ([]model.SolveRun, string, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var rows *sql.Rows
	var err error
	if cursor != "" {
		if algorithm != "" {
			rows, err = p.db.QueryContext(ctx, `SELECT id::text, tenant_id, algorithm, status, seed, created_at, request, result
				FROM solve_runs WHERE tenant_id=$1 AND algorithm=$2
				AND (created_at, id) < (SELECT created_at, id FROM solve_runs WHERE id=$3::uuid)
				ORDER BY created_at DESC, id DESC LIMIT $4`, tenantID, algorithm, cursor, limit)
		} else {
			rows, err = p.db.QueryContext(ctx, `SELECT id::text, tenant_id, algorithm, status, seed, created_at, request, result
				FROM solve_runs WHERE tenant_id=$1
				AND (created_at, id) < (SELECT created_at, id FROM solve_runs WHERE id=$2::uuid)
				ORDER BY created_at DESC, id DESC LIMIT $3`, tenantID, cursor, limit)
		}
	} else {
		if algorithm != "" {
			rows, err = p.db.QueryContext(ctx, `SELECT id::text, tenant_id, algorithm, status, seed, created_at, request, result
				FROM solve_runs WHERE tenant_id=$1 AND algorithm=$2
				ORDER BY created_at DESC, id DESC LIMIT $3`, tenantID, algorithm, limit)
		} else {
			rows, err = p.db.QueryContext(ctx, `SELECT id::text, tenant_id, algorithm, status, seed, created_at, request, result
				FROM solve_runs WHERE tenant_id=$1
				ORDER BY created_at DESC, id DESC LIMIT $2`, tenantID, limit)
		}
	}
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()
	out := []model.SolveRun{}
	for rows.Next() {
		r, err := scanSolveRun(rows)
		if err != nil {
			return nil, "", err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}
	var next string
	if len(out) == limit {
		next = out[len(out)-1].ID
	}
	return out, next, nil
}

func (p *Postgres) GetEngineDefaults(ctx context.Context, tenantID string) (model.EngineDefaults, error) {
	var raw []byte
	err := p.db.QueryRowContext(ctx, `SELECT defaults FROM engine_defaults WHERE tenant_id=$1`, tenantID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.EngineDefaults{}, nil
	}
	if err != nil {
		return model.EngineDefaults{}, err
	}
	var d model.EngineDefaults
	if err := json.Unmarshal(raw, &d); err != nil {
		return model.EngineDefaults{}, err
	}
	return d, nil
}

func (p *Postgres) SaveEngineDefaults(ctx context.Context, tenantID string, defaults model.EngineDefaults) error {
	raw, err := json.Marshal(defaults)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `INSERT INTO engine_defaults (tenant_id, defaults) VALUES ($1,$2)
		ON CONFLICT (tenant_id) DO UPDATE SET defaults=EXCLUDED.defaults`, tenantID, raw)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSolveRun(row rowScanner) (model.SolveRun, error) {
	var r model.SolveRun
	var req, res []byte
	if err := row.Scan(&r.ID, &r.TenantID, &r.Algorithm, &r.Status, &r.Seed, &r.CreatedAt, &req, &res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, ErrNotFound
		}
		return r, err
	}
	if err := json.Unmarshal(req, &r.Request); err != nil {
		return r, err
	}
	if err := json.Unmarshal(res, &r.Result); err != nil {
		return r, err
	}
	return r, nil
}
