package model

import "time"

// SolveRun is one persisted optimization run: the request as received,
// the result as returned, and enough top-level columns to list and
// filter without unpacking the payload.
type SolveRun struct {
	ID        string           `json:"id"`
	TenantID  string           `json:"tenantId"`
	Algorithm string           `json:"algorithm"`
	Status    string           `json:"status"`
	Seed      int64            `json:"seed"`
	CreatedAt time.Time        `json:"createdAt"`
	Request   OptimizeRequest  `json:"request"`
	Result    OptimizeResponse `json:"result"`
}

// EngineDefaults are per-tenant overrides applied to optimize requests
// before validation. Nil fields keep the server-wide defaults.
type EngineDefaults struct {
	Weights        *Weights `json:"weights,omitempty"`
	Budget         *float64 `json:"budget,omitempty"`
	HubCost        *float64 `json:"hubCost,omitempty"`
	GreenZoneCost  *float64 `json:"greenZoneCost,omitempty"`
	PeakMultiplier *float64 `json:"peakMultiplier,omitempty"`
	TimeLimitSec   *int     `json:"timeLimitSec,omitempty"`
}
