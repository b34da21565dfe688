package model

// OptimizeRequest is the body of POST /v1/optimize. Zero values fall back
// to server defaults before validation.
type OptimizeRequest struct {
	TenantID       string   `json:"tenantId,omitempty"`
	Algorithm      string   `json:"algorithm,omitempty"` // exact (default) or baseline
	NumTrucks      int      `json:"numTrucks,omitempty"`
	NumHubs        int      `json:"numHubs,omitempty"`
	NumZones       int      `json:"numZones,omitempty"`
	NumSlots       int      `json:"numSlots,omitempty"`
	Budget         float64  `json:"budget,omitempty"`
	HubCost        float64  `json:"hubCost,omitempty"`
	GreenZoneCost  float64  `json:"greenZoneCost,omitempty"`
	PeakMultiplier float64  `json:"peakMultiplier,omitempty"`
	Seed           int64    `json:"seed,omitempty"`
	TimeLimitSec   int      `json:"timeLimitSec,omitempty"`
	Weights        *Weights `json:"weights,omitempty"`
}

// NetworkRequest is the body of POST /v1/network.
type NetworkRequest struct {
	Rows     int   `json:"rows"`
	Cols     int   `json:"cols"`
	NumZones int   `json:"numZones"`
	NumHubs  int   `json:"numHubs"`
	Seed     int64 `json:"seed"`
}

// OptimizeResponse is the uniform solve result shape for both algorithms.
type OptimizeResponse struct {
	SolveID        string           `json:"solveId"`
	Status         string           `json:"status"`
	ObjectiveValue *float64         `json:"objectiveValue,omitempty"`
	Assignments    []Assignment     `json:"assignments"`
	ActiveHubs     []int            `json:"activeHubs"`
	GreenZones     []int            `json:"greenZones"`
	CostBreakdown  *CostBreakdown   `json:"costBreakdown,omitempty"`
	Utilization    []UtilizationRow `json:"utilization"`
	SlotCounts     []int            `json:"slotCounts"`
	NAssigned      int              `json:"nAssigned"`
	Unassigned     int              `json:"unassigned"`
	Routes         [][][2]int       `json:"routes,omitempty"` // per assignment: cells as [row, col]
	Summary        *SolveSummary    `json:"summary,omitempty"`
}

// SolveSummary is a compact roll-up for dashboards.
type SolveSummary struct {
	MeanUtilizationPct float64 `json:"meanUtilizationPct"`
	PeakSlotCount      int     `json:"peakSlotCount"`
	TotalDistance      float64 `json:"totalDistance"`
	SolveMillis        int64   `json:"solveMillis"`
}
