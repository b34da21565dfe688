package engine

import "hubflow/internal/model"

// Status is the exact-solve outcome classification.
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusFeasible   Status = "Feasible"
	StatusInfeasible Status = "Infeasible"
	// StatusUnbounded is kept for interface completeness; the bounded
	// binary program cannot produce it.
	StatusUnbounded Status = "Unbounded"
	StatusNotSolved Status = "NotSolved"
	StatusError     Status = "Error"
)

// Solved reports whether the status carries a usable assignment.
func (s Status) Solved() bool { return s == StatusOptimal || s == StatusFeasible }

// Summary is the solution shape shared by both solve paths. The router,
// store, and API consume this one interface regardless of origin.
type Summary struct {
	Assignments []model.Assignment
	ActiveHubs  []int
	GreenZones  []int
	Breakdown   model.CostBreakdown
	Utilization []model.UtilizationRow
	SlotCounts  []int
	NAssigned   int
}

// Outcome is the tagged result variant: exact solver or baseline heuristic.
type Outcome interface {
	Label() string
	Summary() Summary
}

// ExactOutcome is the solver-path variant.
type ExactOutcome struct {
	Status    Status
	Objective float64
	Message   string // set when Status is Error
	Sum       Summary
}

func (o ExactOutcome) Label() string    { return string(o.Status) }
func (o ExactOutcome) Summary() Summary { return o.Sum }

// BaselineOutcome is the heuristic-path variant. Unassigned trucks are a
// reported count, never an error.
type BaselineOutcome struct {
	Unassigned int
	Objective  float64
	Sum        Summary
}

func (o BaselineOutcome) Label() string    { return "Baseline" }
func (o BaselineOutcome) Summary() Summary { return o.Sum }
