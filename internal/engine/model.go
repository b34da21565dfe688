// Package engine implements the assignment optimizer: the mixed-integer
// model, the exact branch-and-bound solve path, the baseline heuristic, and
// the shared cost/utilization evaluator.
package engine

import (
	"fmt"

	"hubflow/internal/model"
)

// VarIndex maps the structured decision variables onto one flat value
// vector: x[t,h,s] first, then y[h], then g[z].
type VarIndex struct {
	Trucks int
	Hubs   int
	Zones  int
	Slots  int
}

func (v VarIndex) X(t, h, s int) int { return (t*v.Hubs+h)*v.Slots + s }
func (v VarIndex) Y(h int) int       { return v.Trucks*v.Hubs*v.Slots + h }
func (v VarIndex) G(z int) int       { return v.Trucks*v.Hubs*v.Slots + v.Hubs + z }
func (v VarIndex) Len() int          { return v.Trucks*v.Hubs*v.Slots + v.Hubs + v.Zones }

// SolveContext is the built problem: dimensions, variable index maps, and
// the objective coefficient vector, threaded explicitly into the solver and
// extractor. The constraint system is fixed-form: each truck assigned
// exactly once, per-(hub,slot) capacity gated by activation, x <= y, and
// the activation budget.
type SolveContext struct {
	Data    *model.Dataset
	Weights model.Weights
	Budget  model.Budget
	Index   VarIndex
	Cost    []float64
}

// Build translates a Dataset plus weights and budget into a SolveContext.
// It performs no solving and has no side effects beyond allocation.
func Build(data *model.Dataset, w model.Weights, b model.Budget) (*SolveContext, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if w.Congestion < 0 || w.Pollution < 0 || w.Distance < 0 || w.Revenue < 0 || w.Livability < 0 {
		return nil, &model.ConfigurationError{Param: "weights", Detail: "all weights must be >= 0"}
	}
	if b.HubCost <= 0 {
		return nil, &model.ConfigurationError{Param: "hubCost", Detail: fmt.Sprintf("%.2f, want > 0", b.HubCost)}
	}
	if b.GreenZoneCost <= 0 {
		return nil, &model.ConfigurationError{Param: "greenZoneCost", Detail: fmt.Sprintf("%.2f, want > 0", b.GreenZoneCost)}
	}
	if b.Total < 0 {
		return nil, &model.ConfigurationError{Param: "budget", Detail: fmt.Sprintf("%.2f, want >= 0", b.Total)}
	}

	idx := VarIndex{
		Trucks: len(data.Trucks),
		Hubs:   len(data.Hubs),
		Zones:  len(data.Zones),
		Slots:  len(data.Slots),
	}
	cost := make([]float64, idx.Len())
	for t, truck := range data.Trucks {
		for h := range data.Hubs {
			for s := range data.Slots {
				cost[idx.X(t, h, s)] = pairCost(data, w, truck.OriginZone, h, s)
			}
		}
	}
	// y[h] carries no direct objective coefficient; activation only gates
	// capacity and consumes budget.
	for z, zone := range data.Zones {
		cost[idx.G(z)] = -w.Livability * (1.0 + zone.ResidentialSensitivity)
	}
	return &SolveContext{Data: data, Weights: w, Budget: b, Index: idx, Cost: cost}, nil
}

// Objective evaluates the coefficient vector against a variable assignment.
func (sc *SolveContext) Objective(values []float64) float64 {
	total := 0.0
	for i, c := range sc.Cost {
		if c != 0 && values[i] != 0 {
			total += c * values[i]
		}
	}
	return total
}

// PairCost is the per-assignment objective contribution for a truck from
// the given origin zone served at (hub, slot).
func (sc *SolveContext) PairCost(originZone, h, s int) float64 {
	return pairCost(sc.Data, sc.Weights, originZone, h, s)
}

// GreenBenefit is the objective reduction from designating zone z green.
func (sc *SolveContext) GreenBenefit(z int) float64 {
	return sc.Weights.Livability * (1.0 + sc.Data.Zones[z].ResidentialSensitivity)
}

func pairCost(d *model.Dataset, w model.Weights, originZone, h, s int) float64 {
	hub := d.Hubs[h]
	return w.Congestion*d.Slots[s].CongestionMultiplier +
		w.Pollution*d.Zones[originZone].PollutionLevel*d.Zones[hub.ZoneID].ResidentialSensitivity +
		w.Distance*d.Distances.At(originZone, hub.ZoneID) -
		w.Revenue*hub.RevenuePerTruck
}
