package engine

import "hubflow/internal/model"

// Solver floating rounding tolerance for reading binaries back out.
const valueThreshold = 0.99

// Extract reconstructs assignments, active hubs, and green zones from the
// solved variable vector and delegates to the evaluator for costs and
// utilization. A non-solved status is a normal, reportable result: the
// assignment fields come back empty, never as an error.
func Extract(sc *SolveContext, sol ExactSolution) ExactOutcome {
	out := ExactOutcome{Status: sol.Status, Message: sol.Message}
	if !sol.Status.Solved() || sol.Values == nil {
		out.Sum = emptySummary(sc)
		return out
	}

	idx := sc.Index
	assignments := make([]model.Assignment, 0, idx.Trucks)
	for t := 0; t < idx.Trucks; t++ {
		for h := 0; h < idx.Hubs; h++ {
			for s := 0; s < idx.Slots; s++ {
				if sol.Values[idx.X(t, h, s)] >= valueThreshold {
					assignments = append(assignments, model.Assignment{TruckID: t, HubID: h, SlotID: s})
				}
			}
		}
	}
	activeHubs := make([]int, 0, idx.Hubs)
	for h := 0; h < idx.Hubs; h++ {
		if sol.Values[idx.Y(h)] >= valueThreshold {
			activeHubs = append(activeHubs, h)
		}
	}
	greenZones := make([]int, 0, idx.Zones)
	for z := 0; z < idx.Zones; z++ {
		if sol.Values[idx.G(z)] >= valueThreshold {
			greenZones = append(greenZones, z)
		}
	}

	out.Objective = sol.Objective
	out.Sum = Summary{
		Assignments: assignments,
		ActiveHubs:  activeHubs,
		GreenZones:  greenZones,
		Breakdown:   Evaluate(sc.Data, assignments, greenZones, sc.Weights),
		Utilization: Utilization(sc.Data, assignments),
		SlotCounts:  SlotCounts(assignments, idx.Slots),
		NAssigned:   len(assignments),
	}
	return out
}

func emptySummary(sc *SolveContext) Summary {
	return Summary{
		Assignments: []model.Assignment{},
		ActiveHubs:  []int{},
		GreenZones:  []int{},
		Utilization: Utilization(sc.Data, nil),
		SlotCounts:  make([]int, sc.Index.Slots),
	}
}
