package engine

import (
	"fmt"
	"math"
	"math/rand"

	"hubflow/internal/model"
)

// Baseline produces a feasible (possibly partial) assignment without the
// solver: first-fit hub activation by budget, lowest-id green zones with
// the remainder, then seeded random placement of trucks onto open
// (hub, slot) pairs. Deterministic per seed.
func Baseline(d *model.Dataset, w model.Weights, b model.Budget, seed int64) (BaselineOutcome, error) {
	if err := d.Validate(); err != nil {
		return BaselineOutcome{}, err
	}
	if b.HubCost <= 0 {
		return BaselineOutcome{}, &model.ConfigurationError{Param: "hubCost", Detail: "must be > 0"}
	}
	if b.GreenZoneCost <= 0 {
		return BaselineOutcome{}, &model.ConfigurationError{Param: "greenZoneCost", Detail: "must be > 0"}
	}
	if b.Total < 0 {
		return BaselineOutcome{}, &model.ConfigurationError{Param: "budget", Detail: fmt.Sprintf("%.2f, want >= 0", b.Total)}
	}
	rng := rand.New(rand.NewSource(seed))

	nTrucks := len(d.Trucks)
	nHubs := len(d.Hubs)
	nZones := len(d.Zones)
	nSlots := len(d.Slots)

	nActive := int(math.Floor(b.Total/b.HubCost + 1e-9))
	if nActive > nHubs {
		nActive = nHubs
	}
	remaining := b.Total - float64(nActive)*b.HubCost
	nGreen := int(math.Floor(remaining/b.GreenZoneCost + 1e-9))
	if nGreen < 0 {
		nGreen = 0
	}
	if nGreen > nZones {
		nGreen = nZones
	}
	activeHubs := make([]int, nActive)
	for h := range activeHubs {
		activeHubs[h] = h
	}
	greenZones := make([]int, nGreen)
	for z := range greenZones {
		greenZones[z] = z
	}

	capRemaining := make([]int, nHubs*nSlots)
	for _, h := range activeHubs {
		for s := 0; s < nSlots; s++ {
			capRemaining[h*nSlots+s] = d.Hubs[h].CapacityPerSlot
		}
	}

	order := make([]int, nTrucks)
	for i := range order {
		order[i] = i
	}
	rng.Shuffle(nTrucks, func(i, j int) { order[i], order[j] = order[j], order[i] })

	assignments := make([]model.Assignment, 0, nTrucks)
	options := make([]int, 0, nActive*nSlots) // encoded h*nSlots+s
	for _, t := range order {
		options = options[:0]
		for _, h := range activeHubs {
			for s := 0; s < nSlots; s++ {
				if capRemaining[h*nSlots+s] > 0 {
					options = append(options, h*nSlots+s)
				}
			}
		}
		if len(options) == 0 {
			break
		}
		pick := options[rng.Intn(len(options))]
		capRemaining[pick]--
		assignments = append(assignments, model.Assignment{TruckID: t, HubID: pick / nSlots, SlotID: pick % nSlots})
	}

	breakdown := Evaluate(d, assignments, greenZones, w)
	return BaselineOutcome{
		Unassigned: nTrucks - len(assignments),
		Objective:  breakdown.Objective(),
		Sum: Summary{
			Assignments: assignments,
			ActiveHubs:  activeHubs,
			GreenZones:  greenZones,
			Breakdown:   breakdown,
			Utilization: Utilization(d, assignments),
			SlotCounts:  SlotCounts(assignments, nSlots),
			NAssigned:   len(assignments),
		},
	}, nil
}
