package engine

import (
	"math"

	"hubflow/internal/model"
)

// Evaluate computes the cost breakdown for an assignment list plus green
// zones. Pure; used identically by the exact and baseline paths so that
// consumers cannot distinguish solution origin from the shape.
func Evaluate(d *model.Dataset, assignments []model.Assignment, greenZones []int, w model.Weights) model.CostBreakdown {
	var cb model.CostBreakdown
	for _, a := range assignments {
		origin := d.Trucks[a.TruckID].OriginZone
		hub := d.Hubs[a.HubID]
		cb.Congestion += d.Slots[a.SlotID].CongestionMultiplier
		cb.Pollution += d.Zones[origin].PollutionLevel * d.Zones[hub.ZoneID].ResidentialSensitivity
		cb.Distance += d.Distances.At(origin, hub.ZoneID)
		cb.Revenue += hub.RevenuePerTruck
	}
	for _, z := range greenZones {
		cb.Livability += 1.0 + d.Zones[z].ResidentialSensitivity
	}
	cb.WeightedCongestion = w.Congestion * cb.Congestion
	cb.WeightedPollution = w.Pollution * cb.Pollution
	cb.WeightedDistance = w.Distance * cb.Distance
	cb.WeightedRevenue = w.Revenue * cb.Revenue
	cb.WeightedLivability = w.Livability * cb.Livability
	return cb
}

// Utilization reports assigned count, capacity, and percentage for every
// (hub, slot) pair, including empty ones.
func Utilization(d *model.Dataset, assignments []model.Assignment) []model.UtilizationRow {
	nHubs, nSlots := len(d.Hubs), len(d.Slots)
	counts := make([]int, nHubs*nSlots)
	for _, a := range assignments {
		counts[a.HubID*nSlots+a.SlotID]++
	}
	rows := make([]model.UtilizationRow, 0, nHubs*nSlots)
	for h := 0; h < nHubs; h++ {
		cap := d.Hubs[h].CapacityPerSlot
		for s := 0; s < nSlots; s++ {
			assigned := counts[h*nSlots+s]
			pct := 0.0
			if cap > 0 {
				pct = math.Round(1000*float64(assigned)/float64(cap)) / 10
			}
			rows = append(rows, model.UtilizationRow{
				HubID: h, SlotID: s, Assigned: assigned, Capacity: cap, UtilizationPct: pct,
			})
		}
	}
	return rows
}

// SlotCounts is the per-slot truck count distribution.
func SlotCounts(assignments []model.Assignment, nSlots int) []int {
	counts := make([]int, nSlots)
	for _, a := range assignments {
		counts[a.SlotID]++
	}
	return counts
}
