package engine

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"hubflow/internal/model"
)

func TestEvaluateHandComputed(t *testing.T) {
	dist := mat.NewSymDense(2, nil)
	dist.SetSym(0, 1, 3.0)
	d := &model.Dataset{
		Trucks: []model.Truck{{ID: 0, OriginZone: 0}},
		Hubs:   []model.Hub{{ID: 0, ZoneID: 1, CapacityPerSlot: 4, RevenuePerTruck: 20}},
		Zones: []model.Zone{
			{ID: 0, PollutionLevel: 0.5, ResidentialSensitivity: 0.1},
			{ID: 1, PollutionLevel: 0.2, ResidentialSensitivity: 0.8},
		},
		Slots:     []model.TimeSlot{{ID: 0, Hour: 8, CongestionMultiplier: 2.0}},
		Distances: dist,
	}
	w := model.Weights{Congestion: 1, Pollution: 1.5, Distance: 1, Revenue: 2, Livability: 1.2}
	assignments := []model.Assignment{{TruckID: 0, HubID: 0, SlotID: 0}}
	bd := Evaluate(d, assignments, []int{1}, w)

	// congestion 2.0; pollution 0.5*0.8=0.4; distance 3; revenue 20;
	// livability (1+0.8)=1.8
	if bd.Congestion != 2.0 || bd.Pollution != 0.4 || bd.Distance != 3.0 || bd.Revenue != 20.0 || bd.Livability != 1.8 {
		t.Fatalf("raw terms: %+v", bd)
	}
	want := 1*2.0 + 1.5*0.4 + 1*3.0 - 2*20.0 - 1.2*1.8
	if math.Abs(bd.Objective()-want) > 1e-9 {
		t.Fatalf("objective: got %.6f, want %.6f", bd.Objective(), want)
	}
}

func TestUtilizationPercentages(t *testing.T) {
	d := &model.Dataset{
		Trucks: []model.Truck{{ID: 0, OriginZone: 0}, {ID: 1, OriginZone: 0}, {ID: 2, OriginZone: 0}},
		Hubs:   []model.Hub{{ID: 0, ZoneID: 0, CapacityPerSlot: 4, RevenuePerTruck: 0}},
		Zones:  []model.Zone{{ID: 0, PollutionLevel: 0, ResidentialSensitivity: 0}},
		Slots: []model.TimeSlot{
			{ID: 0, Hour: 0, CongestionMultiplier: 1},
			{ID: 1, Hour: 1, CongestionMultiplier: 1},
		},
		Distances: mat.NewSymDense(1, nil),
	}
	assignments := []model.Assignment{
		{TruckID: 0, HubID: 0, SlotID: 0},
		{TruckID: 1, HubID: 0, SlotID: 0},
		{TruckID: 2, HubID: 0, SlotID: 0},
	}
	rows := Utilization(d, assignments)
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want 2", len(rows))
	}
	if rows[0].Assigned != 3 || rows[0].UtilizationPct != 75.0 {
		t.Fatalf("slot 0: %+v", rows[0])
	}
	if rows[1].Assigned != 0 || rows[1].UtilizationPct != 0.0 {
		t.Fatalf("slot 1: %+v", rows[1])
	}

	counts := SlotCounts(assignments, 2)
	if counts[0] != 3 || counts[1] != 0 {
		t.Fatalf("slot counts: %v", counts)
	}
}
