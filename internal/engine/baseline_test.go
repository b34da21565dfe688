package engine

import (
	"errors"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"

	"hubflow/internal/model"
)

func TestBaselineDeterministicPerSeed(t *testing.T) {
	d := genDataset(t, 5)
	b := model.DefaultBudget()
	w := model.DefaultWeights()

	first, err := Baseline(d, w, b, 99)
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}
	second, err := Baseline(d, w, b, 99)
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}
	if !reflect.DeepEqual(first.Sum.Assignments, second.Sum.Assignments) {
		t.Fatal("assignments differ between identical seeds")
	}
	if first.Objective != second.Objective {
		t.Fatalf("objective differs: %.6f vs %.6f", first.Objective, second.Objective)
	}
}

func TestBaselineRespectsBudgetAndCapacity(t *testing.T) {
	d := genDataset(t, 13)
	b := model.DefaultBudget()
	out, err := Baseline(d, model.DefaultWeights(), b, 1)
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}

	spend := float64(len(out.Sum.ActiveHubs))*b.HubCost + float64(len(out.Sum.GreenZones))*b.GreenZoneCost
	if spend > b.Total+1e-9 {
		t.Fatalf("spend %.2f exceeds budget %.2f", spend, b.Total)
	}

	load := map[[2]int]int{}
	seen := map[int]bool{}
	for _, a := range out.Sum.Assignments {
		if seen[a.TruckID] {
			t.Fatalf("truck %d assigned twice", a.TruckID)
		}
		seen[a.TruckID] = true
		load[[2]int{a.HubID, a.SlotID}]++
	}
	for key, n := range load {
		if cap := d.Hubs[key[0]].CapacityPerSlot; n > cap {
			t.Fatalf("hub %d slot %d load %d exceeds capacity %d", key[0], key[1], n, cap)
		}
	}
	if out.Unassigned != len(d.Trucks)-len(out.Sum.Assignments) {
		t.Fatalf("unassigned %d, want %d", out.Unassigned, len(d.Trucks)-len(out.Sum.Assignments))
	}
}

func TestBaselineNegativeBudgetRejected(t *testing.T) {
	d := genDataset(t, 7)
	_, err := Baseline(d, model.DefaultWeights(), model.Budget{Total: -100, HubCost: 100, GreenZoneCost: 50}, 1)
	var ce *model.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConfigurationError, got %v", err)
	}
	if ce.Param != "budget" {
		t.Fatalf("param: got %s, want budget", ce.Param)
	}
}

func TestBaselineCapacityExhaustion(t *testing.T) {
	// Three trucks, one hub with one slot of capacity 2: exactly one truck
	// is left over.
	d := &model.Dataset{
		Trucks:    []model.Truck{{ID: 0, OriginZone: 0}, {ID: 1, OriginZone: 0}, {ID: 2, OriginZone: 0}},
		Hubs:      []model.Hub{{ID: 0, ZoneID: 0, CapacityPerSlot: 2, RevenuePerTruck: 5}},
		Zones:     []model.Zone{{ID: 0, PollutionLevel: 0.2, ResidentialSensitivity: 0.4}},
		Slots:     []model.TimeSlot{{ID: 0, Hour: 8, CongestionMultiplier: 1.5}},
		Distances: mat.NewSymDense(1, nil),
	}
	out, err := Baseline(d, model.DefaultWeights(), model.Budget{Total: 100, HubCost: 100, GreenZoneCost: 50}, 3)
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}
	if len(out.Sum.Assignments) != 2 {
		t.Fatalf("assignments: got %d, want 2", len(out.Sum.Assignments))
	}
	if out.Unassigned != 1 {
		t.Fatalf("unassigned: got %d, want 1", out.Unassigned)
	}
	if out.Label() != "Baseline" {
		t.Fatalf("label: got %s", out.Label())
	}
}
