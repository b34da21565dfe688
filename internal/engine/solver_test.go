package engine

import (
	"math"
	"reflect"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"

	"hubflow/internal/dataset"
	"hubflow/internal/model"
)

// tinyDataset: two trucks in one zone, one hub with capacity 1 per slot,
// two slots. The only feasible plan spreads the trucks across both slots.
func tinyDataset() *model.Dataset {
	return &model.Dataset{
		Trucks: []model.Truck{{ID: 0, OriginZone: 0}, {ID: 1, OriginZone: 0}},
		Hubs:   []model.Hub{{ID: 0, ZoneID: 0, CapacityPerSlot: 1, RevenuePerTruck: 10}},
		Zones:  []model.Zone{{ID: 0, PollutionLevel: 0.5, ResidentialSensitivity: 0.5}},
		Slots: []model.TimeSlot{
			{ID: 0, Hour: 0, CongestionMultiplier: 0.6},
			{ID: 1, Hour: 1, CongestionMultiplier: 0.7},
		},
		Distances: mat.NewSymDense(1, nil),
	}
}

func genDataset(t *testing.T, seed int64) *model.Dataset {
	t.Helper()
	d, err := dataset.Generate(dataset.Params{
		NumTrucks: 20, NumHubs: 3, NumZones: 4, NumSlots: 6,
		Seed: seed, PeakMultiplier: 2.0,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return d
}

func solveGenerated(t *testing.T, seed int64, b model.Budget) (*SolveContext, ExactOutcome) {
	t.Helper()
	d := genDataset(t, seed)
	sc, err := Build(d, model.DefaultWeights(), b)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	sol := Solve(sc, Options{TimeLimit: 30 * time.Second})
	return sc, Extract(sc, sol)
}

func TestSolveCapacitySplitsSlots(t *testing.T) {
	d := tinyDataset()
	sc, err := Build(d, model.DefaultWeights(), model.Budget{Total: 100, HubCost: 100, GreenZoneCost: 50})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	out := Extract(sc, Solve(sc, Options{}))
	if out.Status != StatusOptimal {
		t.Fatalf("status: got %s, want %s (%s)", out.Status, StatusOptimal, out.Message)
	}
	if len(out.Sum.Assignments) != 2 {
		t.Fatalf("assignments: got %d, want 2", len(out.Sum.Assignments))
	}
	slots := map[int]bool{}
	for _, a := range out.Sum.Assignments {
		if a.HubID != 0 {
			t.Fatalf("hub: got %d, want 0", a.HubID)
		}
		if slots[a.SlotID] {
			t.Fatalf("slot %d used twice with capacity 1", a.SlotID)
		}
		slots[a.SlotID] = true
	}
}

func TestSolveBudgetTooSmallIsInfeasible(t *testing.T) {
	d := tinyDataset()
	sc, err := Build(d, model.DefaultWeights(), model.Budget{Total: 50, HubCost: 100, GreenZoneCost: 50})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	out := Extract(sc, Solve(sc, Options{}))
	if out.Status != StatusInfeasible {
		t.Fatalf("status: got %s, want %s", out.Status, StatusInfeasible)
	}
	if len(out.Sum.Assignments) != 0 {
		t.Fatalf("infeasible result carries %d assignments", len(out.Sum.Assignments))
	}
	if out.Sum.NAssigned != 0 {
		t.Fatalf("infeasible result reports %d assigned", out.Sum.NAssigned)
	}
}

func TestSolveInvariants(t *testing.T) {
	b := model.DefaultBudget()
	sc, out := solveGenerated(t, 7, b)
	if !out.Status.Solved() {
		t.Fatalf("status: got %s (%s)", out.Status, out.Message)
	}
	d := sc.Data

	// Every truck assigned exactly once.
	seen := map[int]int{}
	for _, a := range out.Sum.Assignments {
		seen[a.TruckID]++
	}
	if len(seen) != len(d.Trucks) {
		t.Fatalf("assigned trucks: got %d, want %d", len(seen), len(d.Trucks))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("truck %d assigned %d times", id, n)
		}
	}

	// Per (hub, slot) load within capacity, and only active hubs used.
	active := map[int]bool{}
	for _, h := range out.Sum.ActiveHubs {
		active[h] = true
	}
	load := map[[2]int]int{}
	for _, a := range out.Sum.Assignments {
		if !active[a.HubID] {
			t.Fatalf("truck %d routed to inactive hub %d", a.TruckID, a.HubID)
		}
		load[[2]int{a.HubID, a.SlotID}]++
	}
	for key, n := range load {
		if cap := d.Hubs[key[0]].CapacityPerSlot; n > cap {
			t.Fatalf("hub %d slot %d load %d exceeds capacity %d", key[0], key[1], n, cap)
		}
	}

	// Spending within budget.
	spend := float64(len(out.Sum.ActiveHubs))*b.HubCost + float64(len(out.Sum.GreenZones))*b.GreenZoneCost
	if spend > b.Total+1e-9 {
		t.Fatalf("spend %.2f exceeds budget %.2f", spend, b.Total)
	}
}

func TestSolveObjectiveMatchesEvaluator(t *testing.T) {
	_, out := solveGenerated(t, 11, model.DefaultBudget())
	if !out.Status.Solved() {
		t.Fatalf("status: got %s (%s)", out.Status, out.Message)
	}
	if diff := math.Abs(out.Objective - out.Sum.Breakdown.Objective()); diff > 1e-3 {
		t.Fatalf("objective %.6f vs evaluator %.6f (diff %.6f)", out.Objective, out.Sum.Breakdown.Objective(), diff)
	}
}

func TestSolveDeterministic(t *testing.T) {
	_, a := solveGenerated(t, 21, model.DefaultBudget())
	_, b := solveGenerated(t, 21, model.DefaultBudget())
	if a.Status != b.Status {
		t.Fatalf("status differs: %s vs %s", a.Status, b.Status)
	}
	if !reflect.DeepEqual(a.Sum.Assignments, b.Sum.Assignments) {
		t.Fatal("assignments differ between identical runs")
	}
	if !reflect.DeepEqual(a.Sum.ActiveHubs, b.Sum.ActiveHubs) || !reflect.DeepEqual(a.Sum.GreenZones, b.Sum.GreenZones) {
		t.Fatal("activation decisions differ between identical runs")
	}
}

func TestSolvePanicSurfacesAsError(t *testing.T) {
	d := tinyDataset()
	sc, err := Build(d, model.DefaultWeights(), model.DefaultBudget())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// A corrupted context trips the search; the fault must come back as a
	// status, not a panic.
	sc.Data.Slots = nil
	out := Solve(sc, Options{})
	if out.Status != StatusError {
		t.Fatalf("status: got %s, want %s", out.Status, StatusError)
	}
	if out.Message == "" {
		t.Fatal("error status carries no message")
	}
}
