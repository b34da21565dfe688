package predict

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"hubflow/internal/model"
)

func trainingDataset() *model.Dataset {
	return &model.Dataset{
		Trucks: []model.Truck{
			{ID: 0, OriginZone: 0},
			{ID: 1, OriginZone: 0},
			{ID: 2, OriginZone: 0},
			{ID: 3, OriginZone: 1},
		},
		Hubs: []model.Hub{
			{ID: 0, ZoneID: 0, CapacityPerSlot: 5, RevenuePerTruck: 10},
			{ID: 1, ZoneID: 1, CapacityPerSlot: 5, RevenuePerTruck: 10},
		},
		Zones: []model.Zone{
			{ID: 0, PollutionLevel: 0.1, ResidentialSensitivity: 0.1},
			{ID: 1, PollutionLevel: 0.2, ResidentialSensitivity: 0.2},
		},
		Slots:     []model.TimeSlot{{ID: 0, Hour: 0, CongestionMultiplier: 1}, {ID: 1, Hour: 1, CongestionMultiplier: 1}},
		Distances: mat.NewSymDense(2, nil),
	}
}

func TestTrainMajorityVote(t *testing.T) {
	d := trainingDataset()
	assignments := []model.Assignment{
		{TruckID: 0, HubID: 0, SlotID: 1},
		{TruckID: 1, HubID: 0, SlotID: 1},
		{TruckID: 2, HubID: 1, SlotID: 0},
		{TruckID: 3, HubID: 1, SlotID: 0},
	}
	p := Train(d, assignments)

	hub, slot, ok := p.Predict(0)
	if !ok || hub != 0 || slot != 1 {
		t.Fatalf("zone 0: got (%d,%d,%v), want (0,1,true)", hub, slot, ok)
	}
	hub, slot, ok = p.Predict(1)
	if !ok || hub != 1 || slot != 0 {
		t.Fatalf("zone 1: got (%d,%d,%v), want (1,0,true)", hub, slot, ok)
	}
}

func TestTrainTieBreaksLowIDs(t *testing.T) {
	d := trainingDataset()
	// Zone 0 split evenly between (1,1) and (0,1): the lower hub wins.
	assignments := []model.Assignment{
		{TruckID: 0, HubID: 1, SlotID: 1},
		{TruckID: 1, HubID: 0, SlotID: 1},
	}
	p := Train(d, assignments)
	hub, slot, ok := p.Predict(0)
	if !ok || hub != 0 || slot != 1 {
		t.Fatalf("tie break: got (%d,%d,%v), want (0,1,true)", hub, slot, ok)
	}
}

func TestPredictUnknownZone(t *testing.T) {
	p := Train(trainingDataset(), nil)
	if _, _, ok := p.Predict(5); ok {
		t.Fatal("unknown zone reported as known")
	}
}
