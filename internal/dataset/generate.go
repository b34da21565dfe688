// Package dataset produces the synthetic inputs the optimizer consumes.
// All randomness flows through an explicitly seeded generator so concurrent
// requests with different seeds cannot interfere.
package dataset

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"hubflow/internal/model"
)

// Params controls one generation run.
type Params struct {
	NumTrucks      int
	NumHubs        int
	NumZones       int
	NumSlots       int
	Seed           int64
	PeakMultiplier float64
}

// Generate builds a full Dataset from Params. Deterministic per seed.
func Generate(p Params) (*model.Dataset, error) {
	if p.NumTrucks <= 0 {
		return nil, &model.ConfigurationError{Param: "numTrucks", Detail: "must be > 0"}
	}
	if p.NumHubs <= 0 {
		return nil, &model.ConfigurationError{Param: "numHubs", Detail: "must be > 0"}
	}
	if p.NumZones <= 0 {
		return nil, &model.ConfigurationError{Param: "numZones", Detail: "must be > 0"}
	}
	if p.NumSlots <= 0 {
		return nil, &model.ConfigurationError{Param: "numSlots", Detail: "must be > 0"}
	}
	if p.PeakMultiplier <= 0 {
		p.PeakMultiplier = 1.0
	}
	rng := rand.New(rand.NewSource(p.Seed))

	d := &model.Dataset{
		Trucks:    generateTrucks(rng, p.NumTrucks, p.NumZones),
		Hubs:      generateHubs(rng, p.NumHubs, p.NumZones),
		Zones:     generateZones(rng, p.NumZones),
		Slots:     generateSlots(rng, p.NumSlots, p.PeakMultiplier),
		Distances: generateDistances(rng, p.NumZones),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func generateTrucks(rng *rand.Rand, n, nZones int) []model.Truck {
	trucks := make([]model.Truck, n)
	for i := range trucks {
		trucks[i] = model.Truck{ID: i, OriginZone: rng.Intn(nZones)}
	}
	return trucks
}

// Hub capacity is 10-50 trucks per slot; revenue 20-100 per truck served.
func generateHubs(rng *rand.Rand, n, nZones int) []model.Hub {
	hubs := make([]model.Hub, n)
	for i := range hubs {
		hubs[i] = model.Hub{
			ID:              i,
			ZoneID:          rng.Intn(nZones),
			CapacityPerSlot: 10 + rng.Intn(41),
			RevenuePerTruck: round2(20 + 80*rng.Float64()),
		}
	}
	return hubs
}

func generateZones(rng *rand.Rand, n int) []model.Zone {
	zones := make([]model.Zone, n)
	for i := range zones {
		zones[i] = model.Zone{
			ID:                     i,
			PollutionLevel:         round3(rng.Float64()),
			ResidentialSensitivity: round3(rng.Float64()),
		}
	}
	return zones
}

// Slots map to hours 0..n-1. Morning (7-9) and evening (17-19) peaks draw
// congestion from 1.2-2.0 scaled by peakMult; off-peak draws from 0.5-1.0.
func generateSlots(rng *rand.Rand, n int, peakMult float64) []model.TimeSlot {
	slots := make([]model.TimeSlot, n)
	for i := range slots {
		hour := i % 24
		var c float64
		if (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19) {
			c = (1.2 + 0.8*rng.Float64()) * peakMult
		} else {
			c = 0.5 + 0.5*rng.Float64()
		}
		slots[i] = model.TimeSlot{ID: i, Hour: hour, CongestionMultiplier: round3(c)}
	}
	return slots
}

// generateDistances places zones on a rough grid, takes L1 distances with a
// per-pair random scale, and symmetrizes the result.
func generateDistances(rng *rand.Rand, nZones int) *mat.SymDense {
	side := int(math.Ceil(math.Sqrt(float64(nZones))))
	coordX := make([]int, nZones)
	coordY := make([]int, nZones)
	for i := 0; i < nZones; i++ {
		coordX[i] = i % side
		coordY[i] = i / side
	}
	raw := make([]float64, nZones*nZones)
	for i := 0; i < nZones; i++ {
		for j := 0; j < nZones; j++ {
			l1 := math.Abs(float64(coordX[i]-coordX[j])) + math.Abs(float64(coordY[i]-coordY[j]))
			raw[i*nZones+j] = round2(l1 * (0.5 + 1.5*rng.Float64()))
		}
	}
	dist := mat.NewSymDense(nZones, nil)
	for i := 0; i < nZones; i++ {
		for j := i + 1; j < nZones; j++ {
			dist.SetSym(i, j, (raw[i*nZones+j]+raw[j*nZones+i])/2)
		}
	}
	return dist
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
