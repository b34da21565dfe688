// Package model holds the core domain types shared across the service.
package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Truck is a fleet vehicle with a fixed origin zone.
type Truck struct {
	ID         int `json:"truckId"`
	OriginZone int `json:"originZone"`
}

// Hub is a capacity-limited service location. The active flag is a
// solution-scoped decision and never stored on the entity.
type Hub struct {
	ID              int     `json:"hubId"`
	ZoneID          int     `json:"zoneId"`
	CapacityPerSlot int     `json:"capacityPerSlot"`
	RevenuePerTruck float64 `json:"revenuePerTruck"`
}

// Zone is a spatial region with pollution and residential-sensitivity
// attributes in [0,1].
type Zone struct {
	ID                     int     `json:"zoneId"`
	PollutionLevel         float64 `json:"pollutionLevel"`
	ResidentialSensitivity float64 `json:"residentialSensitivity"`
}

// TimeSlot is a discrete hourly bucket with a congestion multiplier.
type TimeSlot struct {
	ID                   int     `json:"slotId"`
	Hour                 int     `json:"hour"`
	CongestionMultiplier float64 `json:"congestionMultiplier"`
}

// Assignment places one truck at one hub in one time slot.
type Assignment struct {
	TruckID int `json:"truckId"`
	HubID   int `json:"hubId"`
	SlotID  int `json:"slotId"`
}

// Dataset is the immutable input to every solve. Distances is a symmetric
// zone-to-zone matrix with a zero diagonal.
type Dataset struct {
	Trucks    []Truck
	Hubs      []Hub
	Zones     []Zone
	Slots     []TimeSlot
	Distances *mat.SymDense
}

// Validate checks entity counts, index ranges, and value bounds.
func (d *Dataset) Validate() error {
	if len(d.Trucks) == 0 {
		return &ConfigurationError{Param: "trucks", Detail: "must be non-empty"}
	}
	if len(d.Hubs) == 0 {
		return &ConfigurationError{Param: "hubs", Detail: "must be non-empty"}
	}
	if len(d.Zones) == 0 {
		return &ConfigurationError{Param: "zones", Detail: "must be non-empty"}
	}
	if len(d.Slots) == 0 {
		return &ConfigurationError{Param: "slots", Detail: "must be non-empty"}
	}
	if d.Distances == nil {
		return &ConfigurationError{Param: "distances", Detail: "matrix missing"}
	}
	if n := d.Distances.SymmetricDim(); n != len(d.Zones) {
		return &ConfigurationError{Param: "distances", Detail: fmt.Sprintf("matrix is %dx%d, want %dx%d", n, n, len(d.Zones), len(d.Zones))}
	}
	// IDs double as slice indices everywhere downstream, so they must be
	// sequential from zero.
	nz := len(d.Zones)
	for i, t := range d.Trucks {
		if t.ID != i {
			return &ConfigurationError{Param: "trucks", Detail: fmt.Sprintf("truck id %d at position %d, ids must be sequential from 0", t.ID, i)}
		}
		if t.OriginZone < 0 || t.OriginZone >= nz {
			return &ConfigurationError{Param: "trucks", Detail: fmt.Sprintf("truck %d origin zone %d out of range", t.ID, t.OriginZone)}
		}
	}
	for i, h := range d.Hubs {
		if h.ID != i {
			return &ConfigurationError{Param: "hubs", Detail: fmt.Sprintf("hub id %d at position %d, ids must be sequential from 0", h.ID, i)}
		}
		if h.ZoneID < 0 || h.ZoneID >= nz {
			return &ConfigurationError{Param: "hubs", Detail: fmt.Sprintf("hub %d zone %d out of range", h.ID, h.ZoneID)}
		}
		if h.CapacityPerSlot < 1 {
			return &ConfigurationError{Param: "hubs", Detail: fmt.Sprintf("hub %d capacity %d, want >= 1", h.ID, h.CapacityPerSlot)}
		}
		if h.RevenuePerTruck < 0 {
			return &ConfigurationError{Param: "hubs", Detail: fmt.Sprintf("hub %d revenue %.2f, want >= 0", h.ID, h.RevenuePerTruck)}
		}
	}
	for i, z := range d.Zones {
		if z.ID != i {
			return &ConfigurationError{Param: "zones", Detail: fmt.Sprintf("zone id %d at position %d, ids must be sequential from 0", z.ID, i)}
		}
		if z.PollutionLevel < 0 || z.PollutionLevel > 1 {
			return &ConfigurationError{Param: "zones", Detail: fmt.Sprintf("zone %d pollution %.3f outside [0,1]", z.ID, z.PollutionLevel)}
		}
		if z.ResidentialSensitivity < 0 || z.ResidentialSensitivity > 1 {
			return &ConfigurationError{Param: "zones", Detail: fmt.Sprintf("zone %d sensitivity %.3f outside [0,1]", z.ID, z.ResidentialSensitivity)}
		}
	}
	for i, s := range d.Slots {
		if s.ID != i {
			return &ConfigurationError{Param: "slots", Detail: fmt.Sprintf("slot id %d at position %d, ids must be sequential from 0", s.ID, i)}
		}
		if s.Hour < 0 || s.Hour > 23 {
			return &ConfigurationError{Param: "slots", Detail: fmt.Sprintf("slot %d hour %d outside [0,23]", s.ID, s.Hour)}
		}
		if s.CongestionMultiplier <= 0 {
			return &ConfigurationError{Param: "slots", Detail: fmt.Sprintf("slot %d congestion %.3f, want > 0", s.ID, s.CongestionMultiplier)}
		}
	}
	return nil
}

// Weights scales the five objective terms. All must be non-negative.
type Weights struct {
	Congestion float64 `json:"congestion" yaml:"congestion"`
	Pollution  float64 `json:"pollution" yaml:"pollution"`
	Distance   float64 `json:"distance" yaml:"distance"`
	Revenue    float64 `json:"revenue" yaml:"revenue"`
	Livability float64 `json:"livability" yaml:"livability"`
}

// DefaultWeights mirrors the historical defaults of the platform.
func DefaultWeights() Weights {
	return Weights{Congestion: 1.0, Pollution: 1.5, Distance: 1.0, Revenue: 2.0, Livability: 1.2}
}

// Budget carries the activation economics for one solve.
type Budget struct {
	Total         float64 `json:"total" yaml:"total"`
	HubCost       float64 `json:"hubCost" yaml:"hub_cost"`
	GreenZoneCost float64 `json:"greenZoneCost" yaml:"green_zone_cost"`
}

// DefaultBudget matches the historical hub and green-zone pricing.
func DefaultBudget() Budget {
	return Budget{Total: 500, HubCost: 100, GreenZoneCost: 50}
}

// CostBreakdown is the evaluator output: raw and weight-scaled totals.
type CostBreakdown struct {
	Congestion float64 `json:"congestionCost"`
	Pollution  float64 `json:"pollutionCost"`
	Distance   float64 `json:"distanceCost"`
	Revenue    float64 `json:"revenue"`
	Livability float64 `json:"livability"`

	WeightedCongestion float64 `json:"weightedCongestion"`
	WeightedPollution  float64 `json:"weightedPollution"`
	WeightedDistance   float64 `json:"weightedDistance"`
	WeightedRevenue    float64 `json:"weightedRevenue"`
	WeightedLivability float64 `json:"weightedLivability"`
}

// Objective is the scalarized value: weighted costs minus weighted benefits.
func (c CostBreakdown) Objective() float64 {
	return c.WeightedCongestion + c.WeightedPollution + c.WeightedDistance -
		c.WeightedRevenue - c.WeightedLivability
}

// UtilizationRow reports assigned count vs capacity for one (hub, slot).
type UtilizationRow struct {
	HubID          int     `json:"hubId"`
	SlotID         int     `json:"slotId"`
	Assigned       int     `json:"assigned"`
	Capacity       int     `json:"capacity"`
	UtilizationPct float64 `json:"utilizationPct"`
}

// ConfigurationError reports a rejected parameter before any solving starts.
type ConfigurationError struct {
	Param  string
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Detail)
}
