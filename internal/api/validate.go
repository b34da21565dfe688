package api

import (
	"fmt"

	"hubflow/internal/config"
	"hubflow/internal/model"
)

// applyDefaults fills zero-valued request fields from tenant overrides,
// then the server config. Runs before validation so the bounds below see
// the effective values.
func applyDefaults(req *model.OptimizeRequest, cfg config.Config, d model.EngineDefaults) {
	if req.Algorithm == "" {
		req.Algorithm = "exact"
	}
	if req.NumTrucks == 0 {
		req.NumTrucks = 50
	}
	if req.NumHubs == 0 {
		req.NumHubs = 5
	}
	if req.NumZones == 0 {
		req.NumZones = 10
	}
	if req.NumSlots == 0 {
		req.NumSlots = 24
	}
	if req.Seed == 0 {
		req.Seed = 42
	}
	base := cfg.Budget()
	if req.Budget == 0 {
		if d.Budget != nil {
			req.Budget = *d.Budget
		} else {
			req.Budget = base.Total
		}
	}
	if req.HubCost == 0 {
		if d.HubCost != nil {
			req.HubCost = *d.HubCost
		} else {
			req.HubCost = base.HubCost
		}
	}
	if req.GreenZoneCost == 0 {
		if d.GreenZoneCost != nil {
			req.GreenZoneCost = *d.GreenZoneCost
		} else {
			req.GreenZoneCost = base.GreenZoneCost
		}
	}
	if req.PeakMultiplier == 0 {
		if d.PeakMultiplier != nil {
			req.PeakMultiplier = *d.PeakMultiplier
		} else {
			req.PeakMultiplier = cfg.Solver.PeakMult
		}
	}
	if req.TimeLimitSec == 0 {
		if d.TimeLimitSec != nil {
			req.TimeLimitSec = *d.TimeLimitSec
		} else {
			req.TimeLimitSec = int(cfg.Solver.TimeLimit.Std().Seconds())
		}
	}
	if req.Weights == nil {
		if d.Weights != nil {
			w := *d.Weights
			req.Weights = &w
		} else {
			w := cfg.Solver.Weights
			req.Weights = &w
		}
	}
}

// validateOptimizeRequest enforces the accepted parameter ranges. Every
// rejection names the offending parameter.
func validateOptimizeRequest(req *model.OptimizeRequest) error {
	if req.Algorithm != "exact" && req.Algorithm != "baseline" {
		return fmt.Errorf("algorithm must be exact or baseline, got %q", req.Algorithm)
	}
	if req.NumTrucks < 10 || req.NumTrucks > 500 {
		return fmt.Errorf("numTrucks must be in [10, 500], got %d", req.NumTrucks)
	}
	if req.NumHubs < 1 || req.NumHubs > 20 {
		return fmt.Errorf("numHubs must be in [1, 20], got %d", req.NumHubs)
	}
	if req.NumZones < 1 || req.NumZones > 100 {
		return fmt.Errorf("numZones must be in [1, 100], got %d", req.NumZones)
	}
	if req.NumSlots < 1 || req.NumSlots > 48 {
		return fmt.Errorf("numSlots must be in [1, 48], got %d", req.NumSlots)
	}
	if req.Budget < 100 || req.Budget > 2000 {
		return fmt.Errorf("budget must be in [100, 2000], got %g", req.Budget)
	}
	if req.PeakMultiplier < 0.5 || req.PeakMultiplier > 3.0 {
		return fmt.Errorf("peakMultiplier must be in [0.5, 3.0], got %g", req.PeakMultiplier)
	}
	if req.HubCost <= 0 {
		return fmt.Errorf("hubCost must be > 0, got %g", req.HubCost)
	}
	if req.GreenZoneCost <= 0 {
		return fmt.Errorf("greenZoneCost must be > 0, got %g", req.GreenZoneCost)
	}
	if req.TimeLimitSec < 0 {
		return fmt.Errorf("timeLimitSec must be >= 0, got %d", req.TimeLimitSec)
	}
	if req.Weights != nil {
		if req.Weights.Congestion < 0 || req.Weights.Pollution < 0 || req.Weights.Distance < 0 ||
			req.Weights.Revenue < 0 || req.Weights.Livability < 0 {
			return fmt.Errorf("weights must all be >= 0")
		}
	}
	return nil
}

func validateNetworkRequest(req *model.NetworkRequest) error {
	if req.Rows < 1 || req.Rows > 200 {
		return fmt.Errorf("rows must be in [1, 200], got %d", req.Rows)
	}
	if req.Cols < 1 || req.Cols > 200 {
		return fmt.Errorf("cols must be in [1, 200], got %d", req.Cols)
	}
	if req.NumZones < 1 || req.NumZones > 100 {
		return fmt.Errorf("numZones must be in [1, 100], got %d", req.NumZones)
	}
	if req.NumHubs < 1 || req.NumHubs > 20 {
		return fmt.Errorf("numHubs must be in [1, 20], got %d", req.NumHubs)
	}
	return nil
}
