package model

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func validDataset() *Dataset {
	return &Dataset{
		Trucks: []Truck{{ID: 0, OriginZone: 0}, {ID: 1, OriginZone: 1}},
		Hubs:   []Hub{{ID: 0, ZoneID: 0, CapacityPerSlot: 2, RevenuePerTruck: 10}},
		Zones: []Zone{
			{ID: 0, PollutionLevel: 0.3, ResidentialSensitivity: 0.5},
			{ID: 1, PollutionLevel: 0.6, ResidentialSensitivity: 0.2},
		},
		Slots:     []TimeSlot{{ID: 0, Hour: 8, CongestionMultiplier: 1.2}, {ID: 1, Hour: 9, CongestionMultiplier: 1.4}},
		Distances: mat.NewSymDense(2, nil),
	}
}

func TestValidateAcceptsWellFormedDataset(t *testing.T) {
	if err := validDataset().Validate(); err != nil {
		t.Fatalf("valid dataset rejected: %v", err)
	}
}

func TestValidateRejectsNonSequentialIDs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(d *Dataset)
		param  string
	}{
		{"truck", func(d *Dataset) { d.Trucks[1].ID = 5 }, "trucks"},
		{"hub", func(d *Dataset) { d.Hubs[0].ID = 1 }, "hubs"},
		{"zone", func(d *Dataset) { d.Zones[1].ID = 3 }, "zones"},
		{"slot", func(d *Dataset) { d.Slots[0].ID = 2 }, "slots"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDataset()
			tc.mutate(d)
			err := d.Validate()
			var ce *ConfigurationError
			if !errors.As(err, &ce) {
				t.Fatalf("want ConfigurationError, got %v", err)
			}
			if ce.Param != tc.param {
				t.Fatalf("param: got %s, want %s", ce.Param, tc.param)
			}
		})
	}
}
