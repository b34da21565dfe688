package grid

import (
	"reflect"
	"testing"
)

func TestBuildPartitionFormula(t *testing.T) {
	n, err := Build(6, 6, 4, 2, 1)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	// side = ceil(sqrt(4)) = 2; zone = (i*2/6)*2 + j*2/6 with floor division.
	side := 2
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			want := (i*side/6)*side + j*side/6
			if want > 3 {
				want = 3
			}
			if n.ZoneOf[i][j] != want {
				t.Fatalf("zone at (%d,%d): got %d, want %d", i, j, n.ZoneOf[i][j], want)
			}
		}
	}
}

func TestBuildClampsZoneID(t *testing.T) {
	// 3 zones on a 4x4 grid: side = 2, so the raw formula can produce 3,
	// which is the last valid id after clamping.
	n, err := Build(4, 4, 3, 1, 1)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if z := n.ZoneOf[i][j]; z < 0 || z > 2 {
				t.Fatalf("zone at (%d,%d) out of range: %d", i, j, z)
			}
		}
	}
}

func TestBuildDeterministicHubPlacement(t *testing.T) {
	a, err := Build(8, 8, 4, 6, 5)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b, err := Build(8, 8, 4, 6, 5)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !reflect.DeepEqual(a.HubCells, b.HubCells) {
		t.Fatal("identical seeds placed hubs differently")
	}
	for h, c := range a.HubCells {
		if c.Row < 0 || c.Row >= 8 || c.Col < 0 || c.Col >= 8 {
			t.Fatalf("hub %d outside grid: %+v", h, c)
		}
		if got, want := a.ZoneOf[c.Row][c.Col], h%4; got != want {
			t.Fatalf("hub %d in zone %d, want %d", h, got, want)
		}
	}
}

func TestTruckOrigins(t *testing.T) {
	n, err := Build(6, 6, 4, 2, 9)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	zones := []int{0, 1, 2, 3, 0}
	a, err := n.TruckOrigins(zones, 17)
	if err != nil {
		t.Fatalf("origins: %v", err)
	}
	b, err := n.TruckOrigins(zones, 17)
	if err != nil {
		t.Fatalf("origins: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical seeds drew different origins")
	}
	for i, c := range a {
		if n.ZoneOf[c.Row][c.Col] != zones[i] {
			t.Fatalf("truck %d origin %+v in zone %d, want %d", i, c, n.ZoneOf[c.Row][c.Col], zones[i])
		}
	}
	if _, err := n.TruckOrigins([]int{7}, 1); err == nil {
		t.Fatal("out-of-range zone accepted")
	}
}

func TestBuildRejectsBadDimensions(t *testing.T) {
	if _, err := Build(0, 5, 1, 1, 1); err == nil {
		t.Fatal("zero rows accepted")
	}
	if _, err := Build(5, 5, 0, 1, 1); err == nil {
		t.Fatal("zero zones accepted")
	}
	if _, err := Build(5, 5, 1, 0, 1); err == nil {
		t.Fatal("zero hubs accepted")
	}
}
