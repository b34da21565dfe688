package grid

import (
	"testing"

	"hubflow/internal/model"
)

func openGrid(t *testing.T, rows, cols int) *Network {
	t.Helper()
	n, err := Build(rows, cols, 1, 1, 1)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return n
}

func TestShortestPathManhattanLength(t *testing.T) {
	n := openGrid(t, 10, 10)
	start := Cell{Row: 1, Col: 2}
	end := Cell{Row: 7, Col: 8}
	path := n.ShortestPath(start, end, nil)
	want := 6 + 6 + 1 // Manhattan distance plus the start cell
	if len(path) != want {
		t.Fatalf("path length: got %d, want %d", len(path), want)
	}
	if path[0] != start || path[len(path)-1] != end {
		t.Fatalf("endpoints: %+v .. %+v", path[0], path[len(path)-1])
	}
	for i := 1; i < len(path); i++ {
		dr := path[i].Row - path[i-1].Row
		dc := path[i].Col - path[i-1].Col
		if dr*dr+dc*dc != 1 {
			t.Fatalf("non-adjacent step %+v -> %+v", path[i-1], path[i])
		}
	}
}

func TestShortestPathThreeByThree(t *testing.T) {
	n := openGrid(t, 3, 3)
	path := n.ShortestPath(Cell{0, 0}, Cell{1, 1}, nil)
	if len(path) != 3 {
		t.Fatalf("path length: got %d, want 3", len(path))
	}
}

func TestShortestPathDeterministicTieBreak(t *testing.T) {
	n := openGrid(t, 5, 5)
	a := n.ShortestPath(Cell{0, 0}, Cell{2, 2}, nil)
	b := n.ShortestPath(Cell{0, 0}, Cell{2, 2}, nil)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("paths diverge at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestShortestPathAvoidsBlocked(t *testing.T) {
	n := openGrid(t, 3, 3)
	blocked := map[Cell]struct{}{{Row: 1, Col: 0}: {}, {Row: 1, Col: 1}: {}}
	path := n.ShortestPath(Cell{0, 0}, Cell{2, 0}, blocked)
	for _, c := range path {
		if _, bad := blocked[c]; bad {
			t.Fatalf("path crosses blocked cell %+v", c)
		}
	}
	if path[len(path)-1] != (Cell{Row: 2, Col: 0}) {
		t.Fatalf("path does not reach target: %+v", path)
	}
}

func TestShortestPathDegenerateCases(t *testing.T) {
	n := openGrid(t, 3, 3)
	if p := n.ShortestPath(Cell{1, 1}, Cell{1, 1}, nil); len(p) != 1 || p[0] != (Cell{1, 1}) {
		t.Fatalf("same-cell path: %+v", p)
	}
	blocked := map[Cell]struct{}{{Row: 2, Col: 2}: {}}
	if p := n.ShortestPath(Cell{0, 0}, Cell{2, 2}, blocked); len(p) != 1 || p[0] != (Cell{0, 0}) {
		t.Fatalf("blocked-endpoint path: %+v", p)
	}
	// Wall the target off entirely.
	wall := map[Cell]struct{}{{Row: 1, Col: 2}: {}, {Row: 2, Col: 1}: {}}
	if p := n.ShortestPath(Cell{0, 0}, Cell{2, 2}, wall); len(p) != 1 {
		t.Fatalf("unreachable target path: %+v", p)
	}
}

func TestRoutesPerAssignment(t *testing.T) {
	n := openGrid(t, 4, 4)
	n.HubCells = []Cell{{Row: 3, Col: 3}}
	origins := []Cell{{Row: 0, Col: 0}, {Row: 2, Col: 2}}
	assignments := []model.Assignment{
		{TruckID: 0, HubID: 0, SlotID: 0},
		{TruckID: 1, HubID: 0, SlotID: 1},
	}
	routes := n.Routes(assignments, origins, nil)
	if len(routes) != 2 {
		t.Fatalf("routes: got %d, want 2", len(routes))
	}
	if len(routes[0]) != 7 {
		t.Fatalf("route 0 length: got %d, want 7", len(routes[0]))
	}
	if len(routes[1]) != 3 {
		t.Fatalf("route 1 length: got %d, want 3", len(routes[1]))
	}
}
