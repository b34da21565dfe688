// Package grid builds the synthetic road network: an abstract rows x cols
// grid partitioned into zones, with hub and truck-origin cells, and a BFS
// router over 4-connected neighbors.
package grid

import (
	"fmt"
	"math"
	"math/rand"

	"hubflow/internal/model"
)

// Cell is one grid position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Network is the built grid world.
type Network struct {
	Rows     int
	Cols     int
	NumZones int
	ZoneOf   [][]int // [row][col] -> zone id
	HubCells []Cell
}

// Build partitions the grid into zones and places one cell per hub.
// Deterministic per seed.
//
// The block mapping min((i*side/rows)*side + j*side/cols, nZones-1) with
// floor division is load-bearing: for non-square zone counts it produces
// uneven, sometimes non-contiguous zones, and downstream route and map
// output depends on that exact partition.
func Build(rows, cols, nZones, nHubs int, seed int64) (*Network, error) {
	if rows <= 0 || cols <= 0 {
		return nil, &model.ConfigurationError{Param: "grid", Detail: fmt.Sprintf("%dx%d, want positive dimensions", rows, cols)}
	}
	if nZones <= 0 {
		return nil, &model.ConfigurationError{Param: "numZones", Detail: "must be > 0"}
	}
	if nHubs <= 0 {
		return nil, &model.ConfigurationError{Param: "numHubs", Detail: "must be > 0"}
	}
	rng := rand.New(rand.NewSource(seed))

	side := int(math.Ceil(math.Sqrt(float64(nZones))))
	zoneOf := make([][]int, rows)
	for i := range zoneOf {
		zoneOf[i] = make([]int, cols)
		for j := range zoneOf[i] {
			z := (i*side/rows)*side + j*side/cols
			if z > nZones-1 {
				z = nZones - 1
			}
			zoneOf[i][j] = z
		}
	}
	n := &Network{Rows: rows, Cols: cols, NumZones: nZones, ZoneOf: zoneOf}

	cells := n.cellsByZone()
	n.HubCells = make([]Cell, nHubs)
	for h := 0; h < nHubs; h++ {
		n.HubCells[h] = pickCell(rng, cells[h%nZones], rows, cols)
	}
	return n, nil
}

// TruckOrigins draws one origin cell per truck from the cells of its
// origin zone. Deterministic per seed.
func (n *Network) TruckOrigins(originZones []int, seed int64) ([]Cell, error) {
	rng := rand.New(rand.NewSource(seed))
	cells := n.cellsByZone()
	origins := make([]Cell, len(originZones))
	for i, z := range originZones {
		if z < 0 || z >= n.NumZones {
			return nil, &model.ConfigurationError{Param: "originZones", Detail: fmt.Sprintf("truck %d zone %d out of range", i, z)}
		}
		origins[i] = pickCell(rng, cells[z], n.Rows, n.Cols)
	}
	return origins, nil
}

// cellsByZone lists each zone's cells in row-major order.
func (n *Network) cellsByZone() [][]Cell {
	cells := make([][]Cell, n.NumZones)
	for i := 0; i < n.Rows; i++ {
		for j := 0; j < n.Cols; j++ {
			z := n.ZoneOf[i][j]
			cells[z] = append(cells[z], Cell{Row: i, Col: j})
		}
	}
	return cells
}

// pickCell draws uniformly from the zone's cells, falling back to the grid
// center for zones the partition left empty.
func pickCell(rng *rand.Rand, cells []Cell, rows, cols int) Cell {
	if len(cells) == 0 {
		return Cell{Row: rows / 2, Col: cols / 2}
	}
	return cells[rng.Intn(len(cells))]
}
