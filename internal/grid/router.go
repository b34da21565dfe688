package grid

import "hubflow/internal/model"

// Neighbor exploration order is fixed (up, down, left, right) so BFS
// tie-breaks reproducibly.
var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// ShortestPath runs BFS from start to end over 4-connected cells, avoiding
// blocked cells. The result includes both endpoints and has minimum cell
// count. Degenerate cases (start equals end, blocked endpoint, no path)
// return the single-cell path [start].
func (n *Network) ShortestPath(start, end Cell, blocked map[Cell]struct{}) []Cell {
	if _, bad := blocked[start]; bad {
		return []Cell{start}
	}
	if _, bad := blocked[end]; bad {
		return []Cell{start}
	}

	parent := map[Cell]Cell{start: start}
	queue := []Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == end {
			return reconstruct(parent, start, end)
		}
		for _, off := range neighborOffsets {
			next := Cell{Row: cur.Row + off[0], Col: cur.Col + off[1]}
			if next.Row < 0 || next.Row >= n.Rows || next.Col < 0 || next.Col >= n.Cols {
				continue
			}
			if _, seen := parent[next]; seen {
				continue
			}
			if _, bad := blocked[next]; bad {
				continue
			}
			parent[next] = cur
			queue = append(queue, next)
		}
	}
	return []Cell{start}
}

func reconstruct(parent map[Cell]Cell, start, end Cell) []Cell {
	rev := []Cell{end}
	for cur := end; cur != start; {
		cur = parent[cur]
		rev = append(rev, cur)
	}
	path := make([]Cell, len(rev))
	for i := range rev {
		path[i] = rev[len(rev)-1-i]
	}
	return path
}

// Routes computes one origin-to-hub path per assignment. Each truck's path
// is independent of every other, so the loop is safe to parallelize; at
// current grid sizes the sequential pass is already cheap.
func (n *Network) Routes(assignments []model.Assignment, origins []Cell, blocked map[Cell]struct{}) [][]Cell {
	routes := make([][]Cell, len(assignments))
	for i, a := range assignments {
		routes[i] = n.ShortestPath(origins[a.TruckID], n.HubCells[a.HubID], blocked)
	}
	return routes
}
