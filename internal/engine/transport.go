package engine

import "math"

// The x-subproblem for a fixed activation set is a transportation problem:
// unit supplies aggregated by origin zone, sinks per (hub, slot) with the
// hub's per-slot capacity. Its LP relaxation is integral, so a min-cost
// flow solve is an exact solve of the relaxation the branch-and-bound
// search bounds against.

type hubSlot struct {
	hub  int
	slot int
}

type flowEdge struct {
	to   int
	cap  int
	cost float64
}

type flowNet struct {
	edges []flowEdge
	adj   [][]int
}

func newFlowNet(n int) *flowNet {
	return &flowNet{adj: make([][]int, n)}
}

// addEdge appends a forward edge and its zero-capacity reverse companion.
func (g *flowNet) addEdge(from, to, cap int, cost float64) int {
	id := len(g.edges)
	g.edges = append(g.edges, flowEdge{to: to, cap: cap, cost: cost})
	g.adj[from] = append(g.adj[from], id)
	g.edges = append(g.edges, flowEdge{to: from, cap: 0, cost: -cost})
	g.adj[to] = append(g.adj[to], id+1)
	return id
}

// minCostFlow sends up to want units from source to sink along successive
// shortest paths (SPFA; arc costs may be negative). Returns units sent and
// total cost.
func (g *flowNet) minCostFlow(source, sink, want int) (int, float64) {
	n := len(g.adj)
	sent := 0
	total := 0.0
	dist := make([]float64, n)
	inQueue := make([]bool, n)
	prevEdge := make([]int, n)

	for sent < want {
		for i := range dist {
			dist[i] = math.Inf(1)
			inQueue[i] = false
			prevEdge[i] = -1
		}
		dist[source] = 0
		queue := []int{source}
		inQueue[source] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			inQueue[u] = false
			for _, id := range g.adj[u] {
				e := g.edges[id]
				if e.cap <= 0 {
					continue
				}
				if nd := dist[u] + e.cost; nd < dist[e.to]-1e-12 {
					dist[e.to] = nd
					prevEdge[e.to] = id
					if !inQueue[e.to] {
						queue = append(queue, e.to)
						inQueue[e.to] = true
					}
				}
			}
		}
		if math.IsInf(dist[sink], 1) {
			break
		}
		// Bottleneck along the shortest path, then push.
		push := want - sent
		for v := sink; v != source; {
			id := prevEdge[v]
			if g.edges[id].cap < push {
				push = g.edges[id].cap
			}
			v = g.edges[id^1].to
		}
		for v := sink; v != source; {
			id := prevEdge[v]
			g.edges[id].cap -= push
			g.edges[id^1].cap += push
			v = g.edges[id^1].to
		}
		sent += push
		total += dist[sink] * float64(push)
	}
	return sent, total
}

// solveTransport assigns every unit of zone demand to an active (hub, slot)
// pair at minimum cost. flows[z][p] is the unit count on arc zone z → pair
// p. ok is false when total active capacity cannot absorb the demand.
func solveTransport(sc *SolveContext, demand []int, pairs []hubSlot) (flows [][]int, cost float64, ok bool) {
	nZones := len(demand)
	nPairs := len(pairs)
	totalDemand := 0
	for _, d := range demand {
		totalDemand += d
	}
	if totalDemand == 0 {
		return make([][]int, nZones), 0, true
	}
	if nPairs == 0 {
		return nil, 0, false
	}

	source := 0
	zoneNode := func(z int) int { return 1 + z }
	pairNode := func(p int) int { return 1 + nZones + p }
	sink := 1 + nZones + nPairs
	g := newFlowNet(sink + 1)

	arc := make([][]int, nZones)
	for z := 0; z < nZones; z++ {
		if demand[z] == 0 {
			continue
		}
		g.addEdge(source, zoneNode(z), demand[z], 0)
		arc[z] = make([]int, nPairs)
		for p, hs := range pairs {
			arc[z][p] = g.addEdge(zoneNode(z), pairNode(p), demand[z], sc.PairCost(z, hs.hub, hs.slot))
		}
	}
	for p, hs := range pairs {
		g.addEdge(pairNode(p), sink, sc.Data.Hubs[hs.hub].CapacityPerSlot, 0)
	}

	sent, total := g.minCostFlow(source, sink, totalDemand)
	if sent < totalDemand {
		return nil, 0, false
	}
	flows = make([][]int, nZones)
	for z := 0; z < nZones; z++ {
		if demand[z] == 0 {
			continue
		}
		flows[z] = make([]int, nPairs)
		for p := range pairs {
			id := arc[z][p]
			// Residual on the reverse edge is the flow pushed forward.
			flows[z][p] = g.edges[id^1].cap
		}
	}
	return flows, total, true
}
