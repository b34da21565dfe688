package engine

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Options bounds one exact solve.
type Options struct {
	// TimeLimit is a soft wall-clock budget; zero means run to completion.
	TimeLimit time.Duration
}

// ExactSolution is the raw solver output: a status plus the solved value
// for every variable in SolveContext.Index order.
type ExactSolution struct {
	Status    Status
	Objective float64
	Values    []float64
	Message   string
	Nodes     int
}

// Solve runs the exact path: deterministic depth-first branch-and-bound
// over hub activations with an admissible relaxation bound. For each
// activation set the truck placement subproblem is solved exactly (see
// transport.go) and green zones are chosen benefit-greedy within the
// leftover budget, so an exhausted search returns a true optimum.
//
// Faults are never propagated: a panic inside the search surfaces as
// Status Error with a message.
func Solve(sc *SolveContext, opts Options) (sol ExactSolution) {
	defer func() {
		if r := recover(); r != nil {
			sol = ExactSolution{Status: StatusError, Message: fmt.Sprintf("solver failure: %v", r)}
		}
	}()
	return newSearch(sc, opts).run()
}

type bbSearch struct {
	sc *SolveContext

	demand      []int       // trucks per origin zone
	totalDemand int
	minCostZH   [][]float64 // [zone][hub] = min over slots of PairCost
	maxActive   int

	benefitOrder  []int     // zones by benefit desc, id asc
	benefitPrefix []float64 // prefix sums over benefitOrder

	useDeadline bool
	deadline    time.Time
	steps       int
	timedOut    bool
	nodes       int

	active []bool

	bestFound  bool
	bestObj    float64
	bestActive []int
	bestGreens []int
	bestPairs  []hubSlot
	bestFlows  [][]int
}

func newSearch(sc *SolveContext, opts Options) *bbSearch {
	nZones := sc.Index.Zones
	nHubs := sc.Index.Hubs
	nSlots := sc.Index.Slots

	b := &bbSearch{sc: sc, active: make([]bool, nHubs)}
	b.demand = make([]int, nZones)
	for _, t := range sc.Data.Trucks {
		b.demand[t.OriginZone]++
	}
	b.totalDemand = len(sc.Data.Trucks)

	b.minCostZH = make([][]float64, nZones)
	for z := 0; z < nZones; z++ {
		b.minCostZH[z] = make([]float64, nHubs)
		for h := 0; h < nHubs; h++ {
			min := math.Inf(1)
			for s := 0; s < nSlots; s++ {
				if c := sc.PairCost(z, h, s); c < min {
					min = c
				}
			}
			b.minCostZH[z][h] = min
		}
	}

	b.maxActive = int(math.Floor(sc.Budget.Total/sc.Budget.HubCost + 1e-9))
	if b.maxActive > nHubs {
		b.maxActive = nHubs
	}

	b.benefitOrder = make([]int, nZones)
	for z := range b.benefitOrder {
		b.benefitOrder[z] = z
	}
	sort.SliceStable(b.benefitOrder, func(i, j int) bool {
		zi, zj := b.benefitOrder[i], b.benefitOrder[j]
		bi, bj := sc.GreenBenefit(zi), sc.GreenBenefit(zj)
		if bi != bj {
			return bi > bj
		}
		return zi < zj
	})
	b.benefitPrefix = make([]float64, nZones+1)
	for i, z := range b.benefitOrder {
		b.benefitPrefix[i+1] = b.benefitPrefix[i] + sc.GreenBenefit(z)
	}

	if opts.TimeLimit > 0 {
		b.useDeadline = true
		b.deadline = time.Now().Add(opts.TimeLimit)
	}
	return b
}

func (b *bbSearch) run() ExactSolution {
	if b.maxActive == 0 {
		// Budget cannot activate a single hub, so no truck can be served.
		return ExactSolution{Status: StatusInfeasible, Nodes: 0}
	}
	b.dfs(0, 0)

	switch {
	case b.timedOut && b.bestFound:
		return b.incumbent(StatusFeasible)
	case b.timedOut:
		return ExactSolution{Status: StatusNotSolved, Nodes: b.nodes}
	case b.bestFound:
		return b.incumbent(StatusOptimal)
	default:
		return ExactSolution{Status: StatusInfeasible, Nodes: b.nodes}
	}
}

func (b *bbSearch) dfs(h, activeCount int) {
	if b.timedOut {
		return
	}
	b.nodes++
	b.steps++
	if b.useDeadline && b.steps&1023 == 0 && time.Now().After(b.deadline) {
		b.timedOut = true
		return
	}
	if h == b.sc.Index.Hubs {
		b.leaf(activeCount)
		return
	}
	if b.bestFound && b.lowerBound(h, activeCount) >= b.bestObj-1e-9 {
		return
	}
	// Activate-first branching surfaces usable incumbents early and keeps
	// the search order deterministic.
	if activeCount < b.maxActive {
		b.active[h] = true
		b.dfs(h+1, activeCount+1)
		b.active[h] = false
	}
	b.dfs(h+1, activeCount)
}

// lowerBound relaxes capacity and treats every undecided hub as available:
// each zone pays its cheapest admissible pair, and the livability bonus is
// taken at its maximum for the budget already committed. Always <= the
// objective of any completion of this node.
func (b *bbSearch) lowerBound(h, activeCount int) float64 {
	sc := b.sc
	lb := 0.0
	capAllowed := 0
	for hub := 0; hub < sc.Index.Hubs; hub++ {
		if hub >= h || b.active[hub] {
			capAllowed += sc.Data.Hubs[hub].CapacityPerSlot * sc.Index.Slots
		}
	}
	if capAllowed < b.totalDemand {
		return math.Inf(1)
	}
	for z, d := range b.demand {
		if d == 0 {
			continue
		}
		min := math.Inf(1)
		for hub := 0; hub < sc.Index.Hubs; hub++ {
			if hub >= h || b.active[hub] {
				if c := b.minCostZH[z][hub]; c < min {
					min = c
				}
			}
		}
		lb += float64(d) * min
	}
	return lb - b.maxGreenBenefit(activeCount)
}

func (b *bbSearch) maxGreenBenefit(activeCount int) float64 {
	rem := b.sc.Budget.Total - float64(activeCount)*b.sc.Budget.HubCost
	k := int(math.Floor(rem/b.sc.Budget.GreenZoneCost + 1e-9))
	if k < 0 {
		k = 0
	}
	if k > b.sc.Index.Zones {
		k = b.sc.Index.Zones
	}
	return b.benefitPrefix[k]
}

func (b *bbSearch) leaf(activeCount int) {
	if activeCount == 0 {
		return
	}
	sc := b.sc
	pairs := make([]hubSlot, 0, activeCount*sc.Index.Slots)
	capTotal := 0
	for h := 0; h < sc.Index.Hubs; h++ {
		if !b.active[h] {
			continue
		}
		capTotal += sc.Data.Hubs[h].CapacityPerSlot * sc.Index.Slots
		for s := 0; s < sc.Index.Slots; s++ {
			pairs = append(pairs, hubSlot{hub: h, slot: s})
		}
	}
	if capTotal < b.totalDemand {
		return
	}
	flows, _, ok := solveTransport(sc, b.demand, pairs)
	if !ok {
		return
	}
	// Recompute the transport cost directly from the flows; the running
	// total inside the flow solver accumulates augmenting-path sums whose
	// rounding differs from the evaluator's term-by-term order.
	cost := 0.0
	for z := range flows {
		for p, f := range flows[z] {
			if f > 0 {
				cost += float64(f) * sc.PairCost(z, pairs[p].hub, pairs[p].slot)
			}
		}
	}

	rem := sc.Budget.Total - float64(activeCount)*sc.Budget.HubCost
	k := int(math.Floor(rem/sc.Budget.GreenZoneCost + 1e-9))
	if k < 0 {
		k = 0
	}
	if k > sc.Index.Zones {
		k = sc.Index.Zones
	}
	obj := cost - b.benefitPrefix[k]
	if b.bestFound && obj >= b.bestObj-1e-9 {
		return
	}

	b.bestFound = true
	b.bestObj = obj
	b.bestActive = b.bestActive[:0]
	for h := 0; h < sc.Index.Hubs; h++ {
		if b.active[h] {
			b.bestActive = append(b.bestActive, h)
		}
	}
	b.bestGreens = append(b.bestGreens[:0], b.benefitOrder[:k]...)
	sort.Ints(b.bestGreens)
	b.bestPairs = append(b.bestPairs[:0], pairs...)
	b.bestFlows = flows
}

// incumbent materializes the best leaf as a flat variable vector so the
// extractor treats exact solutions exactly like any solver output.
func (b *bbSearch) incumbent(status Status) ExactSolution {
	sc := b.sc
	values := make([]float64, sc.Index.Len())

	zoneTrucks := make([][]int, sc.Index.Zones)
	for _, t := range sc.Data.Trucks {
		zoneTrucks[t.OriginZone] = append(zoneTrucks[t.OriginZone], t.ID)
	}
	next := make([]int, sc.Index.Zones)
	for z := range b.bestFlows {
		if b.bestFlows[z] == nil {
			continue
		}
		for p, f := range b.bestFlows[z] {
			hs := b.bestPairs[p]
			for i := 0; i < f; i++ {
				t := zoneTrucks[z][next[z]]
				next[z]++
				values[sc.Index.X(t, hs.hub, hs.slot)] = 1
			}
		}
	}
	for _, h := range b.bestActive {
		values[sc.Index.Y(h)] = 1
	}
	for _, z := range b.bestGreens {
		values[sc.Index.G(z)] = 1
	}
	return ExactSolution{Status: status, Objective: b.bestObj, Values: values, Nodes: b.nodes}
}
