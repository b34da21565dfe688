// Package predict offers an optional shortcut predictor approximating
// optimizer decisions. The engine never depends on this package; it is a
// pluggable consumer of solver output.
package predict

import "hubflow/internal/model"

// Predictor maps a truck's origin zone to a (hub, slot) decision.
type Predictor interface {
	Predict(originZone int) (hubID, slotID int, ok bool)
}

// TablePredictor is a frequency model: the most common (hub, slot) choice
// the optimizer made per origin zone. Ties break toward lower hub, then
// lower slot, so training is deterministic.
type TablePredictor struct {
	byZone map[int]vote
}

type vote struct {
	hub   int
	slot  int
	count int
}

// Train builds a TablePredictor from an optimizer assignment list.
func Train(d *model.Dataset, assignments []model.Assignment) *TablePredictor {
	counts := map[int]map[[2]int]int{}
	for _, a := range assignments {
		z := d.Trucks[a.TruckID].OriginZone
		if counts[z] == nil {
			counts[z] = map[[2]int]int{}
		}
		counts[z][[2]int{a.HubID, a.SlotID}]++
	}
	byZone := make(map[int]vote, len(counts))
	for z, pairs := range counts {
		var best vote
		first := true
		for key, c := range pairs {
			v := vote{hub: key[0], slot: key[1], count: c}
			if first || better(v, best) {
				best = v
				first = false
			}
		}
		byZone[z] = best
	}
	return &TablePredictor{byZone: byZone}
}

func better(a, b vote) bool {
	if a.count != b.count {
		return a.count > b.count
	}
	if a.hub != b.hub {
		return a.hub < b.hub
	}
	return a.slot < b.slot
}

// Predict returns the learned decision for the zone; ok is false for zones
// the training assignments never covered.
func (p *TablePredictor) Predict(originZone int) (int, int, bool) {
	v, ok := p.byZone[originZone]
	if !ok {
		return 0, 0, false
	}
	return v.hub, v.slot, true
}
