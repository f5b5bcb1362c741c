package paths

import "github.com/transitrouting/rangeraptor/raptor"

// DestinationArrivalPaths accumulates completed journeys into a Pareto
// set under a pluggable DominanceFunc. Inserts within a round are
// staged in pending and committed together at round end, mirroring
// go-raptor's per-round potential_journeys_found batch before
// de-duplication (go-raptor's mod.go AddJourney call site), so a path
// found earlier in a round cannot prune a path found later in the
// same round purely by insertion order.
type DestinationArrivalPaths struct {
	dominates DominanceFunc
	accepted  []raptor.Path
	pending   []raptor.Path
}

// New creates an empty set using dominates to decide Pareto
// membership.
func New(dominates DominanceFunc) *DestinationArrivalPaths {
	return &DestinationArrivalPaths{dominates: dominates}
}

// Propose stages a candidate path for the current round. It is
// evaluated against the accepted set only; commit finalizes the
// round's proposals together.
func (d *DestinationArrivalPaths) Propose(p raptor.Path) {
	c := CriteriaOf(p)
	for _, acc := range d.accepted {
		if d.dominates(CriteriaOf(acc), c) {
			return
		}
	}
	d.pending = append(d.pending, p)
}

// CommitRound merges this round's pending proposals into accepted,
// removing any previously accepted path now dominated by one of the
// new arrivals, and any pending duplicate dominated by a pending
// sibling.
func (d *DestinationArrivalPaths) CommitRound() {
	if len(d.pending) == 0 {
		return
	}

	kept := make([]raptor.Path, 0, len(d.pending))
	for i, p := range d.pending {
		c := CriteriaOf(p)
		dominated := false
		for j, q := range d.pending {
			if i == j {
				continue
			}
			if d.dominates(CriteriaOf(q), c) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, p)
		}
	}

	survivors := d.accepted[:0:0]
	for _, acc := range d.accepted {
		accC := CriteriaOf(acc)
		dominated := false
		for _, p := range kept {
			if d.dominates(CriteriaOf(p), accC) {
				dominated = true
				break
			}
		}
		if !dominated {
			survivors = append(survivors, acc)
		}
	}

	d.accepted = append(survivors, kept...)
	d.pending = nil
}

// Paths returns the current accepted Pareto set.
func (d *DestinationArrivalPaths) Paths() []raptor.Path {
	out := make([]raptor.Path, len(d.accepted))
	copy(out, d.accepted)
	return out
}

// DominatesBound reports whether any accepted path already dominates
// the optimistic (arrival, transfers, cost) lower-bound vector, used
// by the multi-criteria strategy to prune a partial arrival before it
// is even extended. It assumes the set's
// DominanceFunc is a WithCostDominance variant: TotalDuration and
// StartTime are left at their zero value in the bound vector, so a
// comparator that weighs either of those will never observe this
// call as dominating.
func (d *DestinationArrivalPaths) DominatesBound(boundArrival, boundTransfers, boundCost int) bool {
	bound := Criteria{ArrivalTime: boundArrival, NumberOfTransfers: boundTransfers, Cost: boundCost}
	for _, acc := range d.accepted {
		if d.dominates(CriteriaOf(acc), bound) {
			return true
		}
	}
	return false
}
