// Package heuristics implements the HeuristicsProvider:
// per-stop optimistic lower bounds on the remaining journey to the
// destination, used to prune the multi-criteria search. go-raptor has
// no multi-criteria phase, so this package has no direct counterpart
// there.
package heuristics

// StopHeuristic is the optimistic lower bound at one stop: the
// minimum possible remaining travel duration, transfer count, and
// generalized cost to reach the destination from here.
type StopHeuristic struct {
	MinTravelDuration int
	MinNumTransfers   int
	MinCost           int
}

// Heuristics is the per-stop table computed by a prior forward or
// reverse no-wait best-time pass.
type Heuristics struct {
	byStop  []StopHeuristic
	reached []bool
}

// New allocates an empty table over numStops stops.
func New(numStops int) *Heuristics {
	return &Heuristics{byStop: make([]StopHeuristic, numStops), reached: make([]bool, numStops)}
}

// Set records the bound for stop.
func (h *Heuristics) Set(stop int, sh StopHeuristic) {
	h.byStop[stop] = sh
	h.reached[stop] = true
}

// IsReached reports whether stop has a computed bound (i.e. the
// heuristic pass reached it at all).
func (h *Heuristics) IsReached(stop int) bool {
	return h.reached[stop]
}

// Get returns the bound recorded at stop. Callers must check
// IsReached first.
func (h *Heuristics) Get(stop int) StopHeuristic {
	return h.byStop[stop]
}

// Provider computes optimistic lower-bound vectors for pruning
//.
type Provider struct {
	table *Heuristics
}

// NewProvider wraps a computed Heuristics table.
func NewProvider(table *Heuristics) *Provider {
	return &Provider{table: table}
}

// LowerBound computes the optimistic (arrivalTime, numberOfTransfers,
// cost) vector for the completed journey through an arrival at stop
// with arrivalTime/numberOfTransfers/cost so far. ok is false if stop
// was never reached by the heuristic pass — in that case no pruning
// decision can be made and the caller should not reject the
// candidate on heuristic grounds alone.
func (p *Provider) LowerBound(arrivalTime, numberOfTransfers, cost, stop int) (boundArrival, boundTransfers, boundCost int, ok bool) {
	if p == nil || p.table == nil || !p.table.IsReached(stop) {
		return 0, 0, 0, false
	}
	sh := p.table.Get(stop)
	return arrivalTime + sh.MinTravelDuration, numberOfTransfers + sh.MinNumTransfers, cost + sh.MinCost, true
}
