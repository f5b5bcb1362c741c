// Package mcstops implements the multi-criteria Stops/ArrivalSet: a
// Pareto frontier of AbstractStopArrival per stop, arena-indexed so
// predecessor links survive across rounds without owning references.
// This trades go-raptor's cyclic object back-references for a flat,
// GC-friendly index — grounded on go-raptor's RoundSegment.Spans
// prepend/append chain (go-raptor's mod.go), which already rebuilds
// the full predecessor chain by value on every improvement; here the
// chain is instead an index into a flat arena.
package mcstops

import "github.com/transitrouting/rangeraptor/raptor"

// Kind tags an Arrival with how the stop was reached.
type Kind int

const (
	KindAccess Kind = iota
	KindTransit
	KindTransfer
)

// Arrival is one point on a stop's Pareto frontier. SelfIndex is this
// arrival's own arena slot, filled in by Arena.Add; PrevIndex is the
// predecessor's arena slot, or -1 for an access-leg arrival.
type Arrival struct {
	SelfIndex int
	PrevIndex int

	Round             int
	Stop              int
	Kind              Kind
	ArrivalTime       int
	TravelDuration    int
	NumberOfTransfers int
	Cost              int
	StartTime         int // only meaningful when the timetable criterion is enabled

	// valid when Kind == KindTransit
	BoardStop int
	BoardTime int
	Trip      raptor.TripSchedule

	// valid when Kind == KindTransfer
	TransferFromStop int
}

// Arena is a flat, append-only store of Arrivals. Predecessor links
// are indices into it, never pointers, so the frontier can discard
// dominated entries from its working set without invalidating anyone
// else's predecessor chain.
type Arena struct {
	arrivals []Arrival
}

// Add appends ar, stamps its SelfIndex, and returns the new index.
func (a *Arena) Add(ar Arrival) int {
	idx := len(a.arrivals)
	ar.SelfIndex = idx
	a.arrivals = append(a.arrivals, ar)
	return idx
}

// Get returns the arrival stored at idx.
func (a *Arena) Get(idx int) Arrival {
	return a.arrivals[idx]
}

// Len is the number of arrivals ever added.
func (a *Arena) Len() int {
	return len(a.arrivals)
}

// DominanceFunc reports whether a dominates b (a is at least as good
// on every criterion and strictly better on at least one).
type DominanceFunc func(a, b Arrival) bool

// Frontier holds, per stop, the current round's Pareto-undominated
// arrivals plus a snapshot of the previous round's frontier (the set a
// strategy boards from).
type Frontier struct {
	arena      *Arena
	dominance  DominanceFunc
	current    [][]int
	previous   [][]int
}

// New allocates a Frontier over numStops stops backed by arena.
func New(numStops int, arena *Arena, dominance DominanceFunc) *Frontier {
	return &Frontier{
		arena:     arena,
		dominance: dominance,
		current:   make([][]int, numStops),
		previous:  make([][]int, numStops),
	}
}

// Add offers ar to stop's current-round frontier. It is rejected
// (ok==false) if an existing current-round arrival at the stop
// dominates it; otherwise it is added to the arena and any arrivals it
// dominates are dropped from the frontier (they remain reachable
// through the arena for anyone who already linked to them).
func (f *Frontier) Add(stop int, ar Arrival) (idx int, ok bool) {
	existing := f.current[stop]
	kept := make([]int, 0, len(existing)+1)
	for _, exIdx := range existing {
		ex := f.arena.Get(exIdx)
		if f.dominance(ex, ar) {
			return -1, false
		}
		if !f.dominance(ar, ex) {
			kept = append(kept, exIdx)
		}
	}
	idx = f.arena.Add(ar)
	kept = append(kept, idx)
	f.current[stop] = kept
	return idx, true
}

// ListPreviousRound returns the Pareto frontier snapshot from the
// previous round at stop — the set a strategy boards from this round.
func (f *Frontier) ListPreviousRound(stop int) []Arrival {
	idxs := f.previous[stop]
	out := make([]Arrival, len(idxs))
	for i, idx := range idxs {
		out[i] = f.arena.Get(idx)
	}
	return out
}

// ListCurrentRound returns the arrivals added to stop's frontier this
// round.
func (f *Frontier) ListCurrentRound(stop int) []Arrival {
	idxs := f.current[stop]
	out := make([]Arrival, len(idxs))
	for i, idx := range idxs {
		out[i] = f.arena.Get(idx)
	}
	return out
}

// ReachedCurrentRound reports whether stop's frontier changed this
// round.
func (f *Frontier) ReachedCurrentRound(stop int) bool {
	return len(f.current[stop]) > 0
}

// PrepareForNextRound promotes the current frontier to "previous" and
// starts a fresh current frontier.
func (f *Frontier) PrepareForNextRound() {
	f.previous = f.current
	f.current = make([][]int, len(f.current))
}

// Reset clears both the current and previous per-stop frontiers for a
// new range-raptor iteration (a new departure minute). The arena
// itself is never reset — arrivals from earlier iterations stay
// addressable by index, the same way besttimes/stoparrivals never
// shrink their backing arrays between iterations.
func (f *Frontier) Reset() {
	for i := range f.current {
		f.current[i] = nil
	}
	for i := range f.previous {
		f.previous[i] = nil
	}
}

// Arena exposes the backing arena for predecessor-chain walks during
// path construction.
func (f *Frontier) Arena() *Arena {
	return f.arena
}
