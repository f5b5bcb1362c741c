// Package stoparrivals implements the standard Stops / StopArrivalState
// storage: a per-(round,stop) arrival record with
// transit and transfer variants. It generalizes go-raptor's
// RoundSegment/RoundSegmentSpan chain-of-spans representation
// (go-raptor's raptor_models.go) into random per-round access, via a
// tagged variant rather than a struct hierarchy.
package stoparrivals

import (
	"github.com/transitrouting/rangeraptor/internal/besttimes"
	"github.com/transitrouting/rangeraptor/raptor"
)

// Kind tags an Arrival with how the stop was reached this round.
type Kind int

const (
	KindAccess Kind = iota
	KindTransit
	KindTransfer
)

// Arrival is the tagged-variant arrival record. Exactly one of the
// transit/transfer field groups is meaningful, selected by Kind — a
// tagged variant plus common header in place of a deep
// StopArrivalState inheritance hierarchy.
type Arrival struct {
	Kind        Kind
	ArrivalTime int

	// valid when Kind == KindTransit
	BoardStop   int
	BoardTime   int
	Trip        raptor.TripSchedule
	TransitTime int

	// valid when Kind == KindTransfer
	FromStop         int
	TransferDuration int
}

// EgressListener is invoked exactly once per (round, stop) the first
// time a transit arrival lands on an egress stop.
type EgressListener func(round, stop, arrivalTime int)

// Stops is the standard worker's per-(round,stop) arrival storage.
type Stops struct {
	numRounds int
	numStops  int
	records   [][]Arrival
	has       [][]bool

	best *besttimes.BestTimes

	egressListeners map[int]EgressListener
	egressFired     map[[2]int]bool
}

// New allocates storage for numRounds rounds (0..numRounds-1) over
// numStops stops, delegating best-overall-time bookkeeping to bt.
func New(numRounds, numStops int, bt *besttimes.BestTimes) *Stops {
	s := &Stops{
		numRounds:   numRounds,
		numStops:    numStops,
		records:     make([][]Arrival, numRounds),
		has:         make([][]bool, numRounds),
		best:        bt,
		egressFired: make(map[[2]int]bool),
	}
	for r := 0; r < numRounds; r++ {
		s.records[r] = make([]Arrival, numStops)
		s.has[r] = make([]bool, numStops)
	}
	return s
}

// Reset clears all recorded arrivals for reuse across Range-Raptor
// iterations.
func (s *Stops) Reset() {
	for r := range s.has {
		for i := range s.has[r] {
			s.has[r][i] = false
		}
	}
	s.egressFired = make(map[[2]int]bool)
}

// SetInitialTime records a round-0 access-leg arrival.
func (s *Stops) SetInitialTime(stop, arrivalTime, _duration int) {
	s.records[0][stop] = Arrival{Kind: KindAccess, ArrivalTime: arrivalTime}
	s.has[0][stop] = true
	s.best.UpdateNewBestTime(stop, arrivalTime)
}

// TransitToStop records a transit arrival at (round, stop) and fires
// any installed egress listener.
func (s *Stops) TransitToStop(round, stop, alightTime, boardStop, boardTime int, trip raptor.TripSchedule, transitTime int) {
	s.records[round][stop] = Arrival{
		Kind: KindTransit, ArrivalTime: alightTime,
		BoardStop: boardStop, BoardTime: boardTime, Trip: trip, TransitTime: transitTime,
	}
	s.has[round][stop] = true
	s.fireEgress(round, stop, alightTime)
}

// TransferToStop records a transfer-only arrival at (round, stop).
func (s *Stops) TransferToStop(round, fromStop, stop, transferDuration, arrivalTime int) {
	s.records[round][stop] = Arrival{
		Kind: KindTransfer, ArrivalTime: arrivalTime,
		FromStop: fromStop, TransferDuration: transferDuration,
	}
	s.has[round][stop] = true
}

// Arrival returns the recorded arrival at (round, stop), if any.
func (s *Stops) Arrival(round, stop int) (Arrival, bool) {
	return s.records[round][stop], s.has[round][stop]
}

// BestTimePreviousRound is the boarding basis for this round: the best
// overall time as of the end of round-1.
func (s *Stops) BestTimePreviousRound(stop int) int {
	return s.best.TimeLastRound(stop)
}

// SetupEgressStopStates installs listeners that fire exactly once per
// (round, stop) when a transit arrival lands on an egress stop.
func (s *Stops) SetupEgressStopStates(egressLegs []raptor.TransferLeg, onNewEgressArrival EgressListener) {
	s.egressListeners = make(map[int]EgressListener, len(egressLegs))
	for _, leg := range egressLegs {
		s.egressListeners[leg.Stop] = onNewEgressArrival
	}
}

func (s *Stops) fireEgress(round, stop, arrivalTime int) {
	if s.egressListeners == nil {
		return
	}
	cb, ok := s.egressListeners[stop]
	if !ok {
		return
	}
	key := [2]int{round, stop}
	if s.egressFired[key] {
		return
	}
	s.egressFired[key] = true
	cb(round, stop, arrivalTime)
}
