package strategy

import (
	"github.com/transitrouting/rangeraptor/internal/calculator"
	"github.com/transitrouting/rangeraptor/internal/heuristics"
	"github.com/transitrouting/rangeraptor/internal/mcstops"
	"github.com/transitrouting/rangeraptor/internal/paths"
	"github.com/transitrouting/rangeraptor/raptor"
)

// MultiCriteriaStrategy is the pareto-aware traversal:
// rather than a single onboard trip, it boards a trip for every
// pareto-undominated arrival recorded at a stop last round, and, once
// boarded, proposes a new arrival at every remaining stop position in
// the pattern (not just the next one) — a trip boarded by an
// expensive-but-fast arrival may still be pareto-optimal several
// stops further along even though a cheaper arrival already improved
// the very next stop.
//
// go-raptor has no multi-criteria phase, so this strategy has no
// direct counterpart there.
type MultiCriteriaStrategy struct {
	calc        calculator.Calculator
	frontier    *mcstops.Frontier
	provider    *heuristics.Provider // may be nil: disables heuristic pruning
	dest        *paths.DestinationArrivalPaths
	egress      map[int]raptor.TransferLeg
	costFactors raptor.CostFactors

	round     int
	pattern   raptor.TripPattern
	schedules []raptor.TripSchedule
	skip      func(raptor.TripSchedule) bool
	threshold int
	positions []int
}

// NewMultiCriteria builds the multi-criteria strategy. provider may be
// nil (no heuristic pruning available yet, e.g. before the heuristic
// passes complete); dest accumulates any candidate path produced when
// a boarded trip alights at an egress stop. egress may be nil and
// filled in later with SetEgress, since the egress set is only known
// once a Request arrives. costFactors weights every transit boarding's
// contribution to the generalized-cost criterion.
func NewMultiCriteria(calc calculator.Calculator, frontier *mcstops.Frontier, provider *heuristics.Provider, dest *paths.DestinationArrivalPaths, egress map[int]raptor.TransferLeg, costFactors raptor.CostFactors) *MultiCriteriaStrategy {
	return &MultiCriteriaStrategy{calc: calc, frontier: frontier, provider: provider, dest: dest, egress: egress, costFactors: costFactors}
}

// SetEgress replaces the egress-stop lookup consulted when a boarded
// trip's onward arrival lands on an egress stop. Called once per
// Request before the worker's outer loop starts.
func (s *MultiCriteriaStrategy) SetEgress(egress map[int]raptor.TransferLeg) {
	s.egress = egress
}

func (s *MultiCriteriaStrategy) PrepareForTransitWith(round int, pattern raptor.TripPattern, schedules []raptor.TripSchedule, skip func(raptor.TripSchedule) bool, searchThreshold int) {
	s.round = round
	s.pattern = pattern
	s.schedules = schedules
	s.skip = skip
	s.threshold = searchThreshold
	s.positions = s.calc.PatternStopPositions(pattern.NumberOfStopsInPattern())
}

// RouteTransitAtStop boards every pareto arrival recorded at this
// stop position last round, and for each boarding proposes an arrival
// at every remaining position in the pattern's direction of travel.
func (s *MultiCriteriaStrategy) RouteTransitAtStop(pos int) {
	stop := s.pattern.StopIndex(pos)
	forward := s.calc.Forward()

	for _, boarding := range s.frontier.ListPreviousRound(stop) {
		limit := s.calc.EarliestBoardTime(boarding.ArrivalTime)
		// A fresh Search per boarding candidate: the restart-from-index
		// optimization std.go relies on assumes one monotone boarding
		// time per position, which does not hold here since distinct
		// pareto arrivals at the same stop carry distinct board times.
		search := newSearch(s.calc, s.schedules, s.skip, s.threshold)
		trip, _, ok := search.Find(pos, limit)
		if !ok {
			continue
		}
		boardTime := boardTimeOf(trip, pos, forward)
		s.boardAndPropose(boarding, trip, pos, boardTime)
	}
}

func (s *MultiCriteriaStrategy) boardAndPropose(boarding mcstops.Arrival, trip raptor.TripSchedule, boardPos, boardTime int) {
	start := indexOf(s.positions, boardPos)
	if start < 0 {
		return
	}
	forward := s.calc.Forward()
	boardStop := s.pattern.StopIndex(boardPos)

	// Cost incurred by boarding itself: a flat per-boarding charge plus
	// the wait between arriving at the board stop and the trip's
	// departure, reluctance-weighted. In-vehicle time is added below,
	// per alight position, at an implicit weight of 1.
	wait := transitDuration(boarding.ArrivalTime, boardTime, forward)
	boardingCost := boarding.Cost + int(s.costFactors.BoardCost+s.costFactors.WaitReluctance*float64(wait))

	for _, p2 := range s.positions[start+1:] {
		alightStop := s.pattern.StopIndex(p2)
		alightTime := alightTimeOf(trip, p2, forward)
		ivt := transitDuration(boardTime, alightTime, forward)

		ar := mcstops.Arrival{
			PrevIndex:         boarding.SelfIndex,
			Round:             s.round,
			Stop:              alightStop,
			Kind:              mcstops.KindTransit,
			ArrivalTime:       alightTime,
			TravelDuration:    boarding.TravelDuration + ivt,
			NumberOfTransfers: s.round - 1,
			Cost:              boardingCost + ivt,
			BoardStop:         boardStop,
			BoardTime:         boardTime,
			Trip:              trip,
		}

		if s.provider != nil && s.dest != nil {
			boundArrival, boundTransfers, boundCost, ok := s.provider.LowerBound(ar.ArrivalTime, ar.NumberOfTransfers, ar.Cost, alightStop)
			if ok && s.dest.DominatesBound(boundArrival, boundTransfers, boundCost) {
				continue
			}
		}

		idx, ok := s.frontier.Add(alightStop, ar)
		if !ok {
			continue
		}
		if s.dest != nil {
			if egress, isEgress := s.egress[alightStop]; isEgress {
				s.dest.Propose(paths.BuildMultiCriteriaPath(s.frontier.Arena(), idx, egress))
			}
		}
	}
}

func indexOf(positions []int, pos int) int {
	for i, p := range positions {
		if p == pos {
			return i
		}
	}
	return -1
}
