package strategy

import (
	"github.com/transitrouting/rangeraptor/internal/calculator"
	"github.com/transitrouting/rangeraptor/internal/stoparrivals"
	"github.com/transitrouting/rangeraptor/internal/triposearch"
	"github.com/transitrouting/rangeraptor/raptor"
)

// StdStrategy is the standard board/alight strategy:
// while walking a pattern's stop positions in direction order, it
// maintains the single trip currently boarded and attempts an earlier
// boarding at every stop reached last round. It writes through a
// stoparrivals.State so the same traversal logic serves every
// single-criterion recording policy (full recall, best-times-only,
// debug logging, heuristic min-transfers/min-cost tracking).
type StdStrategy struct {
	calc  calculator.Calculator
	state stoparrivals.State

	// useBoardSlack is false for the no-wait variant: it boards at the
	// raw best-time-last-round with no added connection slack.
	useBoardSlack bool

	round   int
	pattern raptor.TripPattern
	search  *triposearch.Search

	onTrip          raptor.TripSchedule
	onTripBoardStop int
	onTripBoardTime int
}

// NewStd builds the standard strategy over state.
func NewStd(calc calculator.Calculator, state stoparrivals.State) *StdStrategy {
	return &StdStrategy{calc: calc, state: state, useBoardSlack: true}
}

// NewNoWait builds the no-wait strategy: identical
// boarding/alighting logic but without board slack, used only for
// single-iteration heuristic searches — callers must enforce the
// "single iteration" restriction (raptor.Request.Validate() rejects a
// no-wait profile configured with more than one departure-minute
// iteration).
func NewNoWait(calc calculator.Calculator, state stoparrivals.State) *StdStrategy {
	return &StdStrategy{calc: calc, state: state, useBoardSlack: false}
}

// PrepareForTransitWith resets the per-pattern boarding state.
func (s *StdStrategy) PrepareForTransitWith(round int, pattern raptor.TripPattern, schedules []raptor.TripSchedule, skip func(raptor.TripSchedule) bool, searchThreshold int) {
	s.round = round
	s.pattern = pattern
	s.search = newSearch(s.calc, schedules, skip, searchThreshold)
	s.onTrip = nil
	s.onTripBoardStop = 0
	s.onTripBoardTime = 0
}

// RouteTransitAtStop performs the alight-then-board step at position
// pos of the prepared pattern.
func (s *StdStrategy) RouteTransitAtStop(pos int) {
	stop := s.pattern.StopIndex(pos)
	forward := s.calc.Forward()
	best := s.state.Best()

	if s.onTrip != nil {
		alightTime := alightTimeOf(s.onTrip, pos, forward)
		if s.calc.IsBest(alightTime, best.Time(stop)) {
			s.state.AcceptTransit(s.round, stop, alightTime, s.onTripBoardStop, s.onTripBoardTime, s.onTrip,
				transitDuration(s.onTripBoardTime, alightTime, forward))
		}
	}

	if !best.IsReachedLastRound(stop) {
		return
	}
	boardBasis := best.TimeLastRound(stop)
	limit := boardBasis
	if s.useBoardSlack {
		limit = s.calc.EarliestBoardTime(boardBasis)
	}
	trip, _, ok := s.search.Find(pos, limit)
	if !ok {
		return
	}
	if s.onTrip != nil {
		// Compare both trips' time at this same position, not at
		// their respective boarding positions: trips on one pattern
		// never overtake each other, so this ordering holds at every
		// position and is what tells a strictly earlier trip apart
		// from the one already onboard (or a later one this stop's
		// own limit also happens to qualify for).
		current := alightTimeOf(s.onTrip, pos, forward)
		candidate := alightTimeOf(trip, pos, forward)
		if !s.calc.IsBest(candidate, current) {
			return
		}
	}
	s.onTrip = trip
	s.onTripBoardStop = stop
	s.onTripBoardTime = boardTimeOf(trip, pos, forward)
}
