// Package strategy implements TransitRoutingStrategy:
// the three traversal variants — standard, no-wait, multi-criteria —
// that a RangeRaptorWorker drives one pattern at a time. All three
// generalize go-raptor's single inlined board/alight loop body,
// duplicated once per direction in go-raptor's mod.go
// (SimpleRaptorDepartAt/SimpleRaptorArriveBy), into pluggable
// strategies sharing one calculator.Calculator-parameterized shape.
package strategy

import (
	"github.com/transitrouting/rangeraptor/internal/calculator"
	"github.com/transitrouting/rangeraptor/internal/triposearch"
	"github.com/transitrouting/rangeraptor/raptor"
)

// Strategy is driven once per pattern, per round: PrepareForTransitWith
// resets the per-pattern boarding state, then RouteTransitAtStop is
// called once per stop position in the calculator's direction-aware
// order.
type Strategy interface {
	PrepareForTransitWith(round int, pattern raptor.TripPattern, schedules []raptor.TripSchedule, skip func(raptor.TripSchedule) bool, searchThreshold int)
	RouteTransitAtStop(pos int)
}

// alightTimeOf is the time relevant to alighting at pos: arrival
// forward, departure reverse (the mirror of triposearch.Search's
// internal qualifying metric).
func alightTimeOf(trip raptor.TripSchedule, pos int, forward bool) int {
	if forward {
		return trip.Arrival(pos)
	}
	return trip.Departure(pos)
}

// boardTimeOf is the time relevant to boarding at pos: departure
// forward, arrival reverse.
func boardTimeOf(trip raptor.TripSchedule, pos int, forward bool) int {
	if forward {
		return trip.Departure(pos)
	}
	return trip.Arrival(pos)
}

func transitDuration(boardTime, alightTime int, forward bool) int {
	if forward {
		return alightTime - boardTime
	}
	return boardTime - alightTime
}

func newSearch(calc calculator.Calculator, schedules []raptor.TripSchedule, skip func(raptor.TripSchedule) bool, threshold int) *triposearch.Search {
	return triposearch.New(schedules, skip, calc.Forward(), threshold)
}
