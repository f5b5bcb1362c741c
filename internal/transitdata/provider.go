// Package transitdata is an in-memory raptor.TransitDataProvider: a
// builder-populated index of patterns-by-stop and transfers-by-stop,
// grounded on go-raptor's PrepareRaptorInput lookup-map construction
// (go-raptor's mod.go, stop_times_by_unique_stop_id /
// transfers_by_unique_stop_id) generalized from GTFS-typed generics
// into plain dense-index maps. It exists for tests and the demo CLI —
// a real deployment would back TransitDataProvider with a timetable
// store instead.
package transitdata

import (
	"fmt"
	"sort"

	"github.com/transitrouting/rangeraptor/raptor"
)

// Schedule is a concrete TripSchedule: parallel departure/arrival
// arrays plus the GTFS service-day this trip runs on.
type Schedule struct {
	Departures []int
	Arrivals   []int
	ServiceDay string
}

func (s *Schedule) Departure(pos int) int { return s.Departures[pos] }
func (s *Schedule) Arrival(pos int) int   { return s.Arrivals[pos] }

// Pattern is a concrete TripPattern: an ordered stop-index sequence.
type Pattern struct {
	Stops []int
}

func (p *Pattern) NumberOfStopsInPattern() int { return len(p.Stops) }
func (p *Pattern) StopIndex(pos int) int       { return p.Stops[pos] }

// Provider is a builder-populated, read-only TransitDataProvider.
type Provider struct {
	numStops int

	patterns  []*Pattern
	schedules [][]raptor.TripSchedule

	patternsByStop  map[int][]int
	transfersByStop map[int][]raptor.TransferLeg

	// activeServiceDay, when set, makes SkipTripSchedule filter out any
	// Schedule whose ServiceDay doesn't match — the service-calendar
	// filter go-raptor's own comment says callers must apply before
	// invoking the core ("stop times should be filtered according to
	// the gtfs calendar / services").
	activeServiceDay string
}

// New builds an empty Provider over numStops dense stop indices.
func New(numStops int) *Provider {
	return &Provider{
		numStops:        numStops,
		patternsByStop:  make(map[int][]int),
		transfersByStop: make(map[int][]raptor.TransferLeg),
	}
}

// AddPattern registers a pattern over stops, served by schedules.
// schedules is sorted in place by departure at position 0 to satisfy
// the provider's ascending-order contract; returns the
// pattern index for later reference.
func (p *Provider) AddPattern(stops []int, schedules []*Schedule) int {
	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].Departures[0] < schedules[j].Departures[0]
	})

	index := len(p.patterns)
	p.patterns = append(p.patterns, &Pattern{Stops: stops})

	ts := make([]raptor.TripSchedule, len(schedules))
	for i, s := range schedules {
		ts[i] = s
	}
	p.schedules = append(p.schedules, ts)

	for _, stop := range stops {
		p.patternsByStop[stop] = append(p.patternsByStop[stop], index)
	}
	return index
}

// AddTransfer registers an outgoing walking-transfer leg from stop.
func (p *Provider) AddTransfer(stop int, leg raptor.TransferLeg) {
	p.transfersByStop[stop] = append(p.transfersByStop[stop], leg)
}

// SetActiveServiceDay configures the service-day filter consulted by
// SkipTripSchedule. An empty day (the zero value) disables filtering.
func (p *Provider) SetActiveServiceDay(day string) {
	p.activeServiceDay = day
}

func (p *Provider) NumberOfStops() int { return p.numStops }

// PatternsTouchedBy returns, deduplicated, every pattern index having
// at least one stop in stops.
func (p *Provider) PatternsTouchedBy(stops []raptor.Stop) ([]int, error) {
	seen := make(map[int]bool)
	var out []int
	for _, stop := range stops {
		for _, idx := range p.patternsByStop[stop] {
			if seen[idx] {
				continue
			}
			seen[idx] = true
			out = append(out, idx)
		}
	}
	return out, nil
}

func (p *Provider) GetPattern(index int) (raptor.TripPattern, []raptor.TripSchedule, error) {
	if index < 0 || index >= len(p.patterns) {
		return nil, nil, raptor.NewUnderlyingDataError(fmt.Errorf("transitdata: pattern index %d out of range [0,%d)", index, len(p.patterns)))
	}
	return p.patterns[index], p.schedules[index], nil
}

// SkipTripSchedule applies the active-service-day filter, when set.
// Schedules from a different provider implementation (no ServiceDay
// concept) are never skipped.
func (p *Provider) SkipTripSchedule(t raptor.TripSchedule) bool {
	if p.activeServiceDay == "" {
		return false
	}
	sch, ok := t.(*Schedule)
	if !ok || sch.ServiceDay == "" {
		return false
	}
	return sch.ServiceDay != p.activeServiceDay
}

func (p *Provider) TransfersFrom(stop raptor.Stop) ([]raptor.TransferLeg, error) {
	return p.transfersByStop[stop], nil
}
