package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitrouting/rangeraptor/internal/besttimes"
	"github.com/transitrouting/rangeraptor/internal/calculator"
	"github.com/transitrouting/rangeraptor/internal/lifecycle"
	"github.com/transitrouting/rangeraptor/internal/paths"
	"github.com/transitrouting/rangeraptor/internal/roundtracker"
	"github.com/transitrouting/rangeraptor/internal/stoparrivals"
	"github.com/transitrouting/rangeraptor/internal/strategy"
	"github.com/transitrouting/rangeraptor/raptor"
)

type fakeTrip struct {
	departs []int
	arrives []int
}

func (f fakeTrip) Departure(pos int) int { return f.departs[pos] }
func (f fakeTrip) Arrival(pos int) int   { return f.arrives[pos] }

type fakePattern struct {
	stops []int
}

func (p fakePattern) NumberOfStopsInPattern() int { return len(p.stops) }
func (p fakePattern) StopIndex(pos int) int       { return p.stops[pos] }

// fakeProvider is a minimal in-test TransitDataProvider: patterns and
// transfers are wired by hand per scenario rather than derived from a
// GTFS-shaped dataset.
type fakeProvider struct {
	numStops  int
	patterns  []fakePattern
	schedules [][]raptor.TripSchedule
	transfers map[int][]raptor.TransferLeg
}

func (p *fakeProvider) NumberOfStops() int { return p.numStops }

func (p *fakeProvider) PatternsTouchedBy(stops []raptor.Stop) ([]int, error) {
	seen := make(map[int]bool)
	var out []int
	for _, s := range stops {
		for i, pat := range p.patterns {
			if seen[i] {
				continue
			}
			for _, st := range pat.stops {
				if st == s {
					seen[i] = true
					out = append(out, i)
					break
				}
			}
		}
	}
	return out, nil
}

func (p *fakeProvider) GetPattern(index int) (raptor.TripPattern, []raptor.TripSchedule, error) {
	return p.patterns[index], p.schedules[index], nil
}

func (p *fakeProvider) SkipTripSchedule(raptor.TripSchedule) bool { return false }

func (p *fakeProvider) TransfersFrom(stop raptor.Stop) ([]raptor.TransferLeg, error) {
	return p.transfers[stop], nil
}

func newStdWorker(calc calculator.Calculator, provider raptor.TransitDataProvider, numStops, numRounds, maxRounds, additionalTransfers, searchThreshold int) (*Worker, *besttimes.BestTimes, *paths.DestinationArrivalPaths) {
	best := besttimes.New(numStops, calc.UnreachedTime(), calc.IsBest)
	stops := stoparrivals.New(numRounds, numStops, best)
	state := stoparrivals.NewStdState(stops, best)
	strat := strategy.NewStd(calc, state)
	dest := paths.New(paths.StandardDominance(calc.Forward()))
	tracker := roundtracker.New(maxRounds, additionalTransfers)
	w := New(calc, provider, strat, best, state, stops, dest, tracker, nil, maxRounds, searchThreshold)
	return w, best, dest
}

// two stops, one trip, no transfer.
func TestWorkerTwoStopsOneTrip(t *testing.T) {
	calc := calculator.NewForward(60)
	provider := &fakeProvider{
		numStops: 3,
		patterns: []fakePattern{{stops: []int{1, 2}}},
		schedules: [][]raptor.TripSchedule{
			{fakeTrip{departs: []int{28800, 0}, arrives: []int{0, 29400}}}, // dep 8:00, arr 8:10
		},
	}
	w, _, _ := newStdWorker(calc, provider, 3, 6, 6, 6, 1)

	req := raptor.Request{
		EarliestDepartureTime: 28200, // 7:50
		LatestArrivalTime:     30000,
		SearchWindowInSeconds: 900, // through 8:05
		AccessLegs:            []raptor.TransferLeg{{Stop: 1, DurationSeconds: 60}},
		EgressLegs:            []raptor.TransferLeg{{Stop: 2, DurationSeconds: 60}},
	}

	result, err := w.Run(req)
	require.NoError(t, err)
	require.Len(t, result.Paths, 1)

	p := result.Paths[0]
	assert.Equal(t, 28740, p.DepartureTime()) // 7:59
	assert.Equal(t, 29460, p.ArrivalTime())   // 8:11
	assert.Equal(t, 0, p.NumberOfTransfers())
	require.Len(t, p.Legs, 3)
	assert.Equal(t, 28800, p.Legs[1].FromTime) // board 8:00
	assert.Equal(t, 29400, p.Legs[1].ToTime)   // alight 8:10
}

// a transfer is required between two patterns.
func TestWorkerTransferRequired(t *testing.T) {
	calc := calculator.NewForward(60)
	provider := &fakeProvider{
		numStops: 5,
		patterns: []fakePattern{
			{stops: []int{1, 2}},
			{stops: []int{3, 4}},
		},
		schedules: [][]raptor.TripSchedule{
			{fakeTrip{departs: []int{28800, 0}, arrives: []int{0, 29400}}}, // A: dep 8:00 arr 8:10
			{fakeTrip{departs: []int{29700, 0}, arrives: []int{0, 30300}}}, // B: dep 8:15 arr 8:25
		},
		transfers: map[int][]raptor.TransferLeg{
			2: {{Stop: 3, DurationSeconds: 120}},
		},
	}
	w, _, _ := newStdWorker(calc, provider, 5, 6, 6, 6, 1)

	req := raptor.Request{
		EarliestDepartureTime: 28200,
		LatestArrivalTime:     31000,
		SearchWindowInSeconds: 900,
		AccessLegs:            []raptor.TransferLeg{{Stop: 1, DurationSeconds: 60}},
		EgressLegs:            []raptor.TransferLeg{{Stop: 4, DurationSeconds: 60}},
	}

	result, err := w.Run(req)
	require.NoError(t, err)
	require.Len(t, result.Paths, 1)

	p := result.Paths[0]
	require.Len(t, p.Legs, 5)
	assert.Equal(t, raptor.LegTransfer, p.Legs[2].Kind)
	assert.Equal(t, 1, p.NumberOfTransfers())
	assert.Equal(t, 30360, p.ArrivalTime()) // 8:26
}

// range-raptor over a wide window collapses
// to one (boardTime, alightTime) pair for a single hourly trip.
func TestWorkerRangeRaptorOverWindow(t *testing.T) {
	calc := calculator.NewForward(0)
	provider := &fakeProvider{
		numStops: 2,
		patterns: []fakePattern{{stops: []int{0, 1}}},
		schedules: [][]raptor.TripSchedule{
			{fakeTrip{departs: []int{28800, 0}, arrives: []int{0, 29100}}}, // 08:00 -> 08:05
		},
	}
	w, _, _ := newStdWorker(calc, provider, 2, 4, 4, 4, 1)

	req := raptor.Request{
		EarliestDepartureTime: 25200, // 7:00
		LatestArrivalTime:     33000,
		SearchWindowInSeconds: 7200, // through 9:00
		AccessLegs:            []raptor.TransferLeg{{Stop: 0, DurationSeconds: 0}},
		EgressLegs:            []raptor.TransferLeg{{Stop: 1, DurationSeconds: 0}},
	}

	result, err := w.Run(req)
	require.NoError(t, err)
	require.Len(t, result.Paths, 1)

	p := result.Paths[0]
	assert.Equal(t, 28800, p.DepartureTime())
	assert.Equal(t, 29100, p.ArrivalTime())
}

// destination first reached in round 2 with
// numberOfAdditionalTransfers=1 — round 3 runs, round 4 does not.
func TestWorkerTerminationMargin(t *testing.T) {
	calc := calculator.NewForward(0)
	provider := &fakeProvider{
		numStops: 5,
		patterns: []fakePattern{
			{stops: []int{0, 1}},
			{stops: []int{1, 2}},
			{stops: []int{2, 3}},
			{stops: []int{3, 4}},
		},
		schedules: [][]raptor.TripSchedule{
			{fakeTrip{departs: []int{1000, 0}, arrives: []int{0, 1100}}},
			{fakeTrip{departs: []int{1100, 0}, arrives: []int{0, 1200}}},
			{fakeTrip{departs: []int{1200, 0}, arrives: []int{0, 1300}}},
			{fakeTrip{departs: []int{1300, 0}, arrives: []int{0, 1400}}},
		},
	}
	w, best, _ := newStdWorker(calc, provider, 5, 10, 10, 1, 1)

	rec := &roundRecorder{}
	builder := lifecycle.NewBuilder()
	builder.OnRound(rec)
	w.pub = builder.Seal()

	req := raptor.Request{
		EarliestDepartureTime: 1000,
		LatestArrivalTime:     1500,
		SearchWindowInSeconds: 0,
		AccessLegs:            []raptor.TransferLeg{{Stop: 0, DurationSeconds: 0}},
		EgressLegs:            []raptor.TransferLeg{{Stop: 2, DurationSeconds: 0}},
	}

	_, err := w.Run(req)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, rec.started, "round 4 must not execute once the termination margin tightens")
	assert.True(t, best.IsReached(3), "round 3 should have reached stop 3")
	assert.False(t, best.IsReached(4), "round 4 never runs, so stop 4 is never reached")
}

// roundRecorder implements lifecycle.RoundListener, recording the
// round numbers that actually started.
type roundRecorder struct {
	started []int
}

func (r *roundRecorder) PrepareForNextRound(round int) { r.started = append(r.started, round) }
func (r *roundRecorder) RoundComplete(int, bool)       {}
