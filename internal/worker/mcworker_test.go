package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitrouting/rangeraptor/internal/calculator"
	"github.com/transitrouting/rangeraptor/internal/mcstops"
	"github.com/transitrouting/rangeraptor/internal/paths"
	"github.com/transitrouting/rangeraptor/internal/roundtracker"
	"github.com/transitrouting/rangeraptor/internal/strategy"
	"github.com/transitrouting/rangeraptor/raptor"
)

func newMCWorker(calc calculator.Calculator, provider raptor.TransitDataProvider, numStops, maxRounds, additionalTransfers, searchThreshold int) (*MultiCriteriaWorker, *paths.DestinationArrivalPaths) {
	arena := &mcstops.Arena{}
	frontier := mcstops.New(numStops, arena, mcstops.StandardDominance(calc.Forward()))
	dest := paths.New(paths.StandardDominance(calc.Forward()))
	strat := strategy.NewMultiCriteria(calc, frontier, nil, dest, nil, raptor.CostFactors{})
	tracker := roundtracker.New(maxRounds, additionalTransfers)
	w := NewMultiCriteriaWorker(calc, provider, strat, frontier, dest, tracker, nil, numStops, maxRounds, searchThreshold, raptor.CostFactors{})
	return w, dest
}

// Same fixture as TestWorkerTransferRequired, run through the
// multi-criteria path instead of the standard one.
func TestMultiCriteriaWorkerTransferRequired(t *testing.T) {
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
	w, _ := newMCWorker(calc, provider, 5, 6, 6, 1)

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
