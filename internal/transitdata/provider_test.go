package transitdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitrouting/rangeraptor/raptor"
)

func TestAddPatternSortsSchedulesAscendingByDeparture(t *testing.T) {
	p := New(3)
	idx := p.AddPattern([]int{0, 1, 2}, []*Schedule{
		{Departures: []int{200, 220, 240}, Arrivals: []int{200, 220, 240}},
		{Departures: []int{100, 120, 140}, Arrivals: []int{100, 120, 140}},
	})

	_, schedules, err := p.GetPattern(idx)
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, 100, schedules[0].Departure(0))
	assert.Equal(t, 200, schedules[1].Departure(0))
}

func TestPatternsTouchedByDeduplicates(t *testing.T) {
	p := New(4)
	a := p.AddPattern([]int{0, 1}, []*Schedule{{Departures: []int{0, 0}, Arrivals: []int{0, 0}}})
	b := p.AddPattern([]int{1, 2}, []*Schedule{{Departures: []int{0, 0}, Arrivals: []int{0, 0}}})

	got, err := p.PatternsTouchedBy([]raptor.Stop{1, 0})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{a, b}, got)
}

func TestGetPatternOutOfRangeIsUnderlyingDataError(t *testing.T) {
	p := New(1)
	_, _, err := p.GetPattern(5)
	require.Error(t, err)
	var underlying *raptor.UnderlyingDataError
	assert.ErrorAs(t, err, &underlying)
}

func TestTransfersFromReturnsRegisteredLegs(t *testing.T) {
	p := New(2)
	p.AddTransfer(0, raptor.TransferLeg{Stop: 1, DurationSeconds: 90})

	legs, err := p.TransfersFrom(0)
	require.NoError(t, err)
	require.Len(t, legs, 1)
	assert.Equal(t, 90, legs[0].DurationSeconds)

	none, err := p.TransfersFrom(1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSkipTripScheduleFiltersByActiveServiceDay(t *testing.T) {
	p := New(2)
	weekday := &Schedule{Departures: []int{0}, Arrivals: []int{0}, ServiceDay: "weekday"}
	weekend := &Schedule{Departures: []int{0}, Arrivals: []int{0}, ServiceDay: "weekend"}

	assert.False(t, p.SkipTripSchedule(weekday), "no active day configured means nothing is skipped")

	p.SetActiveServiceDay("weekday")
	assert.False(t, p.SkipTripSchedule(weekday))
	assert.True(t, p.SkipTripSchedule(weekend))
}
