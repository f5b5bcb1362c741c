package triposearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transitrouting/rangeraptor/raptor"
)

type fakeTrip struct {
	departs []int
	arrives []int
}

func (f fakeTrip) Departure(pos int) int { return f.departs[pos] }
func (f fakeTrip) Arrival(pos int) int   { return f.arrives[pos] }

func trips() []raptor.TripSchedule {
	return []raptor.TripSchedule{
		fakeTrip{departs: []int{28800, 29000}, arrives: []int{28900, 29100}}, // 08:00
		fakeTrip{departs: []int{29400, 29600}, arrives: []int{29500, 29700}}, // 08:10
		fakeTrip{departs: []int{30000, 30200}, arrives: []int{30100, 30300}}, // 08:20
	}
}

func TestForwardFindsEarliestBoardable(t *testing.T) {
	s := New(trips(), nil, true, 2)
	trip, idx, ok := s.Find(0, 29100)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 29400, trip.Departure(0))
}

func TestForwardNoTripQualifies(t *testing.T) {
	s := New(trips(), nil, true, 2)
	_, _, ok := s.Find(0, 40000)
	require.False(t, ok)
}

func TestReverseFindsLatestAlightable(t *testing.T) {
	s := New(trips(), nil, false, 2)
	trip, idx, ok := s.Find(1, 29700)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 29700, trip.Arrival(1))
}

func TestSkipPredicate(t *testing.T) {
	s := New(trips(), func(sch raptor.TripSchedule) bool {
		return sch.Departure(0) == 29400
	}, true, 2)
	trip, _, ok := s.Find(0, 29100)
	require.True(t, ok)
	assert.Equal(t, 30000, trip.Departure(0))
}

func TestEmptySchedules(t *testing.T) {
	s := New(nil, nil, true, 2)
	_, _, ok := s.Find(0, 0)
	require.False(t, ok)
}
