package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitrouting/rangeraptor/internal/besttimes"
	"github.com/transitrouting/rangeraptor/internal/mcstops"
	"github.com/transitrouting/rangeraptor/internal/stoparrivals"
	"github.com/transitrouting/rangeraptor/raptor"
)

// two parallel patterns reach the
// destination; one path arrives earlier with more transfers, the
// other later with fewer. Under (arrival, transfers) both are
// pareto-optimal; under (arrival) alone only the earlier one survives.
func earlierMoreTransfers() raptor.Path {
	return raptor.Path{Legs: []raptor.Leg{
		{Kind: raptor.LegAccess, FromStop: 1, ToStop: 1, FromTime: 0, ToTime: 0},
		{Kind: raptor.LegTransit, FromStop: 1, ToStop: 2, FromTime: 10, ToTime: 100},
		{Kind: raptor.LegTransfer, FromStop: 2, ToStop: 3, FromTime: 100, ToTime: 120},
		{Kind: raptor.LegTransit, FromStop: 3, ToStop: 9, FromTime: 130, ToTime: 500},
		{Kind: raptor.LegEgress, FromStop: 9, ToStop: 9, FromTime: 500, ToTime: 500},
	}}
}

func laterFewerTransfers() raptor.Path {
	return raptor.Path{Legs: []raptor.Leg{
		{Kind: raptor.LegAccess, FromStop: 1, ToStop: 1, FromTime: 0, ToTime: 0},
		{Kind: raptor.LegTransit, FromStop: 1, ToStop: 9, FromTime: 10, ToTime: 600},
		{Kind: raptor.LegEgress, FromStop: 9, ToStop: 9, FromTime: 600, ToTime: 600},
	}}
}

func TestDominancePruningWithTransfersKeepsBoth(t *testing.T) {
	d := New(StandardDominance(true))
	d.Propose(earlierMoreTransfers())
	d.Propose(laterFewerTransfers())
	d.CommitRound()

	assert.Len(t, d.Paths(), 2)
}

// arrivalOnlyDominance ignores transfers/duration entirely — any path
// that arrives no later than another dominates it, matching the
// "comparator (arrival)" variant named in scenario 3.
func arrivalOnlyDominance(forward bool) DominanceFunc {
	return func(a, b Criteria) bool {
		if forward {
			return a.ArrivalTime <= b.ArrivalTime
		}
		return a.ArrivalTime >= b.ArrivalTime
	}
}

func TestDominancePruningArrivalOnlyKeepsEarliest(t *testing.T) {
	d := New(arrivalOnlyDominance(true))
	d.Propose(earlierMoreTransfers())
	d.Propose(laterFewerTransfers())
	d.CommitRound()

	got := d.Paths()
	require.Len(t, got, 1)
	assert.Equal(t, 500, got[0].ArrivalTime())
}

func TestCommitRoundDropsPreviouslyAcceptedWhenDominated(t *testing.T) {
	d := New(StandardDominance(true))
	worse := raptor.Path{Legs: []raptor.Leg{
		{Kind: raptor.LegAccess, FromStop: 1, ToStop: 1, FromTime: 0, ToTime: 0},
		{Kind: raptor.LegTransit, FromStop: 1, ToStop: 9, FromTime: 10, ToTime: 900},
		{Kind: raptor.LegEgress, FromStop: 9, ToStop: 9, FromTime: 900, ToTime: 900},
	}}
	d.Propose(worse)
	d.CommitRound()
	require.Len(t, d.Paths(), 1)

	better := raptor.Path{Legs: []raptor.Leg{
		{Kind: raptor.LegAccess, FromStop: 1, ToStop: 1, FromTime: 0, ToTime: 0},
		{Kind: raptor.LegTransit, FromStop: 1, ToStop: 9, FromTime: 10, ToTime: 400},
		{Kind: raptor.LegEgress, FromStop: 9, ToStop: 9, FromTime: 400, ToTime: 400},
	}}
	d.Propose(better)
	d.CommitRound()

	got := d.Paths()
	require.Len(t, got, 1)
	assert.Equal(t, 400, got[0].ArrivalTime())
}

func TestDominatesBoundPrunesWorseThanAccepted(t *testing.T) {
	d := New(WithCostDominance(true, 0, false))
	d.Propose(raptor.Path{Legs: []raptor.Leg{
		{Kind: raptor.LegAccess, FromStop: 1, ToStop: 1, FromTime: 0, ToTime: 0},
		{Kind: raptor.LegTransit, FromStop: 1, ToStop: 9, FromTime: 10, ToTime: 300},
		{Kind: raptor.LegEgress, FromStop: 9, ToStop: 9, FromTime: 300, ToTime: 300},
	}, Cost: 10})
	d.CommitRound()

	assert.True(t, d.DominatesBound(400, 0, 20), "a bound worse on both arrival and cost must be pruned")
	assert.False(t, d.DominatesBound(200, 0, 5), "a bound strictly better must not be pruned")
}

func TestBuildStandardPathWalksBackToAccess(t *testing.T) {
	bt := besttimes.New(3, 1<<30, func(a, b int) bool { return a < b })
	stops := stoparrivals.New(2, 3, bt)
	stops.SetInitialTime(0, 100, 0)
	stops.TransitToStop(1, 1, 250, 0, 110, nil, 140)

	p, ok := BuildStandardPath(stops, 1, 1, raptor.TransferLeg{Stop: 99, DurationSeconds: 30})
	require.True(t, ok)
	require.Len(t, p.Legs, 3)
	assert.Equal(t, raptor.LegAccess, p.Legs[0].Kind)
	assert.Equal(t, raptor.LegTransit, p.Legs[1].Kind)
	assert.Equal(t, raptor.LegEgress, p.Legs[2].Kind)
	assert.Equal(t, 100, p.DepartureTime())
	assert.Equal(t, 280, p.ArrivalTime())
}

func TestBuildMultiCriteriaPathWalksPredecessorChain(t *testing.T) {
	arena := &mcstops.Arena{}
	accessIdx := arena.Add(mcstops.Arrival{PrevIndex: -1, Round: 0, Stop: 0, Kind: mcstops.KindAccess, ArrivalTime: 50})
	transitIdx := arena.Add(mcstops.Arrival{
		PrevIndex: accessIdx, Round: 1, Stop: 1, Kind: mcstops.KindTransit,
		ArrivalTime: 200, BoardStop: 0, BoardTime: 60, NumberOfTransfers: 0, Cost: 5,
	})

	p := BuildMultiCriteriaPath(arena, transitIdx, raptor.TransferLeg{Stop: 77, DurationSeconds: 20, Cost: 2})
	require.Len(t, p.Legs, 3)
	assert.Equal(t, raptor.LegAccess, p.Legs[0].Kind)
	assert.Equal(t, raptor.LegTransit, p.Legs[1].Kind)
	assert.Equal(t, raptor.LegEgress, p.Legs[2].Kind)
	assert.Equal(t, 220, p.ArrivalTime())
	assert.Equal(t, 7, p.Cost)
}

func TestReversePathMapperFlipsAndSubtractsBoardSlack(t *testing.T) {
	// recorded by a reverse search: FromTime >= ToTime on every leg,
	// walking from the true destination outward to the true origin.
	reverseRecorded := raptor.Path{Legs: []raptor.Leg{
		{Kind: raptor.LegEgress, FromStop: 9, ToStop: 9, FromTime: 500, ToTime: 500},
		{Kind: raptor.LegTransit, FromStop: 9, ToStop: 3, FromTime: 500, ToTime: 400},
		{Kind: raptor.LegTransfer, FromStop: 3, ToStop: 2, FromTime: 400, ToTime: 390},
		{Kind: raptor.LegTransit, FromStop: 2, ToStop: 1, FromTime: 380, ToTime: 100},
		{Kind: raptor.LegAccess, FromStop: 1, ToStop: 1, FromTime: 100, ToTime: 100},
	}}

	mapped := ReversePathMapper{BoardSlackSeconds: 30}.Map(reverseRecorded)

	require.Len(t, mapped.Legs, 5)
	assert.Equal(t, raptor.LegAccess, mapped.Legs[0].Kind)
	assert.Equal(t, raptor.LegEgress, mapped.Legs[len(mapped.Legs)-1].Kind)
	for i := 0; i < len(mapped.Legs); i++ {
		assert.LessOrEqual(t, mapped.Legs[i].FromTime, mapped.Legs[i].ToTime)
	}
}
