package besttimes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forwardIsBest(a, b int) bool { return a < b }

func TestUpdateNewBestTime(t *testing.T) {
	bt := New(3, math.MaxInt32, forwardIsBest)
	require.False(t, bt.IsReached(0))

	updated := bt.UpdateNewBestTime(0, 100)
	assert.True(t, updated)
	assert.True(t, bt.IsReached(0))
	assert.True(t, bt.IsReachedCurrentRound(0))
	assert.Equal(t, 100, bt.Time(0))

	updated = bt.UpdateNewBestTime(0, 150)
	assert.False(t, updated, "later time should not improve a forward search")
	assert.Equal(t, 100, bt.Time(0))
}

func TestPrepareForNextRoundSwapsAndCarries(t *testing.T) {
	bt := New(2, math.MaxInt32, forwardIsBest)
	bt.UpdateNewBestTime(0, 100)
	bt.PrepareForNextRound()

	assert.True(t, bt.IsReachedLastRound(0))
	assert.False(t, bt.IsReachedCurrentRound(0))
	assert.Equal(t, 100, bt.TimeLastRound(0))

	// A stop not updated this round should not show as reached.
	assert.False(t, bt.IsReachedLastRound(1))
}

func TestMonotoneAcrossRounds(t *testing.T) {
	bt := New(1, math.MaxInt32, forwardIsBest)
	bt.UpdateNewBestTime(0, 200)
	before := bt.Time(0)
	bt.PrepareForNextRound()
	bt.UpdateNewBestTime(0, 300) // worse, should be rejected
	assert.LessOrEqual(t, bt.Time(0), before)
}
