// Package besttimes tracks, per stop, the best overall arrival time and
// which stops were newly reached this round / last round. It is the
// dense-array counterpart to go-raptor's map[ID]RoundSegment
// (go-raptor's raptor_models.go) — column-oriented arrays beat
// per-record allocation at this scale.
package besttimes

// BestTimes holds the per-stop best time seen so far plus the two
// reached bitsets the worker uses to decide which patterns to scan
// next round.
type BestTimes struct {
	isBest func(a, b int) bool
	unreached int

	times          []int
	timesLastRound []int

	reachedCurrentRound []bool
	reachedLastRound    []bool
}

// New allocates a BestTimes for numStops stops. isBest and
// unreachedTime must match the search direction's TransitCalculator.
func New(numStops int, unreachedTime int, isBest func(a, b int) bool) *BestTimes {
	bt := &BestTimes{
		isBest:               isBest,
		unreached:            unreachedTime,
		times:                make([]int, numStops),
		timesLastRound:       make([]int, numStops),
		reachedCurrentRound:  make([]bool, numStops),
		reachedLastRound:     make([]bool, numStops),
	}
	for i := range bt.times {
		bt.times[i] = unreachedTime
		bt.timesLastRound[i] = unreachedTime
	}
	return bt
}

// Reset clears all state back to "nothing reached", for reuse across
// Range-Raptor iterations within the same worker.
func (b *BestTimes) Reset() {
	for i := range b.times {
		b.times[i] = b.unreached
		b.timesLastRound[i] = b.unreached
		b.reachedCurrentRound[i] = false
		b.reachedLastRound[i] = false
	}
}

func (b *BestTimes) IsReached(stop int) bool {
	return b.times[stop] != b.unreached
}

func (b *BestTimes) IsReachedLastRound(stop int) bool {
	return b.reachedLastRound[stop]
}

func (b *BestTimes) IsReachedCurrentRound(stop int) bool {
	return b.reachedCurrentRound[stop]
}

// Time is the best time recorded at stop so far (any round).
func (b *BestTimes) Time(stop int) int {
	return b.times[stop]
}

// TimeLastRound is the best time as of the end of the previous round —
// the boarding basis for this round's transit phase.
func (b *BestTimes) TimeLastRound(stop int) int {
	return b.timesLastRound[stop]
}

// UpdateNewBestTime records t at stop if it dominates the current best,
// marking the stop reached this round. Returns whether it updated.
func (b *BestTimes) UpdateNewBestTime(stop int, t int) bool {
	if !b.isBest(t, b.times[stop]) {
		return false
	}
	b.times[stop] = t
	b.reachedCurrentRound[stop] = true
	return true
}

// PrepareForNextRound swaps the bitsets (current becomes last, current
// is cleared) and carries times into timesLastRound.
func (b *BestTimes) PrepareForNextRound() {
	copy(b.timesLastRound, b.times)
	b.reachedLastRound, b.reachedCurrentRound = b.reachedCurrentRound, b.reachedLastRound
	for i := range b.reachedCurrentRound {
		b.reachedCurrentRound[i] = false
	}
}

// NumStops is the size of the tracked stop space.
func (b *BestTimes) NumStops() int {
	return len(b.times)
}

// HasAnyReachedCurrentRound reports whether any stop was newly reached
// this round — the RangeRaptorWorker's round-loop continuation check
// and current round had
// any reached stop").
func (b *BestTimes) HasAnyReachedCurrentRound() bool {
	for _, r := range b.reachedCurrentRound {
		if r {
			return true
		}
	}
	return false
}
