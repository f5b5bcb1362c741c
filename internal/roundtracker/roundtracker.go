// Package roundtracker implements the round counter and the
// "N additional transfers" termination rule. It
// generalizes go-raptor's fixed `for range input.MaximumTransfers`
// loop (go-raptor's mod.go) into a dynamic limit that tightens once the
// destination is first reached.
package roundtracker

// RoundTracker counts rounds starting at 0 (the round in which access
// legs are set) and stops the worker once HasMoreRounds() is false.
// Round r (r >= 1) corresponds to journeys with exactly r-1 transfers.
type RoundTracker struct {
	round                       int
	maxLimit                    int
	numberOfAdditionalTransfers int
	destinationReached          bool
}

// New builds a tracker allowing up to maxRounds rounds, reduced to
// currentRound + numberOfAdditionalTransfers + 1 the first time the
// destination is reached.
func New(maxRounds, numberOfAdditionalTransfers int) *RoundTracker {
	return &RoundTracker{maxLimit: maxRounds, numberOfAdditionalTransfers: numberOfAdditionalTransfers}
}

// Reset returns the tracker to round 0 with the original limit, for
// reuse across Range-Raptor iterations.
func (rt *RoundTracker) Reset(maxRounds int) {
	rt.round = 0
	rt.maxLimit = maxRounds
	rt.destinationReached = false
}

// Round is the current round number.
func (rt *RoundTracker) Round() int {
	return rt.round
}

// HasMoreRounds reports whether another round should run.
func (rt *RoundTracker) HasMoreRounds() bool {
	return rt.round < rt.maxLimit
}

// PrepareForNextRound advances the round counter.
func (rt *RoundTracker) PrepareForNextRound() {
	rt.round++
}

// NotifyDestinationReached tightens the round limit the first time it
// is called; subsequent calls are no-ops.
func (rt *RoundTracker) NotifyDestinationReached() {
	if rt.destinationReached {
		return
	}
	rt.destinationReached = true
	limit := rt.round + rt.numberOfAdditionalTransfers + 1
	if limit < rt.maxLimit {
		rt.maxLimit = limit
	}
}

// DestinationReached reports whether the destination has been reached
// at least once so far.
func (rt *RoundTracker) DestinationReached() bool {
	return rt.destinationReached
}
