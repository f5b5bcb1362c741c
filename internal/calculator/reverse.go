package calculator

import "math"

// Reverse is the arrive-by TransitCalculator: later is better, the
// outer loop walks arrival minutes from earliest to latest within the
// window.
type Reverse struct {
	boardSlackSeconds int
}

func NewReverse(boardSlackSeconds int) *Reverse {
	return &Reverse{boardSlackSeconds: boardSlackSeconds}
}

func (r *Reverse) Forward() bool { return false }

func (r *Reverse) Add(t, d int) int { return t - d }
func (r *Reverse) Sub(t, d int) int { return t + d }

func (r *Reverse) IsBest(a, b int) bool { return a > b }

func (r *Reverse) UnreachedTime() int { return math.MinInt32 }

func (r *Reverse) BoardSlackSeconds() int { return r.boardSlackSeconds }

func (r *Reverse) EarliestBoardTime(arrivalAtStop int) int {
	return r.Add(arrivalAtStop, r.boardSlackSeconds)
}

func (r *Reverse) RangeRaptorMinutes(earliestDepartureTime, latestArrivalTime, searchWindowSeconds int) []int {
	earliestArrival := latestArrivalTime - searchWindowSeconds
	return rangeMinutesAscending(earliestArrival, latestArrivalTime)
}

func (r *Reverse) PatternStopPositions(numberOfStopsInPattern int) []int {
	return positionsDescending(numberOfStopsInPattern)
}
