package calculator

import "math"

// Forward is the depart-at TransitCalculator: earlier is better, the
// outer loop walks departure minutes from latest to earliest within
// the window so later iterations' reached-stop work can be reused as
// an upper bound by earlier ones (classic Range-Raptor reuse).
type Forward struct {
	boardSlackSeconds int
}

func NewForward(boardSlackSeconds int) *Forward {
	return &Forward{boardSlackSeconds: boardSlackSeconds}
}

func (f *Forward) Forward() bool { return true }

func (f *Forward) Add(t, d int) int { return t + d }
func (f *Forward) Sub(t, d int) int { return t - d }

func (f *Forward) IsBest(a, b int) bool { return a < b }

func (f *Forward) UnreachedTime() int { return math.MaxInt32 }

func (f *Forward) BoardSlackSeconds() int { return f.boardSlackSeconds }

func (f *Forward) EarliestBoardTime(arrivalAtStop int) int {
	return f.Add(arrivalAtStop, f.boardSlackSeconds)
}

func (f *Forward) RangeRaptorMinutes(earliestDepartureTime, latestArrivalTime, searchWindowSeconds int) []int {
	latestDeparture := earliestDepartureTime + searchWindowSeconds
	return reversed(rangeMinutesAscending(earliestDepartureTime, latestDeparture))
}

func (f *Forward) PatternStopPositions(numberOfStopsInPattern int) []int {
	return positionsAscending(numberOfStopsInPattern)
}
