package stoparrivals

import (
	"github.com/rs/zerolog"

	"github.com/transitrouting/rangeraptor/internal/besttimes"
	"github.com/transitrouting/rangeraptor/raptor"
)

// State is the recording-policy interface the standard worker's
// strategies write through. Swapping implementations changes what gets
// persisted without touching the traversal logic: a plug-in recording
// policy driving BestTimes/Stops/Paths.
type State interface {
	SetInitial(stop, arrivalTime, duration int)
	AcceptTransit(round, stop, alightTime, boardStop, boardTime int, trip raptor.TripSchedule, transitTime int)
	AcceptTransfer(round, fromStop, stop, transferDuration, arrivalTime int)
	Best() *besttimes.BestTimes
}

// StdState records every arrival into Stops, enabling full path
// reconstruction. internal/service uses it (or DebugState) for all four
// standard-worker profiles: STANDARD, BEST_TIME, NO_WAIT_STD and
// NO_WAIT_BEST_TIME.
type StdState struct {
	stops *Stops
	best  *besttimes.BestTimes
}

func NewStdState(stops *Stops, best *besttimes.BestTimes) *StdState {
	return &StdState{stops: stops, best: best}
}

func (s *StdState) SetInitial(stop, arrivalTime, duration int) {
	s.stops.SetInitialTime(stop, arrivalTime, duration)
}

func (s *StdState) AcceptTransit(round, stop, alightTime, boardStop, boardTime int, trip raptor.TripSchedule, transitTime int) {
	s.stops.TransitToStop(round, stop, alightTime, boardStop, boardTime, trip, transitTime)
	s.best.UpdateNewBestTime(stop, alightTime)
}

func (s *StdState) AcceptTransfer(round, fromStop, stop, transferDuration, arrivalTime int) {
	s.stops.TransferToStop(round, fromStop, stop, transferDuration, arrivalTime)
	s.best.UpdateNewBestTime(stop, arrivalTime)
}

func (s *StdState) Best() *besttimes.BestTimes { return s.best }

// BestTimesOnlyState skips Stops entirely and records only best
// arrival times, for a worker built without Stops that needs no paths.
// internal/service does not use it: its profiles use StdState or
// DebugState, and its heuristic passes use HeuristicState.
type BestTimesOnlyState struct {
	best *besttimes.BestTimes
}

func NewBestTimesOnlyState(best *besttimes.BestTimes) *BestTimesOnlyState {
	return &BestTimesOnlyState{best: best}
}

func (s *BestTimesOnlyState) SetInitial(stop, arrivalTime, _duration int) {
	s.best.UpdateNewBestTime(stop, arrivalTime)
}

func (s *BestTimesOnlyState) AcceptTransit(_round, stop, alightTime int, _boardStop, _boardTime int, _trip raptor.TripSchedule, _transitTime int) {
	s.best.UpdateNewBestTime(stop, alightTime)
}

func (s *BestTimesOnlyState) AcceptTransfer(_round, _fromStop, stop, _transferDuration, arrivalTime int) {
	s.best.UpdateNewBestTime(stop, arrivalTime)
}

func (s *BestTimesOnlyState) Best() *besttimes.BestTimes { return s.best }

// DebugState wraps StdState with structured per-acceptance logging,
// grounded on the retrieved internal/services/gtfs.go zerolog usage
// pattern.
type DebugState struct {
	*StdState
	log zerolog.Logger
}

func NewDebugState(stops *Stops, best *besttimes.BestTimes, log zerolog.Logger) *DebugState {
	return &DebugState{StdState: NewStdState(stops, best), log: log}
}

func (s *DebugState) AcceptTransit(round, stop, alightTime, boardStop, boardTime int, trip raptor.TripSchedule, transitTime int) {
	s.StdState.AcceptTransit(round, stop, alightTime, boardStop, boardTime, trip, transitTime)
	s.log.Debug().Int("round", round).Int("stop", stop).Int("arrivalTime", alightTime).Msg("transit arrival accepted")
}

func (s *DebugState) AcceptTransfer(round, fromStop, stop, transferDuration, arrivalTime int) {
	s.StdState.AcceptTransfer(round, fromStop, stop, transferDuration, arrivalTime)
	s.log.Debug().Int("round", round).Int("stop", stop).Int("fromStop", fromStop).Int("arrivalTime", arrivalTime).Msg("transfer arrival accepted")
}

// HeuristicState is used by the forward/reverse no-wait heuristic
// passes: it records best times plus, per stop, the
// minimum number of transfers and minimum generalized cost seen,
// feeding directly into the Heuristics table (internal/heuristics).
type HeuristicState struct {
	best           *besttimes.BestTimes
	minTransfers   []int
	minCost        []int
	costPerTransit float64
}

func NewHeuristicState(best *besttimes.BestTimes, costPerTransit float64) *HeuristicState {
	n := best.NumStops()
	h := &HeuristicState{best: best, minTransfers: make([]int, n), minCost: make([]int, n), costPerTransit: costPerTransit}
	for i := range h.minTransfers {
		h.minTransfers[i] = -1
	}
	return h
}

func (h *HeuristicState) SetInitial(stop, arrivalTime, _duration int) {
	h.best.UpdateNewBestTime(stop, arrivalTime)
	h.minTransfers[stop] = 0
}

func (h *HeuristicState) AcceptTransit(round, stop, alightTime int, _boardStop, _boardTime int, _trip raptor.TripSchedule, _transitTime int) {
	if h.best.UpdateNewBestTime(stop, alightTime) || h.minTransfers[stop] == -1 {
		transfers := round - 1
		if h.minTransfers[stop] == -1 || transfers < h.minTransfers[stop] {
			h.minTransfers[stop] = transfers
		}
		h.minCost[stop] = int(float64(h.minTransfers[stop]+1) * h.costPerTransit)
	}
}

func (h *HeuristicState) AcceptTransfer(_round, _fromStop, stop, _transferDuration, arrivalTime int) {
	h.best.UpdateNewBestTime(stop, arrivalTime)
}

func (h *HeuristicState) Best() *besttimes.BestTimes { return h.best }

// MinNumTransfers returns the lowest number of transfers seen reaching
// stop, or -1 if unreached.
func (h *HeuristicState) MinNumTransfers(stop int) int { return h.minTransfers[stop] }

// MinCost returns the lowest generalized cost estimate seen reaching
// stop.
func (h *HeuristicState) MinCost(stop int) int { return h.minCost[stop] }
