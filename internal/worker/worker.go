// Package worker implements RangeRaptorWorker: the
// outer departure-minute loop and the per-round transit/transfer
// phases, driving a pluggable strategy.Strategy over a
// stoparrivals.State. It generalizes go-raptor's two top-level
// functions, SimpleRaptorDepartAt/SimpleRaptorArriveBy (go-raptor's
// mod.go) — each a monolithic "outer minute loop, inner round loop,
// inline board/alight, inline transfer" function duplicated once per
// direction — into a single direction-parameterized worker that reads
// its board/alight behavior from an injected strategy.Strategy and
// its search direction from an injected calculator.Calculator.
package worker

import (
	"github.com/transitrouting/rangeraptor/internal/besttimes"
	"github.com/transitrouting/rangeraptor/internal/calculator"
	"github.com/transitrouting/rangeraptor/internal/lifecycle"
	"github.com/transitrouting/rangeraptor/internal/paths"
	"github.com/transitrouting/rangeraptor/internal/roundtracker"
	"github.com/transitrouting/rangeraptor/internal/stoparrivals"
	"github.com/transitrouting/rangeraptor/internal/strategy"
	"github.com/transitrouting/rangeraptor/raptor"
)

// Strategy is re-exported for callers assembling a Worker without
// importing the strategy package directly.
type Strategy = strategy.Strategy

// Worker runs the standard (single-criterion) Range-Raptor search:
// STANDARD, BEST_TIME, NO_WAIT_STD, and NO_WAIT_BEST_TIME profiles all
// use this type, differing only in which strategy.Strategy and
// stoparrivals.State they're built with (see internal/service).
type Worker struct {
	calc     calculator.Calculator
	provider raptor.TransitDataProvider
	strategy Strategy
	best     *besttimes.BestTimes
	state    stoparrivals.State

	// stops and dest are nil for a worker built for a heuristic pass
	// (backed by stoparrivals.HeuristicState): no Stops means no path can be reconstructed,
	// so such a worker only ever returns an empty Result.Paths — its
	// purpose is the side effect of populating `best`/a heuristics
	// table, not the returned paths.
	stops *stoparrivals.Stops
	dest  *paths.DestinationArrivalPaths

	tracker         *roundtracker.RoundTracker
	pub             *lifecycle.Publisher // may be nil
	maxRounds       int
	searchThreshold int
}

// New builds a Worker. stops and dest may both be nil (see the Worker
// doc comment); pub may be nil when no life-cycle observer is needed.
func New(
	calc calculator.Calculator,
	provider raptor.TransitDataProvider,
	strat Strategy,
	best *besttimes.BestTimes,
	state stoparrivals.State,
	stops *stoparrivals.Stops,
	dest *paths.DestinationArrivalPaths,
	tracker *roundtracker.RoundTracker,
	pub *lifecycle.Publisher,
	maxRounds, searchThreshold int,
) *Worker {
	return &Worker{
		calc: calc, provider: provider, strategy: strat, best: best, state: state,
		stops: stops, dest: dest, tracker: tracker, pub: pub,
		maxRounds: maxRounds, searchThreshold: searchThreshold,
	}
}

// Run executes the full range-raptor outer loop for req and returns
// the accumulated pareto-set of paths. req must already have passed
// Request.Validate().
func (w *Worker) Run(req raptor.Request) (raptor.Result, error) {
	egressByStop := make(map[int]raptor.TransferLeg, len(req.EgressLegs))
	for _, leg := range req.EgressLegs {
		egressByStop[leg.Stop] = leg
	}

	if w.stops != nil && w.dest != nil {
		w.stops.SetupEgressStopStates(req.EgressLegs, func(round, stop, arrivalTime int) {
			leg := egressByStop[stop]
			if p, ok := paths.BuildStandardPath(w.stops, round, stop, leg); ok {
				w.dest.Propose(p)
			}
		})
	}

	minutes := w.calc.RangeRaptorMinutes(req.EarliestDepartureTime, req.LatestArrivalTime, req.SearchWindowInSeconds)

	for _, departureTime := range minutes {
		if w.pub != nil {
			w.pub.SetupIteration(departureTime)
		}
		if w.stops != nil {
			w.stops.Reset()
		}
		w.tracker.Reset(w.maxRounds)

		for _, leg := range req.AccessLegs {
			if !addressable(leg.Stop, req) {
				continue
			}
			arrivalTime := w.calc.Add(departureTime, leg.DurationSeconds)
			w.state.SetInitial(leg.Stop, arrivalTime, leg.DurationSeconds)
		}

		if err := w.runRounds(req, egressByStop); err != nil {
			return raptor.Result{}, err
		}

		if w.pub != nil {
			w.pub.IterationComplete()
		}
	}

	var result raptor.Result
	if w.dest != nil {
		result.Paths = w.dest.Paths()
	}
	return result, nil
}

func (w *Worker) runRounds(req raptor.Request, egressByStop map[int]raptor.TransferLeg) error {
	for {
		if !w.best.HasAnyReachedCurrentRound() {
			return nil
		}
		w.tracker.PrepareForNextRound()
		if !w.tracker.HasMoreRounds() {
			// The termination margin tightened mid-sweep: this round's own body must not run even
			// though the previous round still found something.
			return nil
		}
		w.best.PrepareForNextRound()
		round := w.tracker.Round()
		if w.pub != nil {
			w.pub.PrepareForNextRound(round)
		}

		var reachedLastRound []raptor.Stop
		for s := 0; s < w.best.NumStops(); s++ {
			if w.best.IsReachedLastRound(s) {
				reachedLastRound = append(reachedLastRound, s)
			}
		}

		patterns, err := w.provider.PatternsTouchedBy(reachedLastRound)
		if err != nil {
			return raptor.NewUnderlyingDataError(err)
		}
		for _, patIdx := range patterns {
			pattern, schedules, err := w.provider.GetPattern(patIdx)
			if err != nil {
				return raptor.NewUnderlyingDataError(err)
			}
			w.strategy.PrepareForTransitWith(round, pattern, schedules, w.provider.SkipTripSchedule, w.searchThreshold)
			for _, pos := range w.calc.PatternStopPositions(pattern.NumberOfStopsInPattern()) {
				if addressable(pattern.StopIndex(pos), req) {
					w.strategy.RouteTransitAtStop(pos)
				}
			}
		}

		if err := w.transferPhase(round, req); err != nil {
			return err
		}

		destinationReached := false
		for stop := range egressByStop {
			if w.best.IsReached(stop) {
				destinationReached = true
				w.tracker.NotifyDestinationReached()
			}
		}
		if w.dest != nil {
			w.dest.CommitRound()
		}
		if w.pub != nil {
			w.pub.RoundComplete(round, destinationReached)
		}
	}
}

// transferPhase extends every stop reached by transit this round with
// its outgoing transfer legs. The reached set is snapshotted up front:
// AcceptTransfer marks its target reached-this-round too, and a live
// scan would then walk back over a transfer's own target and chain a
// second transfer onto it in the same round.
func (w *Worker) transferPhase(round int, req raptor.Request) error {
	var reachedByTransit []int
	for s := 0; s < w.best.NumStops(); s++ {
		if w.best.IsReachedCurrentRound(s) {
			reachedByTransit = append(reachedByTransit, s)
		}
	}

	for _, s := range reachedByTransit {
		legs, err := w.provider.TransfersFrom(s)
		if err != nil {
			return raptor.NewUnderlyingDataError(err)
		}
		for _, leg := range legs {
			if !addressable(leg.Stop, req) {
				continue
			}
			arrivalTime := w.calc.Add(w.best.Time(s), leg.DurationSeconds)
			if w.calc.IsBest(arrivalTime, w.best.Time(leg.Stop)) {
				w.state.AcceptTransfer(round, s, leg.Stop, leg.DurationSeconds, arrivalTime)
			}
		}
	}
	return nil
}

// addressable reports whether stop may be visited under req's
// StopFilter; a nil filter means every
// stop is addressable. Shared by Worker and MultiCriteriaWorker.
func addressable(stop int, req raptor.Request) bool {
	if req.StopFilter == nil {
		return true
	}
	if stop < 0 || stop >= len(req.StopFilter) {
		return true
	}
	return req.StopFilter[stop]
}
