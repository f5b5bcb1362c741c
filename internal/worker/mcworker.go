package worker

import (
	"github.com/transitrouting/rangeraptor/internal/calculator"
	"github.com/transitrouting/rangeraptor/internal/lifecycle"
	"github.com/transitrouting/rangeraptor/internal/mcstops"
	"github.com/transitrouting/rangeraptor/internal/paths"
	"github.com/transitrouting/rangeraptor/internal/roundtracker"
	"github.com/transitrouting/rangeraptor/internal/strategy"
	"github.com/transitrouting/rangeraptor/raptor"
)

// MultiCriteriaWorker runs the MULTI_CRITERIA profile. It mirrors Worker's outer departure-minute loop and
// round-by-round transit/transfer phases, but a stop here carries a
// whole Pareto frontier rather than one best time, so the
// reached-bookkeeping that Worker gets from besttimes.BestTimes is
// instead read off mcstops.Frontier directly, and the transfer phase
// must fan out over every arrival on a stop's current-round frontier
// instead of a single scalar. Sharing Worker's runRounds was tried and
// rejected: see DESIGN.md.
type MultiCriteriaWorker struct {
	calc     calculator.Calculator
	provider raptor.TransitDataProvider
	strategy *strategy.MultiCriteriaStrategy
	frontier *mcstops.Frontier
	dest     *paths.DestinationArrivalPaths

	tracker         *roundtracker.RoundTracker
	pub             *lifecycle.Publisher // may be nil
	numStops        int
	maxRounds       int
	searchThreshold int
	costFactors     raptor.CostFactors
}

// NewMultiCriteriaWorker builds a MultiCriteriaWorker. strat must be
// built over the same frontier and dest passed here; its egress set is
// overwritten by Run once a Request arrives. costFactors weights every
// access and transfer leg's contribution to the generalized-cost
// criterion.
func NewMultiCriteriaWorker(
	calc calculator.Calculator,
	provider raptor.TransitDataProvider,
	strat *strategy.MultiCriteriaStrategy,
	frontier *mcstops.Frontier,
	dest *paths.DestinationArrivalPaths,
	tracker *roundtracker.RoundTracker,
	pub *lifecycle.Publisher,
	numStops, maxRounds, searchThreshold int,
	costFactors raptor.CostFactors,
) *MultiCriteriaWorker {
	return &MultiCriteriaWorker{
		calc: calc, provider: provider, strategy: strat, frontier: frontier, dest: dest,
		tracker: tracker, pub: pub,
		numStops: numStops, maxRounds: maxRounds, searchThreshold: searchThreshold,
		costFactors: costFactors,
	}
}

// Run executes the full range-raptor outer loop for req and returns
// the accumulated multi-criteria pareto-set of paths. req must already
// have passed Request.Validate().
func (w *MultiCriteriaWorker) Run(req raptor.Request) (raptor.Result, error) {
	egressByStop := make(map[int]raptor.TransferLeg, len(req.EgressLegs))
	for _, leg := range req.EgressLegs {
		egressByStop[leg.Stop] = leg
	}
	w.strategy.SetEgress(egressByStop)

	minutes := w.calc.RangeRaptorMinutes(req.EarliestDepartureTime, req.LatestArrivalTime, req.SearchWindowInSeconds)

	for _, departureTime := range minutes {
		if w.pub != nil {
			w.pub.SetupIteration(departureTime)
		}
		w.frontier.Reset()
		w.tracker.Reset(w.maxRounds)

		for _, leg := range req.AccessLegs {
			if !addressable(leg.Stop, req) {
				continue
			}
			arrivalTime := w.calc.Add(departureTime, leg.DurationSeconds)
			w.frontier.Add(leg.Stop, mcstops.Arrival{
				PrevIndex:      -1,
				Round:          0,
				Stop:           leg.Stop,
				Kind:           mcstops.KindAccess,
				ArrivalTime:    arrivalTime,
				TravelDuration: leg.DurationSeconds,
				Cost:           leg.Cost + int(w.costFactors.WalkReluctance*float64(leg.DurationSeconds)),
				StartTime:      departureTime,
			})
		}

		if err := w.runRounds(req, egressByStop); err != nil {
			return raptor.Result{}, err
		}
		if w.pub != nil {
			w.pub.IterationComplete()
		}
	}

	return raptor.Result{Paths: w.dest.Paths()}, nil
}

func (w *MultiCriteriaWorker) runRounds(req raptor.Request, egressByStop map[int]raptor.TransferLeg) error {
	for {
		if !w.anyReachedCurrentRound() {
			return nil
		}
		w.tracker.PrepareForNextRound()
		if !w.tracker.HasMoreRounds() {
			return nil
		}
		w.frontier.PrepareForNextRound()
		round := w.tracker.Round()
		if w.pub != nil {
			w.pub.PrepareForNextRound(round)
		}

		var touched []raptor.Stop
		for s := 0; s < w.numStops; s++ {
			if len(w.frontier.ListPreviousRound(s)) > 0 {
				touched = append(touched, s)
			}
		}

		patterns, err := w.provider.PatternsTouchedBy(touched)
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

		if err := w.transferPhase(round, req, egressByStop); err != nil {
			return err
		}

		destinationReached := false
		for stop := range egressByStop {
			if w.frontier.ReachedCurrentRound(stop) {
				destinationReached = true
				w.tracker.NotifyDestinationReached()
			}
		}
		w.dest.CommitRound()
		if w.pub != nil {
			w.pub.RoundComplete(round, destinationReached)
		}
	}
}

// transitArrivals snapshots one stop's current-round frontier ahead of
// the transfer phase, so a transfer's own target isn't walked again as
// a source within the same phase.
type transitArrivals struct {
	stop     int
	arrivals []mcstops.Arrival
}

// transferPhase extends every arrival on a stop's current-round
// frontier by every outgoing transfer leg from that stop, proposing a
// completed path whenever the transfer lands on an egress stop and
// survives the frontier's dominance check. Both the reached-stop set
// and each stop's arrivals are snapshotted before any transfer is
// applied: Frontier.Add marks a transfer's target reached-this-round
// too, and a live scan would then chain a second transfer onto it in
// the same round.
func (w *MultiCriteriaWorker) transferPhase(round int, req raptor.Request, egressByStop map[int]raptor.TransferLeg) error {
	var reachedByTransit []transitArrivals
	for s := 0; s < w.numStops; s++ {
		if arrivals := w.frontier.ListCurrentRound(s); len(arrivals) > 0 {
			reachedByTransit = append(reachedByTransit, transitArrivals{stop: s, arrivals: arrivals})
		}
	}

	for _, ta := range reachedByTransit {
		legs, err := w.provider.TransfersFrom(ta.stop)
		if err != nil {
			return raptor.NewUnderlyingDataError(err)
		}
		if len(legs) == 0 {
			continue
		}
		for _, from := range ta.arrivals {
			for _, leg := range legs {
				if !addressable(leg.Stop, req) {
					continue
				}
				arrivalTime := w.calc.Add(from.ArrivalTime, leg.DurationSeconds)
				ar := mcstops.Arrival{
					PrevIndex:         from.SelfIndex,
					Round:             round,
					Stop:              leg.Stop,
					Kind:              mcstops.KindTransfer,
					ArrivalTime:       arrivalTime,
					TravelDuration:    from.TravelDuration + leg.DurationSeconds,
					NumberOfTransfers: from.NumberOfTransfers,
					Cost:              from.Cost + leg.Cost + int(w.costFactors.WalkReluctance*float64(leg.DurationSeconds)),
					StartTime:         from.StartTime,
					TransferFromStop:  ta.stop,
				}
				idx, ok := w.frontier.Add(leg.Stop, ar)
				if !ok {
					continue
				}
				if egress, isEgress := egressByStop[leg.Stop]; isEgress {
					w.dest.Propose(paths.BuildMultiCriteriaPath(w.frontier.Arena(), idx, egress))
				}
			}
		}
	}
	return nil
}

func (w *MultiCriteriaWorker) anyReachedCurrentRound() bool {
	for s := 0; s < w.numStops; s++ {
		if w.frontier.ReachedCurrentRound(s) {
			return true
		}
	}
	return false
}
