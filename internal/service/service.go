// Package service implements RangeRaptorService/Config: the entry
// point that wires a request's Profile onto the right
// worker/strategy/state combination, runs the forward+reverse no-wait
// heuristic pair the TRANSFERS_STOP_FILTER optimization needs, and
// logs one request lifecycle end to end with a correlation id.
// go-raptor exposes its two direction functions directly with no
// orchestrator in front of them, so this layer has no direct
// counterpart there; it follows the request/response logging idiom
// the retrieved internal/services/gtfs.go and dispatch_service.go use
// (zerolog + a per-request uuid).
package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/transitrouting/rangeraptor/internal/besttimes"
	"github.com/transitrouting/rangeraptor/internal/calculator"
	"github.com/transitrouting/rangeraptor/internal/heuristics"
	"github.com/transitrouting/rangeraptor/internal/lifecycle"
	"github.com/transitrouting/rangeraptor/internal/mcstops"
	"github.com/transitrouting/rangeraptor/internal/paths"
	"github.com/transitrouting/rangeraptor/internal/roundtracker"
	"github.com/transitrouting/rangeraptor/internal/stoparrivals"
	"github.com/transitrouting/rangeraptor/internal/strategy"
	"github.com/transitrouting/rangeraptor/internal/worker"
	"github.com/transitrouting/rangeraptor/raptor"
)

// defaultSearchThreshold is the triposearch restart-from-index
// binary-search cutoff used when Config.SearchThreshold is unset.
const defaultSearchThreshold = 8

// Config wires a Service to its TransitDataProvider and ambient
// concerns. Logger may be the zero zerolog.Logger (writes nowhere);
// callers normally configure an output writer before passing it in.
type Config struct {
	Provider raptor.TransitDataProvider
	Logger   zerolog.Logger

	// SearchThreshold is triposearch.Search's binary-search cutoff.
	// <= 0 uses defaultSearchThreshold.
	SearchThreshold int

	// MaxRounds hard-caps rounds per Range-Raptor iteration, ahead of
	// whatever the RoundTracker's termination margin later tightens it
	// to. <= 0 derives a cap from the provider's stop count (no journey
	// needs more boardings than there are stops in the network).
	MaxRounds int
}

// Service answers raptor.Request values against one TransitDataProvider.
type Service struct {
	cfg Config
}

// New builds a Service over cfg, filling in defaults for zero-valued
// tuning fields.
func New(cfg Config) *Service {
	if cfg.SearchThreshold <= 0 {
		cfg.SearchThreshold = defaultSearchThreshold
	}
	return &Service{cfg: cfg}
}

func (s *Service) maxRounds() int {
	if s.cfg.MaxRounds > 0 {
		return s.cfg.MaxRounds
	}
	n := s.cfg.Provider.NumberOfStops() + 1
	if n < 2 {
		n = 2
	}
	return n
}

func (s *Service) newCalculator(forward bool, boardSlackSeconds int) calculator.Calculator {
	if forward {
		return calculator.NewForward(boardSlackSeconds)
	}
	return calculator.NewReverse(boardSlackSeconds)
}

// Route answers req, logging one request lifecycle end to end under a
// fresh correlation id. req must satisfy Request.Validate(); ctx is
// checked before any worker starts and, when TRANSFERS_STOP_FILTER is
// set, again after the forward/reverse heuristic pair has joined. A
// running worker is not interrupted by cancellation.
func (s *Service) Route(ctx context.Context, req raptor.Request) (raptor.Result, error) {
	if err := req.Validate(); err != nil {
		return raptor.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return raptor.Result{}, err
	}

	log := s.cfg.Logger.With().
		Str("requestId", uuid.NewString()).
		Str("profile", req.Profile.String()).
		Bool("searchForward", req.SearchForward).
		Logger()
	log.Info().Msg("range-raptor request started")

	var (
		result raptor.Result
		err    error
	)
	if req.Profile == raptor.ProfileMultiCriteria {
		result, err = s.routeMultiCriteria(ctx, req, log)
	} else {
		result, err = s.routeStandard(req, log)
	}
	if err != nil {
		log.Error().Err(err).Msg("range-raptor request failed")
		return raptor.Result{}, err
	}
	log.Info().Int("paths", len(result.Paths)).Msg("range-raptor request completed")
	return result, nil
}

// routeStandard answers STANDARD, BEST_TIME, NO_WAIT_STD, and
// NO_WAIT_BEST_TIME with one stoparrivals.StdState-backed worker.Worker
//.
func (s *Service) routeStandard(req raptor.Request, log zerolog.Logger) (raptor.Result, error) {
	calc := s.newCalculator(req.SearchForward, req.BoardSlackInSeconds)
	numStops := s.cfg.Provider.NumberOfStops()
	maxRounds := s.maxRounds()

	best := besttimes.New(numStops, calc.UnreachedTime(), calc.IsBest)
	stops := stoparrivals.New(maxRounds, numStops, best)

	var state stoparrivals.State
	if log.GetLevel() <= zerolog.DebugLevel {
		state = stoparrivals.NewDebugState(stops, best, log)
	} else {
		state = stoparrivals.NewStdState(stops, best)
	}

	var strat *strategy.StdStrategy
	if req.Profile == raptor.ProfileNoWaitStd || req.Profile == raptor.ProfileNoWaitBestTime {
		strat = strategy.NewNoWait(calc, state)
	} else {
		strat = strategy.NewStd(calc, state)
	}
	dest := paths.New(paths.StandardDominance(calc.Forward()))
	tracker := roundtracker.New(maxRounds, req.NumberOfAdditionalTransfers)
	pub := newRoundLogger(log)

	w := worker.New(calc, s.cfg.Provider, strat, best, state, stops, dest, tracker, pub, maxRounds, s.cfg.SearchThreshold)
	result, err := w.Run(req)
	if err != nil {
		return raptor.Result{}, err
	}
	return reorientIfReverse(result, req), nil
}

// routeMultiCriteria answers MULTI_CRITERIA: when OptTransfersStopFilter is set, it first runs a
// forward and a reverse no-wait best-time heuristic pass in parallel
// (an owned goroutine pair joined with sync.WaitGroup, since
// golang.org/x/sync/errgroup is absent from the retrieved pack — see
// DESIGN.md), combines their reached-stop bitsets into a stop filter,
// and — when OptParetoCheckAgainstDestination is also set — turns the
// reverse pass's per-stop minimums into a heuristics.Provider used to
// prune the multi-criteria search against the best path found so far.
func (s *Service) routeMultiCriteria(ctx context.Context, req raptor.Request, log zerolog.Logger) (raptor.Result, error) {
	numStops := s.cfg.Provider.NumberOfStops()
	maxRounds := s.maxRounds()
	costPerTransit := req.MultiCriteriaCostFactors.BoardCost

	var stopFilter []bool
	var heuristicsProvider *heuristics.Provider

	if req.Optimizations&raptor.OptTransfersStopFilter != 0 {
		var forwardBest, reverseBest *besttimes.BestTimes
		var reverseTable *heuristics.Heuristics
		var forwardErr, reverseErr error

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			forwardBest, forwardErr = s.runHeuristicPass(true, req, numStops, maxRounds, costPerTransit, log)
		}()
		go func() {
			defer wg.Done()
			reverseBest, reverseTable, reverseErr = s.runHeuristicPassWithTable(false, req, numStops, maxRounds, costPerTransit, log)
		}()
		wg.Wait()

		if err := ctx.Err(); err != nil {
			return raptor.Result{}, err
		}
		if forwardErr != nil {
			log.Warn().Err(forwardErr).Msg("forward heuristic pass failed")
			return raptor.Result{}, forwardErr
		}
		if reverseErr != nil {
			log.Warn().Err(reverseErr).Msg("reverse heuristic pass failed")
			return raptor.Result{}, reverseErr
		}

		stopFilter = make([]bool, numStops)
		for stop := 0; stop < numStops; stop++ {
			stopFilter[stop] = forwardBest.IsReached(stop) && reverseBest.IsReached(stop)
		}

		if req.Optimizations&raptor.OptParetoCheckAgainstDestination != 0 {
			heuristicsProvider = heuristics.NewProvider(reverseTable)
		}
	}

	calc := s.newCalculator(req.SearchForward, req.BoardSlackInSeconds)
	arena := &mcstops.Arena{}
	frontier := mcstops.New(numStops, arena, mcstops.StandardDominance(calc.Forward()))
	dest := paths.New(paths.WithCostDominance(calc.Forward(), req.RelaxCostAtDestination, req.TimetableEnabled))
	strat := strategy.NewMultiCriteria(calc, frontier, heuristicsProvider, dest, nil, req.MultiCriteriaCostFactors)
	tracker := roundtracker.New(maxRounds, req.NumberOfAdditionalTransfers)
	pub := newRoundLogger(log)

	mcReq := req
	if stopFilter != nil {
		mcReq.StopFilter = stopFilter
	}

	w := worker.NewMultiCriteriaWorker(calc, s.cfg.Provider, strat, frontier, dest, tracker, pub, numStops, maxRounds, s.cfg.SearchThreshold, req.MultiCriteriaCostFactors)
	result, err := w.Run(mcReq)
	if err != nil {
		return raptor.Result{}, err
	}
	return reorientIfReverse(result, req), nil
}

// runHeuristicPass runs a single-iteration No-Wait Best-Time pass and
// returns only its reached-stop bitset — enough to participate in a
// TRANSFERS_STOP_FILTER decision.
func (s *Service) runHeuristicPass(forward bool, req raptor.Request, numStops, maxRounds int, costPerTransit float64, log zerolog.Logger) (*besttimes.BestTimes, error) {
	best, _, err := s.runHeuristicPassWithTable(forward, req, numStops, maxRounds, costPerTransit, log)
	return best, err
}

// runHeuristicPassWithTable runs a single-iteration No-Wait Best-Time
// pass and additionally converts the per-stop minimum
// transfers/cost it recorded into a heuristics.Heuristics table,
// usable as a HeuristicsProvider's lower-bound source. A reverse pass
// (forward==false) searches from the request's egress legs toward its
// access legs — the mirror image of a forward search — so
// AccessLegs/EgressLegs are swapped for this call only; the caller's
// own req is untouched.
func (s *Service) runHeuristicPassWithTable(forward bool, req raptor.Request, numStops, maxRounds int, costPerTransit float64, log zerolog.Logger) (*besttimes.BestTimes, *heuristics.Heuristics, error) {
	calc := s.newCalculator(forward, 0) // no-wait: no board slack

	accessLegs, egressLegs := req.AccessLegs, req.EgressLegs
	if !forward {
		accessLegs, egressLegs = egressLegs, accessLegs
	}

	pivot := req.EarliestDepartureTime
	if !forward {
		pivot = req.LatestArrivalTime
	}

	heuristicReq := raptor.Request{
		Profile:                     raptor.ProfileNoWaitBestTime,
		SearchForward:               forward,
		EarliestDepartureTime:       pivot,
		LatestArrivalTime:           pivot,
		SearchWindowInSeconds:       0,
		AccessLegs:                  accessLegs,
		EgressLegs:                  egressLegs,
		BoardSlackInSeconds:         0,
		NumberOfAdditionalTransfers: req.NumberOfAdditionalTransfers,
	}
	if err := heuristicReq.Validate(); err != nil {
		return nil, nil, err
	}

	best := besttimes.New(numStops, calc.UnreachedTime(), calc.IsBest)
	state := stoparrivals.NewHeuristicState(best, costPerTransit)
	strat := strategy.NewStd(calc, state)
	tracker := roundtracker.New(maxRounds, req.NumberOfAdditionalTransfers)

	w := worker.New(calc, s.cfg.Provider, strat, best, state, nil, nil, tracker, nil, maxRounds, s.cfg.SearchThreshold)
	if _, err := w.Run(heuristicReq); err != nil {
		log.Warn().Err(err).Bool("forward", forward).Msg("heuristic pass failed")
		return nil, nil, err
	}

	table := heuristics.New(numStops)
	for stop := 0; stop < numStops; stop++ {
		if !best.IsReached(stop) {
			continue
		}
		transfers := state.MinNumTransfers(stop)
		if transfers < 0 {
			transfers = 0
		}
		duration := best.Time(stop) - pivot
		if duration < 0 {
			duration = -duration
		}
		table.Set(stop, heuristics.StopHeuristic{
			MinTravelDuration: duration,
			MinNumTransfers:   transfers,
			MinCost:           state.MinCost(stop),
		})
	}
	return best, table, nil
}

// reorientIfReverse maps every path in result through
// paths.ReversePathMapper when req ran in reverse, so callers always
// receive forward-oriented paths regardless of search direction.
func reorientIfReverse(result raptor.Result, req raptor.Request) raptor.Result {
	if req.SearchForward || len(result.Paths) == 0 {
		return result
	}
	mapper := paths.ReversePathMapper{BoardSlackSeconds: req.BoardSlackInSeconds}
	mapped := make([]raptor.Path, len(result.Paths))
	for i, p := range result.Paths {
		mapped[i] = mapper.Map(p)
	}
	return raptor.Result{Paths: mapped}
}

// roundLogger is a lifecycle.RoundListener that emits one debug log
// line per round boundary, the request-level analog of
// stoparrivals.DebugState's per-arrival logging.
type roundLogger struct {
	log zerolog.Logger
}

func newRoundLogger(log zerolog.Logger) *lifecycle.Publisher {
	b := lifecycle.NewBuilder()
	b.OnRound(&roundLogger{log: log})
	return b.Seal()
}

func (r *roundLogger) PrepareForNextRound(round int) {
	r.log.Debug().Int("round", round).Msg("round starting")
}

func (r *roundLogger) RoundComplete(round int, destinationReached bool) {
	r.log.Debug().Int("round", round).Bool("destinationReached", destinationReached).Msg("round complete")
}
