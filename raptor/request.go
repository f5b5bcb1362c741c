package raptor

// Profile selects which worker/strategy family answers a request.
type Profile int

const (
	ProfileStandard Profile = iota
	ProfileBestTime
	ProfileNoWaitStd
	ProfileNoWaitBestTime
	ProfileMultiCriteria
)

func (p Profile) String() string {
	switch p {
	case ProfileStandard:
		return "STANDARD"
	case ProfileBestTime:
		return "BEST_TIME"
	case ProfileNoWaitStd:
		return "NO_WAIT_STD"
	case ProfileNoWaitBestTime:
		return "NO_WAIT_BEST_TIME"
	case ProfileMultiCriteria:
		return "MULTI_CRITERIA"
	default:
		return "UNKNOWN"
	}
}

// isNoWait reports whether the profile uses the no-wait strategy,
// which this restricts to a single Range-Raptor iteration.
func (p Profile) isNoWait() bool {
	return p == ProfileNoWaitStd || p == ProfileNoWaitBestTime
}

// Optimization is a bitset of optional search behaviors.
type Optimization int

const (
	OptParallel Optimization = 1 << iota
	OptParetoCheckAgainstDestination
	OptTransfersStopFilter
)

func (o Optimization) has(flag Optimization) bool {
	return o&flag != 0
}

// CostFactors weight the generalized-cost criterion used by the
// multi-criteria profile.
type CostFactors struct {
	BoardCost      float64
	WalkReluctance float64
	WaitReluctance float64
}

const minuteSeconds = 60

// Request is the full set of options  names. The zero
// value is not valid on its own — use DefaultRequest and override.
type Request struct {
	Profile       Profile
	SearchForward bool

	EarliestDepartureTime int
	LatestArrivalTime     int
	SearchWindowInSeconds int

	AccessLegs []TransferLeg
	EgressLegs []TransferLeg

	BoardSlackInSeconds         int
	NumberOfAdditionalTransfers int

	MultiCriteriaCostFactors CostFactors
	Optimizations            Optimization
	RelaxCostAtDestination   float64
	TimetableEnabled         bool

	// StopFilter, when non-nil, restricts which stops may be visited;
	// index i is addressable iff StopFilter[i] is true. nil means
	// unrestricted.
	StopFilter []bool
}

// DefaultRequest returns a Request with the documented
// defaults (board slack 60s, 3 additional transfers) and everything
// else zeroed; callers must still set the time window and access/
// egress legs.
func DefaultRequest() Request {
	return Request{
		Profile:                     ProfileStandard,
		SearchForward:               true,
		BoardSlackInSeconds:         60,
		NumberOfAdditionalTransfers: 3,
	}
}

// numberOfIterations returns how many Range-Raptor departure-minute
// iterations this request would run, at one-minute granularity.
func (r Request) numberOfIterations() int {
	if r.SearchWindowInSeconds <= 0 {
		return 1
	}
	return r.SearchWindowInSeconds/minuteSeconds + 1
}

// Validate performs the eager, pre-search checks: missing
// access/egress legs and conflicting options are ConfigurationErrors
// raised before any worker starts.
func (r Request) Validate() error {
	if len(r.AccessLegs) == 0 {
		return newConfigurationError("request has no access legs")
	}
	if len(r.EgressLegs) == 0 {
		return newConfigurationError("request has no egress legs")
	}
	if r.BoardSlackInSeconds < 0 {
		return newConfigurationError("boardSlackInSeconds must be >= 0, got %d", r.BoardSlackInSeconds)
	}
	if r.NumberOfAdditionalTransfers < 0 {
		return newConfigurationError("numberOfAdditionalTransfers must be >= 0, got %d", r.NumberOfAdditionalTransfers)
	}
	if r.RelaxCostAtDestination < 0 {
		return newConfigurationError("relaxCostAtDestination must be >= 0, got %f", r.RelaxCostAtDestination)
	}
	// The no-wait strategy removes board-slack accounting across
	// intermediate stops, so it must be restricted to a single
	// Range-Raptor iteration — this is that check.
	if r.Profile.isNoWait() && r.numberOfIterations() > 1 {
		return newConfigurationError(
			"profile %s is only valid for a single Range-Raptor iteration, got a %ds window (%d iterations)",
			r.Profile, r.SearchWindowInSeconds, r.numberOfIterations(),
		)
	}
	return nil
}
