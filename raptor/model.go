// Package raptor is the public surface of the range-raptor transit
// routing core: the data model callers build requests from and the
// result shape they get back. The search machinery itself lives under
// internal/ so a caller's import graph never reaches into the Pareto
// internals.
package raptor

// Stop is a dense, non-negative stop index into the TransitDataProvider's
// stop space. The core never interprets a stop beyond its index.
type Stop = int

// TripPattern is an ordered sequence of stop indices served by one or
// more TripSchedules. numberOfStopsInPattern is fixed for the pattern's
// lifetime.
type TripPattern interface {
	NumberOfStopsInPattern() int
	StopIndex(pos int) int
}

// TripSchedule is a concrete trip on a pattern. Departure/Arrival are
// seconds-since-midnight at the given stop position. Implementations
// may represent any concrete trip type; the core only ever calls these
// two accessors plus the provider's skip predicate.
type TripSchedule interface {
	Departure(pos int) int
	Arrival(pos int) int
}

// TransferLeg is an access, egress, or walking-transfer edge between
// two stops (or, for access/egress, between an external origin/
// destination and a stop).
type TransferLeg struct {
	Stop            Stop
	DurationSeconds int
	Cost            int
}

// LegKind tags a Leg with how it was traversed.
type LegKind int

const (
	LegAccess LegKind = iota
	LegTransit
	LegTransfer
	LegEgress
)

func (k LegKind) String() string {
	switch k {
	case LegAccess:
		return "access"
	case LegTransit:
		return "transit"
	case LegTransfer:
		return "transfer"
	case LegEgress:
		return "egress"
	default:
		return "unknown"
	}
}

// Leg is one edge of a Path. FromTime/ToTime are absolute times
// (seconds since midnight); for LegTransit, Trip identifies the
// concrete trip. The path builders in internal/paths do not fill in
// BoardStopPosition/AlightStopPosition; they stay zero.
type Leg struct {
	Kind     LegKind
	FromStop Stop
	ToStop   Stop
	FromTime int
	ToTime   int

	Trip              TripSchedule
	BoardStopPosition int
	AlightStopPosition int
}

// Path is a complete journey: access leg, alternating transit/transfer
// legs, egress leg. Consecutive legs share a stop and, in a forward
// search, leg.ToTime <= next.FromTime.
type Path struct {
	Legs []Leg
	// Cost is the generalized cost accumulated along the path by the
	// multi-criteria search; a path from the standard search carries
	// only its egress leg's Cost.
	Cost int
}

// NumberOfTransfers is (count of transit legs) - 1; a path with zero
// transit legs (degenerate) reports -1,
// which callers should treat as "not a real journey" (it cannot occur
// for any path accepted into a Result).
func (p Path) NumberOfTransfers() int {
	transit := 0
	for _, l := range p.Legs {
		if l.Kind == LegTransit {
			transit++
		}
	}
	return transit - 1
}

// DepartureTime is the FromTime of the first leg (the access leg).
func (p Path) DepartureTime() int {
	if len(p.Legs) == 0 {
		return 0
	}
	return p.Legs[0].FromTime
}

// ArrivalTime is the ToTime of the last leg (the egress leg).
func (p Path) ArrivalTime() int {
	if len(p.Legs) == 0 {
		return 0
	}
	return p.Legs[len(p.Legs)-1].ToTime
}

// TotalDuration is ArrivalTime - DepartureTime.
func (p Path) TotalDuration() int {
	return p.ArrivalTime() - p.DepartureTime()
}
