// Package paths implements DestinationArrivalPaths: a
// Pareto set of completed journeys with a configurable comparator,
// plus the standard/reverse path-construction cursors and the
// ReversePathMapper. It generalizes go-raptor's
// potential_journeys_found accumulation with GetFingerPrint()
// exact-duplicate dedup (go-raptor's mod.go, raptor_models.go) from
// fingerprint-equality dedup to Pareto-dominance dedup.
package paths

import "github.com/transitrouting/rangeraptor/raptor"

// Criteria is the flattened comparison vector extracted from a Path.
type Criteria struct {
	ArrivalTime       int
	NumberOfTransfers int
	TotalDuration     int
	Cost              int
	StartTime         int
}

// CriteriaOf extracts the comparison vector from p. It carries no
// direction: the DominanceFunc's own forward argument decides whether
// ArrivalTime/StartTime are "smaller is better" (forward) or "larger is
// better" (reverse, since reverse paths are stored with latest-possible
// semantics until the ReversePathMapper re-orients them).
func CriteriaOf(p raptor.Path) Criteria {
	return Criteria{
		ArrivalTime:       p.ArrivalTime(),
		NumberOfTransfers: p.NumberOfTransfers(),
		TotalDuration:     p.TotalDuration(),
		Cost:              p.Cost,
		StartTime:         p.DepartureTime(),
	}
}

// DominanceFunc reports whether a dominates b.
type DominanceFunc func(a, b Criteria) bool

// StandardDominance compares (arrivalTime, numberOfTransfers,
// totalDuration) — the default comparator 
func StandardDominance(forward bool) DominanceFunc {
	return func(a, b Criteria) bool {
		betterOrEqArrival := a.ArrivalTime <= b.ArrivalTime
		strictlyBetterArrival := a.ArrivalTime < b.ArrivalTime
		if !forward {
			betterOrEqArrival = a.ArrivalTime >= b.ArrivalTime
			strictlyBetterArrival = a.ArrivalTime > b.ArrivalTime
		}
		betterOrEq := betterOrEqArrival &&
			a.NumberOfTransfers <= b.NumberOfTransfers &&
			a.TotalDuration <= b.TotalDuration
		strictlyBetter := strictlyBetterArrival ||
			a.NumberOfTransfers < b.NumberOfTransfers ||
			a.TotalDuration < b.TotalDuration
		return betterOrEq && strictlyBetter
	}
}

// WithCostDominance adds the generalized-cost criterion, relaxed by
// relaxCostAtDestination, and optionally the timetable
// (startTime) criterion. The open question in  — how
// relaxCostAtDestination interacts with the timetable criterion when
// both are active — is resolved here: the relaxation widens only the
// cost-dominance band; the startTime comparison (when enabled) is
// always exact. See DESIGN.md for the rationale.
func WithCostDominance(forward bool, relaxCostAtDestination float64, timetableEnabled bool) DominanceFunc {
	return func(a, b Criteria) bool {
		costBound := b.Cost
		if relaxCostAtDestination > 0 {
			costBound = int(float64(b.Cost) * (1 + relaxCostAtDestination))
		}

		betterOrEqArrival := a.ArrivalTime <= b.ArrivalTime
		strictlyBetterArrival := a.ArrivalTime < b.ArrivalTime
		if !forward {
			betterOrEqArrival = a.ArrivalTime >= b.ArrivalTime
			strictlyBetterArrival = a.ArrivalTime > b.ArrivalTime
		}

		betterOrEq := betterOrEqArrival &&
			a.NumberOfTransfers <= b.NumberOfTransfers &&
			a.Cost <= costBound
		strictlyBetter := strictlyBetterArrival ||
			a.NumberOfTransfers < b.NumberOfTransfers ||
			a.Cost < b.Cost

		if timetableEnabled {
			betterOrEqStart := a.StartTime <= b.StartTime
			if !forward {
				betterOrEqStart = a.StartTime >= b.StartTime
			}
			betterOrEq = betterOrEq && betterOrEqStart
			strictlyBetterStart := a.StartTime < b.StartTime
			if !forward {
				strictlyBetterStart = a.StartTime > b.StartTime
			}
			strictlyBetter = strictlyBetter || strictlyBetterStart
		}

		return betterOrEq && strictlyBetter
	}
}
