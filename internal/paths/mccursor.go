package paths

import (
	"github.com/transitrouting/rangeraptor/internal/mcstops"
	"github.com/transitrouting/rangeraptor/raptor"
)

// BuildMultiCriteriaPath walks an mcstops.Arena predecessor chain
// starting at arena index destIdx (a completed arrival at the
// destination stop) back to its access-leg root, producing a complete
// forward Path with the given egress leg appended. PrevIndex chains
// replace go-raptor's by-value RoundSegment.Spans chain (go-raptor's
// mod.go) with an arena lookup, per mcstops's package doc.
func BuildMultiCriteriaPath(arena *mcstops.Arena, destIdx int, egress raptor.TransferLeg) raptor.Path {
	var legs []Leg
	idx := destIdx

	for idx != -1 {
		ar := arena.Get(idx)
		switch ar.Kind {
		case mcstops.KindAccess:
			legs = append(legs, Leg{
				Kind: raptor.LegAccess, FromStop: ar.Stop, ToStop: ar.Stop,
				FromTime: ar.ArrivalTime, ToTime: ar.ArrivalTime,
			})
		case mcstops.KindTransit:
			legs = append(legs, Leg{
				Kind: raptor.LegTransit, FromStop: ar.BoardStop, ToStop: ar.Stop,
				FromTime: ar.BoardTime, ToTime: ar.ArrivalTime, Trip: ar.Trip,
			})
		case mcstops.KindTransfer:
			fromTime := ar.ArrivalTime
			if ar.PrevIndex != -1 {
				fromTime = arena.Get(ar.PrevIndex).ArrivalTime
			}
			legs = append(legs, Leg{
				Kind: raptor.LegTransfer, FromStop: ar.TransferFromStop, ToStop: ar.Stop,
				FromTime: fromTime, ToTime: ar.ArrivalTime,
			})
		}
		idx = ar.PrevIndex
	}

	last := arena.Get(destIdx)
	forward := make([]Leg, 0, len(legs)+1)
	for i := len(legs) - 1; i >= 0; i-- {
		forward = append(forward, legs[i])
	}
	forward = append(forward, Leg{
		Kind: raptor.LegEgress, FromStop: last.Stop, ToStop: egress.Stop,
		FromTime: last.ArrivalTime, ToTime: last.ArrivalTime + egress.DurationSeconds,
	})
	return raptor.Path{Legs: forward, Cost: last.Cost + egress.Cost}
}
