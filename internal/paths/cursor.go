package paths

import (
	"github.com/transitrouting/rangeraptor/internal/stoparrivals"
	"github.com/transitrouting/rangeraptor/raptor"
)

// BuildStandardPath walks a stoparrivals.Stops backward from
// (round, destStop) to the round-0 access arrival, producing a
// complete forward Path with egress appended. It generalizes the
// teacher's SimpleRaptor path construction (go-raptor's mod.go,
// which prepends RoundSegmentSpans while walking a linked
// RoundSegment chain) to the tagged-variant, per-round-array storage
// of stoparrivals.Stops: since a stop not improved in round r carries
// no record at r, the walk scans downward for the most recent round
// that does have one.
func BuildStandardPath(stops *stoparrivals.Stops, round, destStop int, egress raptor.TransferLeg) (raptor.Path, bool) {
	var legs []Leg
	curRound := round
	curStop := destStop

	for {
		r, ok := findRecordedRound(stops, curRound, curStop)
		if !ok {
			return raptor.Path{}, false
		}
		arr, _ := stops.Arrival(r, curStop)

		switch arr.Kind {
		case stoparrivals.KindAccess:
			legs = append(legs, Leg{
				Kind: raptor.LegAccess, FromStop: curStop, ToStop: curStop,
				FromTime: arr.ArrivalTime, ToTime: arr.ArrivalTime,
			})
			return finishForward(legs, destStop, egress), true
		case stoparrivals.KindTransit:
			legs = append(legs, Leg{
				Kind: raptor.LegTransit, FromStop: arr.BoardStop, ToStop: curStop,
				FromTime: arr.BoardTime, ToTime: arr.ArrivalTime,
				Trip: arr.Trip,
			})
			curStop = arr.BoardStop
			curRound = r - 1
		case stoparrivals.KindTransfer:
			legs = append(legs, Leg{
				Kind: raptor.LegTransfer, FromStop: arr.FromStop, ToStop: curStop,
				FromTime: arr.ArrivalTime - arr.TransferDuration, ToTime: arr.ArrivalTime,
			})
			curStop = arr.FromStop
			curRound = r
		}
	}
}

// findRecordedRound scans rounds [atMost, 0] for the most recent round
// with a recorded arrival at stop.
func findRecordedRound(stops *stoparrivals.Stops, atMost, stop int) (int, bool) {
	for r := atMost; r >= 0; r-- {
		if _, ok := stops.Arrival(r, stop); ok {
			return r, true
		}
	}
	return 0, false
}

// Leg is a convenience alias so callers of this package needn't import
// raptor for leg construction while the cursor builds one in reverse
// order.
type Leg = raptor.Leg

func finishForward(reversed []Leg, destStop int, egress raptor.TransferLeg) raptor.Path {
	legs := make([]Leg, 0, len(reversed)+1)
	for i := len(reversed) - 1; i >= 0; i-- {
		legs = append(legs, reversed[i])
	}
	last := legs[len(legs)-1]
	legs = append(legs, Leg{
		Kind: raptor.LegEgress, FromStop: destStop, ToStop: egress.Stop,
		FromTime: last.ToTime, ToTime: last.ToTime + egress.DurationSeconds,
	})
	return raptor.Path{Legs: legs, Cost: egress.Cost}
}
