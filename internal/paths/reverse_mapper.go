package paths

import "github.com/transitrouting/rangeraptor/raptor"

// ReversePathMapper re-orients a path built by an arrive-by (reverse)
// search into the same forward presentation a depart-at search
// produces: legs in ascending time order, each Leg.FromTime <=
// Leg.ToTime. It generalizes go-raptor's SimpleRaptorArriveBy (in
// go-raptor's mod.go), which gets the ordering for free by prepending
// each new RoundSegmentSpan to the front of the slice as the reverse
// search walks forward in wall-clock time; since this core's cursor
// instead walks a reverse search's predecessor chain the same
// destination-outward way a forward search's cursor does (see
// BuildStandardPath/BuildMultiCriteriaPath), the legs it hands back
// are time-swapped and need their stop/time fields flipped back here
// instead of being assembled in the right order to begin with.
type ReversePathMapper struct {
	// BoardSlackSeconds is the minimum connection time a reverse search
	// adds when computing the latest possible boarding at a transfer;
	// subtracted back out here so the re-oriented alight time at a
	// transfer matches what a forward search would have recorded.
	BoardSlackSeconds int
}

// Map re-orients a reverse-search Path (legs recorded walking from the
// search's destination — the journey's true origin — outward toward
// its origin, which is the journey's true destination, with
// FromTime >= ToTime on every leg) into the standard forward Path.
func (m ReversePathMapper) Map(p raptor.Path) raptor.Path {
	n := len(p.Legs)
	out := make([]raptor.Leg, n)
	for i, l := range p.Legs {
		out[n-1-i] = raptor.Leg{
			Kind:               l.Kind,
			FromStop:           l.ToStop,
			ToStop:             l.FromStop,
			FromTime:           l.ToTime,
			ToTime:             l.FromTime,
			Trip:               l.Trip,
			BoardStopPosition:  l.AlightStopPosition,
			AlightStopPosition: l.BoardStopPosition,
		}
	}

	for i := range out {
		if out[i].Kind != raptor.LegTransfer || m.BoardSlackSeconds == 0 {
			continue
		}
		if i+1 >= len(out) {
			continue
		}
		out[i].ToTime -= m.BoardSlackSeconds
		if out[i].ToTime < out[i].FromTime {
			out[i].ToTime = out[i].FromTime
		}
	}

	return raptor.Path{Legs: out, Cost: p.Cost}
}
