// Package triposearch implements TripScheduleSearch: for
// a stop position in a pattern, find the best boardable (forward) or
// alightable (reverse) trip schedule. It generalizes go-raptor's
// SliceIterator (go-raptor's slice_it.go), whose direction-aware
// indexing and sub-slicing map directly onto the binary-search-then-
// linear-scan this component needs.
package triposearch

import (
	"sort"

	"github.com/transitrouting/rangeraptor/raptor"
)

// Search finds the best trip at a stop position for one pattern. It is
// re-created per pattern per round by the strategy; prevIndex carries
// across calls within the same pattern scan, but only as an upper
// bound: trips are sorted ascending by departure and never overtake
// one another along a pattern (FIFO), so once a trip has been boarded
// at an earlier position, the only trip that can improve on it at a
// later position is a strictly earlier-departing one — a lower scan
// index, never a higher one. -1 means no trip has been found yet, so
// the full range is searched.
type Search struct {
	schedules []raptor.TripSchedule
	skip      func(raptor.TripSchedule) bool
	forward   bool
	threshold int
	prevIndex int
}

// New builds a Search over schedules, which must already be sorted
// ascending by departure at position 0 (the provider's contract,
// ). threshold is the minimum trip count before binary
// search is used in place of a plain linear scan from the start.
func New(schedules []raptor.TripSchedule, skip func(raptor.TripSchedule) bool, forward bool, threshold int) *Search {
	return &Search{schedules: schedules, skip: skip, forward: forward, threshold: threshold, prevIndex: -1}
}

// Reset clears the restart-from-index state, e.g. when moving to a new
// stop position scan that must not be bounded by a trip an earlier
// scan found.
func (s *Search) Reset() {
	s.prevIndex = -1
}

// index maps a direction-relative scan index to the underlying slice
// index: identity forward, mirrored in reverse (so index 0 is always
// "the best trip to start scanning from").
func (s *Search) index(i int) int {
	if s.forward {
		return i
	}
	return len(s.schedules) - 1 - i
}

// timeAt returns the time relevant to boarding-search qualification at
// scan index i and stop position pos: departure forward, arrival
// reverse.
func (s *Search) timeAt(i, pos int) int {
	sch := s.schedules[s.index(i)]
	if s.forward {
		return sch.Departure(pos)
	}
	return sch.Arrival(pos)
}

// qualifies reports whether t is usable relative to limitTime: t is at
// or after limitTime forward (board no earlier than limitTime), t is
// at or before limitTime reverse (alight no later than limitTime).
func (s *Search) qualifies(t, limitTime int) bool {
	if s.forward {
		return t >= limitTime
	}
	return t <= limitTime
}

// Find returns the first qualifying, non-skipped trip schedule at stop
// position pos relative to limitTime (earliest-board-time forward,
// latest-alight-time reverse). ok is false if no trip qualifies — a
// normal result, not an error.
func (s *Search) Find(pos, limitTime int) (trip raptor.TripSchedule, underlyingIndex int, ok bool) {
	n := len(s.schedules)
	if n == 0 {
		return nil, -1, false
	}

	end := n
	if s.prevIndex >= 0 && s.prevIndex+1 < end {
		end = s.prevIndex + 1
	}

	start := 0
	if end >= s.threshold {
		start = sort.Search(end, func(i int) bool {
			return s.qualifies(s.timeAt(i, pos), limitTime)
		})
	}

	for i := start; i < end; i++ {
		t := s.timeAt(i, pos)
		if !s.qualifies(t, limitTime) {
			continue
		}
		sch := s.schedules[s.index(i)]
		if s.skip != nil && s.skip(sch) {
			continue
		}
		s.prevIndex = i
		return sch, s.index(i), true
	}
	return nil, -1, false
}
