package scheduler

import "github.com/alexanderramin/dayplan/internal/domain"

// maxSettleRounds bounds Recompute. Each round can only re-measure freeze
// spans whose left edge moved, so a handful of rounds is always enough for
// real schedules.
const maxSettleRounds = 8

// RecomputeStartTimes derives Start for every activity that is not fixed.
// The first flexible activity starts at the schedule's default start; each
// later one starts where its predecessor ends, wrapping across midnight.
func RecomputeStartTimes(s *domain.Schedule) {
	for i := 0; i < s.Len(); i++ {
		a := s.Ref(i)
		if a.Fixed {
			continue
		}
		if i == 0 {
			a.Start = domain.WrapMinutes(s.DefaultStart)
			continue
		}
		prev := s.Ref(i - 1)
		a.Start = domain.WrapMinutes(prev.Start + prev.Actual)
	}
}

// Recompute runs RecomputeDurations then RecomputeStartTimes, repeating while
// the start pass moved an activity. A freeze span is measured from the
// activity's current start, so a span taken before its start was derived is
// re-measured. The allocation of the final round is returned; its Settled
// field reports whether that round changed nothing.
//
// Truncated flexible shares can make the rounds alternate between two
// layouts. Either way the freeze spans are measured once more against the
// final starts, so a frozen activity always ends exactly at its anchor.
//
// Derived fields are reset first, so the result depends only on the
// descriptor fields and not on what a previous recompute left behind.
func Recompute(s *domain.Schedule) Allocation {
	reset(s)
	var alloc Allocation
	for round := 0; round < maxSettleRounds; round++ {
		before := snapshot(s)
		alloc = RecomputeDurations(s)
		RecomputeStartTimes(s)
		if !changed(before, s) {
			alloc.Settled = true
			break
		}
	}
	if !alloc.Settled {
		alloc.Conflicts = remeasureFrozen(s)
	}
	return alloc
}

// remeasureFrozen sets every frozen span to the gap up to its anchor. Only
// activities followed by a fixed anchor change, so no start moves.
func remeasureFrozen(s *domain.Schedule) []Conflict {
	var conflicts []Conflict
	for i := 0; i+1 < s.Len(); i++ {
		cur, next := s.Ref(i), s.Ref(i+1)
		if !next.Fixed {
			continue
		}
		span := next.Start - cur.Start
		if span < 0 {
			conflicts = append(conflicts, conflictOf(i, cur, next))
		}
		cur.Freeze(span)
	}
	return conflicts
}

func reset(s *domain.Schedule) {
	for i := 0; i < s.Len(); i++ {
		a := s.Ref(i)
		a.Thaw()
		a.Actual = 0
	}
	RecomputeStartTimes(s)
}

type derived struct {
	start  int
	actual int
}

func snapshot(s *domain.Schedule) []derived {
	out := make([]derived, s.Len())
	for i := range out {
		a := s.Ref(i)
		out[i] = derived{start: a.Start, actual: a.Actual}
	}
	return out
}

func changed(before []derived, s *domain.Schedule) bool {
	for i, d := range before {
		a := s.Ref(i)
		if a.Start != d.start || a.Actual != d.actual {
			return true
		}
	}
	return false
}
