package scheduler

import (
	"fmt"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// Conflict records a fixed anchor that starts before its predecessor.
// The predecessor's actual duration was clamped to zero.
type Conflict struct {
	Index     int
	Name      string
	Start     int
	NextName  string
	NextStart int
}

func conflictOf(i int, cur, next *domain.Activity) Conflict {
	return Conflict{
		Index:     i,
		Name:      cur.Name,
		Start:     cur.Start,
		NextName:  next.Name,
		NextStart: next.Start,
	}
}

func (c Conflict) String() string {
	return fmt.Sprintf("Time conflict: '%s' (starts %s) conflicts with '%s' (starts %s). Actual length set to 0.",
		c.Name, domain.FormatClock(c.Start), c.NextName, domain.FormatClock(c.NextStart))
}

// Allocation summarizes one duration pass.
type Allocation struct {
	RigidTotal int
	FlexTotal  int
	Remaining  int
	Ratio      float64
	Conflicts  []Conflict
	// Settled is set by Recompute when its last round changed nothing.
	Settled bool
}

// RecomputeDurations assigns Actual to every activity.
//
// Activities followed by a fixed anchor are frozen to the gap up to that
// anchor. Rigid activities keep their length. Everything else shares what is
// left of the day budget in proportion to its length, truncated toward zero
// and never negative. Frozen state from a previous pass is cleared first.
func RecomputeDurations(s *domain.Schedule) Allocation {
	var alloc Allocation
	n := s.Len()
	if n == 0 {
		alloc.Remaining = s.DayLength
		alloc.Ratio = 1.0
		return alloc
	}

	for i := 0; i < n; i++ {
		s.Ref(i).Thaw()
	}

	// Freeze pass
	for i := 0; i+1 < n; i++ {
		cur, next := s.Ref(i), s.Ref(i+1)
		if !next.Fixed {
			continue
		}
		span := next.Start - cur.Start
		if span < 0 {
			alloc.Conflicts = append(alloc.Conflicts, conflictOf(i, cur, next))
			span = 0
		}
		cur.Freeze(span)
	}

	// Budget partition
	for i := 0; i < n; i++ {
		a := s.Ref(i)
		switch {
		case a.Frozen():
			alloc.RigidTotal += a.FrozenLength()
		case a.Rigid:
			alloc.RigidTotal += a.Length
		default:
			alloc.FlexTotal += a.Length
		}
	}

	alloc.Remaining = s.DayLength - alloc.RigidTotal
	alloc.Ratio = 1.0
	if alloc.FlexTotal > 0 {
		alloc.Ratio = float64(alloc.Remaining) / float64(alloc.FlexTotal)
	}

	// Assignment pass
	for i := 0; i < n; i++ {
		a := s.Ref(i)
		switch {
		case a.Frozen():
			a.Actual = a.FrozenLength()
		case a.Rigid:
			a.Actual = a.Length
		default:
			a.Actual = flexShare(a.Length, alloc.Remaining, alloc.FlexTotal)
		}
	}
	return alloc
}

// flexShare is length*remaining/flexTotal in integer arithmetic, clamped at 0.
func flexShare(length, remaining, flexTotal int) int {
	if flexTotal <= 0 {
		return length
	}
	share := length * remaining / flexTotal
	if share < 0 {
		return 0
	}
	return share
}
