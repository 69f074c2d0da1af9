package domain

import (
	"strconv"
	"strings"
)

// Activity is one scheduled item. Name, Length, Start, Fixed and Rigid are
// descriptor fields set by the user; Actual and the frozen state are derived
// by the scheduler on every recompute.
type Activity struct {
	Name   string
	Length int // requested minutes
	Start  int // minutes since local midnight; an anchor only when Fixed
	Fixed  bool
	Rigid  bool
	Actual int

	frozen       bool
	frozenLength int
}

// NewFlexible returns an activity without an anchored start.
func NewFlexible(name string, length int, rigid bool) Activity {
	return Activity{
		Name:   name,
		Length: length,
		Start:  DefaultStartMinute,
		Rigid:  rigid,
	}
}

// NewFixed returns an activity anchored at start.
func NewFixed(name string, start, length int, rigid bool) Activity {
	return Activity{
		Name:   name,
		Length: length,
		Start:  WrapMinutes(start),
		Fixed:  true,
		Rigid:  rigid,
	}
}

// Frozen reports whether the last recompute bound this activity's duration
// to the next fixed anchor.
func (a Activity) Frozen() bool { return a.frozen }

// FrozenLength is the duration captured when the activity was frozen.
func (a Activity) FrozenLength() int { return a.frozenLength }

// End is Start + Actual, not wrapped.
func (a Activity) End() int { return a.Start + a.Actual }

// Anchor pins the activity at start.
func (a *Activity) Anchor(start int) {
	a.Start = WrapMinutes(start)
	a.Fixed = true
}

// Unanchor releases the anchor; Start becomes derived again.
func (a *Activity) Unanchor() {
	a.Fixed = false
}

// Freeze binds the duration to span minutes. Negative spans clamp to zero.
func (a *Activity) Freeze(span int) {
	if span < 0 {
		span = 0
	}
	a.frozen = true
	a.frozenLength = span
	a.Actual = span
}

// Thaw clears the frozen state set by a previous recompute.
func (a *Activity) Thaw() {
	a.frozen = false
	a.frozenLength = 0
}

// Validate checks the descriptor fields.
func (a Activity) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	if a.Length <= 0 {
		return &ValidationError{Field: "length", Value: strconv.Itoa(a.Length), Err: ErrNonPositiveLength}
	}
	if a.Start < 0 || a.Start >= MinutesPerDay {
		return &ValidationError{Field: "start", Value: strconv.Itoa(a.Start), Err: ErrInvalidClock}
	}
	return nil
}
