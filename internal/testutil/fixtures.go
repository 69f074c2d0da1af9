package testutil

import (
	"github.com/alexanderramin/dayplan/internal/domain"
)

// Activity options
type ActivityOption func(*domain.Activity)

// WithRigid marks the activity rigid.
func WithRigid() ActivityOption {
	return func(a *domain.Activity) {
		a.Rigid = true
	}
}

// FixedAt anchors the activity at "HH:MM". Panics on a malformed clock value.
func FixedAt(clock string) ActivityOption {
	start, err := domain.ParseClock(clock)
	if err != nil {
		panic(err)
	}
	return func(a *domain.Activity) {
		a.Anchor(start)
	}
}

// Flexible returns an unanchored activity.
func Flexible(name string, length int, opts ...ActivityOption) domain.Activity {
	a := domain.NewFlexible(name, length, false)
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// Fixed returns an activity anchored at "HH:MM".
func Fixed(name, clock string, length int, opts ...ActivityOption) domain.Activity {
	return Flexible(name, length, append([]ActivityOption{FixedAt(clock)}, opts...)...)
}

// NewSchedule builds a schedule with the given day length and activities,
// without recomputing.
func NewSchedule(dayLength int, acts ...domain.Activity) *domain.Schedule {
	s := domain.NewSchedule(dayLength)
	for _, a := range acts {
		s.Append(a)
	}
	return s
}

// Names returns the activity names in order.
func Names(s *domain.Schedule) []string {
	out := make([]string, 0, s.Len())
	for _, a := range s.Activities() {
		out = append(out, a.Name)
	}
	return out
}

// Clock returns a fixed clock at "HH:MM".
func Clock(hhmm string) domain.FixedClock {
	m, err := domain.ParseClock(hhmm)
	if err != nil {
		panic(err)
	}
	return domain.ClockAt(m)
}
