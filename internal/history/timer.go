package history

import (
	"fmt"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// TaskState is one anchor rewritten by a timer start.
type TaskState struct {
	Index    int
	OldStart int
	OldFixed bool
	NewStart int
	NewFixed bool
}

// TimerStartCommand anchors an activity at the current minute and pushes
// later anchors forward until they no longer overlap. The first flexible
// activity ends the cascade; the recompute places it and everything after.
type TimerStartCommand struct {
	base
	states []TaskState
}

func NewTimerStart(s *domain.Schedule, index int, clock domain.Clock) (*TimerStartCommand, error) {
	target, err := s.At(index)
	if err != nil {
		return nil, err
	}
	now := domain.MinuteOfDay(clock.Now())
	states := cascade(s, index, now)

	desc := fmt.Sprintf("Started timer for '%s' at %s", target.Name, domain.FormatClock(now))
	if n := len(states) - 1; n > 0 {
		desc += fmt.Sprintf(" (updated %d subsequent tasks)", n)
	}
	return &TimerStartCommand{
		base:   base{kind: KindTimerStart, description: desc},
		states: states,
	}, nil
}

func cascade(s *domain.Schedule, index, now int) []TaskState {
	target := s.Ref(index)
	states := []TaskState{{
		Index:    index,
		OldStart: target.Start,
		OldFixed: target.Fixed,
		NewStart: now,
		NewFixed: true,
	}}

	cursor := domain.WrapMinutes(now + target.Length)
	for j := index + 1; j < s.Len(); j++ {
		a := s.Ref(j)
		if !a.Fixed {
			break
		}
		if a.Start >= cursor {
			cursor = domain.WrapMinutes(a.Start + a.Length)
			continue
		}
		states = append(states, TaskState{
			Index:    j,
			OldStart: a.Start,
			OldFixed: true,
			NewStart: cursor,
			NewFixed: true,
		})
		cursor = domain.WrapMinutes(cursor + a.Length)
	}
	return states
}

// States returns the anchors this command rewrites, target first.
func (c *TimerStartCommand) States() []TaskState {
	out := make([]TaskState, len(c.states))
	copy(out, c.states)
	return out
}

func (c *TimerStartCommand) Apply(s *domain.Schedule) error {
	for _, st := range c.states {
		if _, err := activityAt(s, st.Index); err != nil {
			return err
		}
	}
	for _, st := range c.states {
		a := s.Ref(st.Index)
		a.Start, a.Fixed = st.NewStart, st.NewFixed
	}
	return nil
}

func (c *TimerStartCommand) Revert(s *domain.Schedule) error {
	for _, st := range c.states {
		if _, err := activityAt(s, st.Index); err != nil {
			return err
		}
	}
	for _, st := range c.states {
		a := s.Ref(st.Index)
		a.Start, a.Fixed = st.OldStart, st.OldFixed
	}
	return nil
}

// taskStateFootprint approximates one TaskState record.
const taskStateFootprint = 40

func (c *TimerStartCommand) Footprint() int {
	return c.footprint() + len(c.states)*taskStateFootprint
}
