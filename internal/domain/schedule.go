package domain

import (
	"strconv"
	"strings"
)

// Field names an editable descriptor field for UpdateField.
type Field string

const (
	FieldName   Field = "name"
	FieldLength Field = "length"
	FieldStart  Field = "start"
	FieldFixed  Field = "fixed"
	FieldRigid  Field = "rigid"
)

// Schedule is an ordered, densely indexed sequence of activities plus the
// day budget. It exclusively owns its activities: pointers returned by Ref
// are invalidated by any structural mutation.
//
// Mutation primitives never recompute; callers run the scheduler afterwards.
type Schedule struct {
	DayLength    int // minutes
	DefaultStart int // minute of day for a flexible first activity

	activities []Activity
}

// NewSchedule returns an empty schedule with the given day budget.
func NewSchedule(dayLength int) *Schedule {
	return &Schedule{DayLength: dayLength, DefaultStart: DefaultStartMinute}
}

// Len returns the number of activities.
func (s *Schedule) Len() int { return len(s.activities) }

// At returns a copy of the activity at i.
func (s *Schedule) At(i int) (Activity, error) {
	if err := s.checkIndex(i); err != nil {
		return Activity{}, err
	}
	return s.activities[i], nil
}

// Ref returns a pointer to the activity at i, or nil when out of range.
func (s *Schedule) Ref(i int) *Activity {
	if i < 0 || i >= len(s.activities) {
		return nil
	}
	return &s.activities[i]
}

// Activities returns a copy of the sequence.
func (s *Schedule) Activities() []Activity {
	out := make([]Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// Clone returns a deep copy.
func (s *Schedule) Clone() *Schedule {
	c := *s
	c.activities = s.Activities()
	return &c
}

// Append adds a at the end and returns its index.
func (s *Schedule) Append(a Activity) int {
	s.activities = append(s.activities, a)
	return len(s.activities) - 1
}

// InsertAt inserts a at position i, where 0 <= i <= Len.
func (s *Schedule) InsertAt(i int, a Activity) error {
	if i < 0 || i > len(s.activities) {
		return IndexError(i, len(s.activities))
	}
	s.activities = append(s.activities, Activity{})
	copy(s.activities[i+1:], s.activities[i:])
	s.activities[i] = a
	return nil
}

// DeleteAt removes and returns the activity at i.
func (s *Schedule) DeleteAt(i int) (Activity, error) {
	if err := s.checkIndex(i); err != nil {
		return Activity{}, err
	}
	removed := s.activities[i]
	s.activities = append(s.activities[:i], s.activities[i+1:]...)
	return removed, nil
}

// Move relocates the activity at from so that it ends up at index to.
// Moving between neighbours swaps them. Equal indices are a no-op.
func (s *Schedule) Move(from, to int) error {
	if err := s.checkIndex(from); err != nil {
		return err
	}
	if err := s.checkIndex(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}
	moving := s.activities[from]
	if from < to {
		copy(s.activities[from:to], s.activities[from+1:to+1])
	} else {
		copy(s.activities[to+1:from+1], s.activities[to:from])
	}
	s.activities[to] = moving
	return nil
}

// SetName renames the activity at i.
func (s *Schedule) SetName(i int, name string) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Err: ErrEmptyName}
	}
	s.activities[i].Name = name
	return nil
}

// SetLength changes the requested length of the activity at i.
func (s *Schedule) SetLength(i int, length int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if length <= 0 {
		return &ValidationError{Field: "length", Value: strconv.Itoa(length), Err: ErrNonPositiveLength}
	}
	s.activities[i].Length = length
	return nil
}

// SetDayLength changes the day budget.
func (s *Schedule) SetDayLength(minutes int) error {
	if minutes <= 0 {
		return &ValidationError{Field: "day length", Value: strconv.Itoa(minutes), Err: ErrNonPositiveDayLength}
	}
	s.DayLength = minutes
	return nil
}

// AnchorNow anchors the activity at i to the current minute of clock.
func (s *Schedule) AnchorNow(i int, clock Clock) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.activities[i].Anchor(MinuteOfDay(clock.Now()))
	return nil
}

// UpdateField parses value and sets one descriptor field of the activity at i.
// An empty start value releases the anchor; any other start value anchors it.
func (s *Schedule) UpdateField(i int, field Field, value string) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	switch field {
	case FieldName:
		return s.SetName(i, value)
	case FieldLength:
		n, err := strconv.Atoi(value)
		if err != nil {
			return &ValidationError{Field: "length", Value: value, Err: ErrNonPositiveLength}
		}
		return s.SetLength(i, n)
	case FieldStart:
		if value == "" {
			s.activities[i].Unanchor()
			return nil
		}
		start, err := ParseClock(value)
		if err != nil {
			return err
		}
		s.activities[i].Anchor(start)
		return nil
	case FieldFixed:
		on, err := ParseFlag(value)
		if err != nil {
			return &ValidationError{Field: "fixed", Value: value, Err: err}
		}
		s.activities[i].Fixed = on
		return nil
	case FieldRigid:
		on, err := ParseFlag(value)
		if err != nil {
			return &ValidationError{Field: "rigid", Value: value, Err: err}
		}
		s.activities[i].Rigid = on
		return nil
	default:
		return &ValidationError{Field: string(field), Err: ErrUnknownField}
	}
}

// ParseFlag accepts the yes/no spellings used by the editor.
func ParseFlag(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "1", "true", "on":
		return true, nil
	case "no", "n", "0", "false", "off":
		return false, nil
	default:
		return false, ErrInvalidFlag
	}
}

func (s *Schedule) checkIndex(i int) error {
	if i < 0 || i >= len(s.activities) {
		return IndexError(i, len(s.activities))
	}
	return nil
}
