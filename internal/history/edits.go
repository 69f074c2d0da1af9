package history

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// AddCommand appends an activity. The insertion index is captured on apply.
type AddCommand struct {
	base
	act   domain.Activity
	index int
}

func NewAdd(act domain.Activity) (*AddCommand, error) {
	act.Name = strings.TrimSpace(act.Name)
	if err := act.Validate(); err != nil {
		return nil, err
	}
	return &AddCommand{
		base:  base{kind: KindAdd, description: fmt.Sprintf("Add task '%s'", act.Name)},
		act:   act,
		index: -1,
	}, nil
}

func (c *AddCommand) Apply(s *domain.Schedule) error {
	c.index = s.Append(c.act)
	return nil
}

func (c *AddCommand) Revert(s *domain.Schedule) error {
	_, err := s.DeleteAt(c.index)
	return err
}

func (c *AddCommand) Footprint() int { return c.footprint(c.act.Name) }

// InsertCommand places an activity at a given position.
type InsertCommand struct {
	base
	act   domain.Activity
	index int
}

func NewInsert(s *domain.Schedule, index int, act domain.Activity) (*InsertCommand, error) {
	if index < 0 || index > s.Len() {
		return nil, domain.IndexError(index, s.Len()+1)
	}
	act.Name = strings.TrimSpace(act.Name)
	if err := act.Validate(); err != nil {
		return nil, err
	}
	return &InsertCommand{
		base:  base{kind: KindInsert, description: fmt.Sprintf("Insert task '%s'", act.Name)},
		act:   act,
		index: index,
	}, nil
}

func (c *InsertCommand) Apply(s *domain.Schedule) error { return s.InsertAt(c.index, c.act) }

func (c *InsertCommand) Revert(s *domain.Schedule) error {
	_, err := s.DeleteAt(c.index)
	return err
}

func (c *InsertCommand) Footprint() int { return c.footprint(c.act.Name) }

// DeleteCommand removes an activity and keeps every field for reinsertion.
type DeleteCommand struct {
	base
	index   int
	removed domain.Activity
}

func NewDelete(s *domain.Schedule, index int) (*DeleteCommand, error) {
	a, err := s.At(index)
	if err != nil {
		return nil, err
	}
	return &DeleteCommand{
		base:  base{kind: KindDelete, description: fmt.Sprintf("Delete task '%s'", a.Name)},
		index: index,
	}, nil
}

func (c *DeleteCommand) Apply(s *domain.Schedule) error {
	removed, err := s.DeleteAt(c.index)
	if err != nil {
		return err
	}
	c.removed = removed
	return nil
}

func (c *DeleteCommand) Revert(s *domain.Schedule) error { return s.InsertAt(c.index, c.removed) }

func (c *DeleteCommand) Footprint() int { return c.footprint() }

// EditNameCommand renames an activity.
type EditNameCommand struct {
	base
	index   int
	newName string
	oldName string
}

func NewEditName(s *domain.Schedule, index int, name string) (*EditNameCommand, error) {
	a, err := s.At(index)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Err: domain.ErrEmptyName}
	}
	return &EditNameCommand{
		base:    base{kind: KindEditName, description: fmt.Sprintf("Changed task name from '%s' to '%s'", a.Name, name)},
		index:   index,
		newName: name,
	}, nil
}

func (c *EditNameCommand) Apply(s *domain.Schedule) error {
	a, err := activityAt(s, c.index)
	if err != nil {
		return err
	}
	c.oldName = a.Name
	a.Name = c.newName
	return nil
}

func (c *EditNameCommand) Revert(s *domain.Schedule) error {
	a, err := activityAt(s, c.index)
	if err != nil {
		return err
	}
	a.Name = c.oldName
	return nil
}

func (c *EditNameCommand) Footprint() int { return c.footprint(c.newName) }

// EditLengthCommand changes the requested length.
type EditLengthCommand struct {
	base
	index     int
	newLength int
	oldLength int
}

func NewEditLength(s *domain.Schedule, index, length int) (*EditLengthCommand, error) {
	a, err := s.At(index)
	if err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, &domain.ValidationError{Field: "length", Value: strconv.Itoa(length), Err: domain.ErrNonPositiveLength}
	}
	return &EditLengthCommand{
		base: base{
			kind:        KindEditLength,
			description: fmt.Sprintf("Changed task '%s' length from %d to %d minutes", a.Name, a.Length, length),
		},
		index:     index,
		newLength: length,
	}, nil
}

func (c *EditLengthCommand) Apply(s *domain.Schedule) error {
	a, err := activityAt(s, c.index)
	if err != nil {
		return err
	}
	c.oldLength = a.Length
	a.Length = c.newLength
	return nil
}

func (c *EditLengthCommand) Revert(s *domain.Schedule) error {
	a, err := activityAt(s, c.index)
	if err != nil {
		return err
	}
	a.Length = c.oldLength
	return nil
}

func (c *EditLengthCommand) Footprint() int { return c.footprint() }

// EditStartTimeCommand anchors an activity at a clock time, or releases the
// anchor when the new value is empty.
type EditStartTimeCommand struct {
	base
	index    int
	newStart int
	newFixed bool
	oldStart int
	oldFixed bool
}

func NewEditStartTime(s *domain.Schedule, index int, value string) (*EditStartTimeCommand, error) {
	a, err := s.At(index)
	if err != nil {
		return nil, err
	}
	c := &EditStartTimeCommand{index: index, newStart: a.Start}
	newLabel := "flexible"
	if value = strings.TrimSpace(value); value != "" {
		start, err := domain.ParseClock(value)
		if err != nil {
			return nil, err
		}
		c.newStart = start
		c.newFixed = true
		newLabel = domain.FormatClock(start)
	}
	c.base = base{
		kind:        KindEditStartTime,
		description: fmt.Sprintf("Changed task '%s' start time from %s to %s", a.Name, startLabel(a), newLabel),
	}
	return c, nil
}

func (c *EditStartTimeCommand) Apply(s *domain.Schedule) error {
	a, err := activityAt(s, c.index)
	if err != nil {
		return err
	}
	c.oldStart, c.oldFixed = a.Start, a.Fixed
	if c.newFixed {
		a.Anchor(c.newStart)
	} else {
		a.Unanchor()
	}
	return nil
}

func (c *EditStartTimeCommand) Revert(s *domain.Schedule) error {
	a, err := activityAt(s, c.index)
	if err != nil {
		return err
	}
	a.Start, a.Fixed = c.oldStart, c.oldFixed
	return nil
}

func (c *EditStartTimeCommand) Footprint() int { return c.footprint() }

// ToggleFixedCommand flips the anchor flag. Anchoring keeps the current start.
type ToggleFixedCommand struct {
	base
	index    int
	old      bool
	oldStart int
}

func NewToggleFixed(s *domain.Schedule, index int) (*ToggleFixedCommand, error) {
	a, err := s.At(index)
	if err != nil {
		return nil, err
	}
	return &ToggleFixedCommand{
		base: base{
			kind:        KindToggleFixed,
			description: fmt.Sprintf("Toggled task '%s' fixed status from %s to %s", a.Name, yesNo(a.Fixed), yesNo(!a.Fixed)),
		},
		index: index,
	}, nil
}

func (c *ToggleFixedCommand) Apply(s *domain.Schedule) error {
	a, err := activityAt(s, c.index)
	if err != nil {
		return err
	}
	c.old, c.oldStart = a.Fixed, a.Start
	a.Fixed = !c.old
	return nil
}

func (c *ToggleFixedCommand) Revert(s *domain.Schedule) error {
	a, err := activityAt(s, c.index)
	if err != nil {
		return err
	}
	a.Fixed, a.Start = c.old, c.oldStart
	return nil
}

func (c *ToggleFixedCommand) Footprint() int { return c.footprint() }

// ToggleRigidCommand flips the rigid flag.
type ToggleRigidCommand struct {
	base
	index int
	old   bool
}

func NewToggleRigid(s *domain.Schedule, index int) (*ToggleRigidCommand, error) {
	a, err := s.At(index)
	if err != nil {
		return nil, err
	}
	return &ToggleRigidCommand{
		base: base{
			kind:        KindToggleRigid,
			description: fmt.Sprintf("Toggled task '%s' rigid status from %s to %s", a.Name, yesNo(a.Rigid), yesNo(!a.Rigid)),
		},
		index: index,
	}, nil
}

func (c *ToggleRigidCommand) Apply(s *domain.Schedule) error {
	a, err := activityAt(s, c.index)
	if err != nil {
		return err
	}
	c.old = a.Rigid
	a.Rigid = !c.old
	return nil
}

func (c *ToggleRigidCommand) Revert(s *domain.Schedule) error {
	a, err := activityAt(s, c.index)
	if err != nil {
		return err
	}
	a.Rigid = c.old
	return nil
}

func (c *ToggleRigidCommand) Footprint() int { return c.footprint() }

// MoveCommand swaps an activity with its neighbour. Reordering releases the
// moving activity's anchor; revert restores both the anchor flag and start.
type MoveCommand struct {
	base
	from     int
	to       int
	wasFixed bool
	oldStart int
}

func NewMoveUp(s *domain.Schedule, index int) (*MoveCommand, error) {
	return newMove(s, index, index-1, KindMoveUp, "up")
}

func NewMoveDown(s *domain.Schedule, index int) (*MoveCommand, error) {
	return newMove(s, index, index+1, KindMoveDown, "down")
}

func newMove(s *domain.Schedule, from, to int, kind Kind, dir string) (*MoveCommand, error) {
	a, err := s.At(from)
	if err != nil {
		return nil, err
	}
	if to < 0 || to >= s.Len() {
		return nil, domain.IndexError(to, s.Len())
	}
	return &MoveCommand{
		base: base{kind: kind, description: fmt.Sprintf("Moved task '%s' %s", a.Name, dir)},
		from: from,
		to:   to,
	}, nil
}

func (c *MoveCommand) Apply(s *domain.Schedule) error {
	a, err := activityAt(s, c.from)
	if err != nil {
		return err
	}
	c.wasFixed, c.oldStart = a.Fixed, a.Start
	if err := s.Move(c.from, c.to); err != nil {
		return err
	}
	s.Ref(c.to).Unanchor()
	return nil
}

func (c *MoveCommand) Revert(s *domain.Schedule) error {
	if err := s.Move(c.to, c.from); err != nil {
		return err
	}
	a := s.Ref(c.from)
	a.Start, a.Fixed = c.oldStart, c.wasFixed
	return nil
}

func (c *MoveCommand) Footprint() int { return c.footprint() }

// EditDayLengthCommand changes the day budget.
type EditDayLengthCommand struct {
	base
	newLength int
	oldLength int
}

func NewEditDayLength(s *domain.Schedule, minutes int) (*EditDayLengthCommand, error) {
	if minutes <= 0 {
		return nil, &domain.ValidationError{Field: "day length", Value: strconv.Itoa(minutes), Err: domain.ErrNonPositiveDayLength}
	}
	return &EditDayLengthCommand{
		base: base{
			kind:        KindEditDayLength,
			description: fmt.Sprintf("Changed day length from %d to %d minutes", s.DayLength, minutes),
		},
		newLength: minutes,
	}, nil
}

func (c *EditDayLengthCommand) Apply(s *domain.Schedule) error {
	c.oldLength = s.DayLength
	return s.SetDayLength(c.newLength)
}

func (c *EditDayLengthCommand) Revert(s *domain.Schedule) error {
	s.DayLength = c.oldLength
	return nil
}

func (c *EditDayLengthCommand) Footprint() int { return c.footprint() }
