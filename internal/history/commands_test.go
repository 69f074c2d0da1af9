package history

import (
	"testing"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_Descriptions(t *testing.T) {
	s := threeTasks()

	tests := []struct {
		name  string
		build func() (Command, error)
		want  string
		kind  Kind
	}{
		{"add", func() (Command, error) { return NewAdd(testutil.Flexible("Lunch", 45)) },
			"Add task 'Lunch'", KindAdd},
		{"insert", func() (Command, error) { return NewInsert(s, 1, testutil.Flexible("Break", 15)) },
			"Insert task 'Break'", KindInsert},
		{"delete", func() (Command, error) { return NewDelete(s, 0) },
			"Delete task 'A'", KindDelete},
		{"edit name", func() (Command, error) { return NewEditName(s, 0, "Email") },
			"Changed task name from 'A' to 'Email'", KindEditName},
		{"edit length", func() (Command, error) { return NewEditLength(s, 2, 45) },
			"Changed task 'C' length from 90 to 45 minutes", KindEditLength},
		{"anchor", func() (Command, error) { return NewEditStartTime(s, 0, "8:30") },
			"Changed task 'A' start time from flexible to 08:30", KindEditStartTime},
		{"release anchor", func() (Command, error) { return NewEditStartTime(s, 1, "") },
			"Changed task 'B' start time from 11:00 to flexible", KindEditStartTime},
		{"toggle fixed", func() (Command, error) { return NewToggleFixed(s, 1) },
			"Toggled task 'B' fixed status from Yes to No", KindToggleFixed},
		{"toggle rigid", func() (Command, error) { return NewToggleRigid(s, 2) },
			"Toggled task 'C' rigid status from No to Yes", KindToggleRigid},
		{"move up", func() (Command, error) { return NewMoveUp(s, 1) },
			"Moved task 'B' up", KindMoveUp},
		{"move down", func() (Command, error) { return NewMoveDown(s, 1) },
			"Moved task 'B' down", KindMoveDown},
		{"day length", func() (Command, error) { return NewEditDayLength(s, 480) },
			"Changed day length from 420 to 480 minutes", KindEditDayLength},
		{"timer", func() (Command, error) { return NewTimerStart(s, 2, testutil.Clock("14:05")) },
			"Started timer for 'C' at 14:05", KindTimerStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Describe())
			assert.Equal(t, tt.kind, c.Kind())
			assert.Greater(t, c.Footprint(), baseFootprint)
		})
	}
}

func TestCommand_ValidationRejectsWithoutMutation(t *testing.T) {
	s := threeTasks()
	before := s.Activities()

	tests := []struct {
		name   string
		build  func() error
		target error
	}{
		{"add empty name", func() error { _, err := NewAdd(testutil.Flexible("  ", 30)); return err }, domain.ErrEmptyName},
		{"add zero length", func() error { _, err := NewAdd(testutil.Flexible("X", 0)); return err }, domain.ErrNonPositiveLength},
		{"insert past end", func() error { _, err := NewInsert(s, 4, testutil.Flexible("X", 5)); return err }, domain.ErrIndexOutOfRange},
		{"delete out of range", func() error { _, err := NewDelete(s, 3); return err }, domain.ErrIndexOutOfRange},
		{"delete negative", func() error { _, err := NewDelete(s, -1); return err }, domain.ErrIndexOutOfRange},
		{"rename empty", func() error { _, err := NewEditName(s, 0, ""); return err }, domain.ErrEmptyName},
		{"length negative", func() error { _, err := NewEditLength(s, 0, -5); return err }, domain.ErrNonPositiveLength},
		{"start malformed", func() error { _, err := NewEditStartTime(s, 0, "25:00"); return err }, domain.ErrInvalidClock},
		{"start garbage", func() error { _, err := NewEditStartTime(s, 0, "noon"); return err }, domain.ErrInvalidClock},
		{"move first up", func() error { _, err := NewMoveUp(s, 0); return err }, domain.ErrIndexOutOfRange},
		{"move last down", func() error { _, err := NewMoveDown(s, 2); return err }, domain.ErrIndexOutOfRange},
		{"day length zero", func() error { _, err := NewEditDayLength(s, 0); return err }, domain.ErrNonPositiveDayLength},
		{"timer out of range", func() error { _, err := NewTimerStart(s, 9, testutil.Clock("10:00")); return err }, domain.ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			var verr *domain.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
	assert.Equal(t, before, s.Activities())
}

func TestMoveCommand_UnanchorsAndRevertsExactly(t *testing.T) {
	l := newLog(threeTasks())
	before := l.Schedule().Activities()

	up, err := NewMoveUp(l.Schedule(), 1)
	require.NoError(t, err)
	_, err = l.Submit(up)
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "A", "C"}, testutil.Names(l.Schedule()))
	b, _ := l.Schedule().At(0)
	assert.False(t, b.Fixed, "moving releases the anchor")
	assert.Equal(t, "09:00", domain.FormatClock(b.Start))

	_, err = l.Undo()
	require.NoError(t, err)
	assert.Equal(t, before, l.Schedule().Activities())
}

func TestMoveUpThenDownIsIdentityOnOrder(t *testing.T) {
	l := newLog(testutil.NewSchedule(420,
		testutil.Flexible("A", 30),
		testutil.Flexible("B", 30),
		testutil.Flexible("C", 30),
	))
	before := l.Schedule().Activities()

	down, err := NewMoveDown(l.Schedule(), 0)
	require.NoError(t, err)
	_, err = l.Submit(down)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, testutil.Names(l.Schedule()))

	up, err := NewMoveUp(l.Schedule(), 1)
	require.NoError(t, err)
	_, err = l.Submit(up)
	require.NoError(t, err)

	assert.Equal(t, before, l.Schedule().Activities())
}

func TestEditStartTime_RevertRestoresFlexible(t *testing.T) {
	l := newLog(threeTasks())
	before := l.Schedule().Activities()

	c, err := NewEditStartTime(l.Schedule(), 2, "15:00")
	require.NoError(t, err)
	_, err = l.Submit(c)
	require.NoError(t, err)

	got, _ := l.Schedule().At(2)
	assert.True(t, got.Fixed)
	assert.Equal(t, 15*60, got.Start)

	_, err = l.Undo()
	require.NoError(t, err)
	assert.Equal(t, before, l.Schedule().Activities())
}

func TestInsertAndAddRevert(t *testing.T) {
	l := newLog(threeTasks())
	before := l.Schedule().Activities()

	ins, err := NewInsert(l.Schedule(), 0, testutil.Flexible("Coffee", 10))
	require.NoError(t, err)
	_, err = l.Submit(ins)
	require.NoError(t, err)
	add, err := NewAdd(testutil.Fixed("Gym", "18:00", 60, testutil.WithRigid()))
	require.NoError(t, err)
	_, err = l.Submit(add)
	require.NoError(t, err)

	assert.Equal(t, []string{"Coffee", "A", "B", "C", "Gym"}, testutil.Names(l.Schedule()))

	_, err = l.Undo()
	require.NoError(t, err)
	_, err = l.Undo()
	require.NoError(t, err)
	assert.Equal(t, before, l.Schedule().Activities())
}

func TestEditDayLength(t *testing.T) {
	l := newLog(testutil.NewSchedule(420, testutil.Flexible("A", 60)))

	c, err := NewEditDayLength(l.Schedule(), 450)
	require.NoError(t, err)
	_, err = l.Submit(c)
	require.NoError(t, err)

	a, _ := l.Schedule().At(0)
	assert.Equal(t, 450, a.Actual)

	_, err = l.Undo()
	require.NoError(t, err)
	assert.Equal(t, 420, l.Schedule().DayLength)
}

func TestGroup_DescribeAndFootprint(t *testing.T) {
	s := threeTasks()
	a, err := NewToggleRigid(s, 0)
	require.NoError(t, err)
	b, err := NewToggleFixed(s, 1)
	require.NoError(t, err)

	assert.Equal(t, "Edit", NewGroup("Edit").Describe())
	assert.Equal(t, a.Describe(), NewGroup("Edit", a).Describe())
	g := NewGroup("Edit", a, b)
	assert.Equal(t, "Edit (2 operations)", g.Describe())
	assert.Equal(t, baseFootprint+len("Edit")+a.Footprint()+b.Footprint(), g.Footprint())
	assert.Equal(t, KindGroup, g.Kind())
}

func TestGroup_ApplyRollsBackOnFailure(t *testing.T) {
	s := threeTasks()
	rename, err := NewEditName(s, 0, "First")
	require.NoError(t, err)
	del, err := NewDelete(s, 2)
	require.NoError(t, err)
	// Shrink the schedule so the delete no longer has a target.
	_, err = s.DeleteAt(2)
	require.NoError(t, err)
	before := s.Activities()

	err = NewGroup("Broken", rename, del).Apply(s)

	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	assert.Equal(t, before, s.Activities())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "timer_start", KindTimerStart.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestToggleFixed_RevertRestoresAnchor(t *testing.T) {
	l := newLog(threeTasks())
	before := l.Schedule().Activities()

	c, err := NewToggleFixed(l.Schedule(), 1)
	require.NoError(t, err)
	_, err = l.Submit(c)
	require.NoError(t, err)
	b, _ := l.Schedule().At(1)
	require.False(t, b.Fixed)
	require.NotEqual(t, 11*60, b.Start, "released activity follows its predecessor")

	_, err = l.Undo()
	require.NoError(t, err)
	assert.Equal(t, before, l.Schedule().Activities())
}
