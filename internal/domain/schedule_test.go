package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(s *Schedule) []string {
	out := make([]string, 0, s.Len())
	for _, a := range s.Activities() {
		out = append(out, a.Name)
	}
	return out
}

func abc() *Schedule {
	s := NewSchedule(DefaultDayLength)
	s.Append(NewFlexible("A", 30, false))
	s.Append(NewFixed("B", 600, 60, false))
	s.Append(NewFlexible("C", 45, true))
	return s
}

func TestSchedule_InsertAt(t *testing.T) {
	s := abc()
	require.NoError(t, s.InsertAt(0, NewFlexible("first", 10, false)))
	require.NoError(t, s.InsertAt(s.Len(), NewFlexible("last", 10, false)))
	assert.Equal(t, []string{"first", "A", "B", "C", "last"}, names(s))

	err := s.InsertAt(9, NewFlexible("x", 10, false))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, 5, s.Len())
}

func TestSchedule_DeleteAt(t *testing.T) {
	s := abc()
	removed, err := s.DeleteAt(1)
	require.NoError(t, err)
	assert.Equal(t, "B", removed.Name)
	assert.Equal(t, []string{"A", "C"}, names(s))

	_, err = s.DeleteAt(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSchedule_Move(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"swap neighbours", 0, 1, []string{"B", "A", "C"}},
		{"to end", 0, 2, []string{"B", "C", "A"}},
		{"to front", 2, 0, []string{"C", "A", "B"}},
		{"no-op", 1, 1, []string{"A", "B", "C"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := abc()
			require.NoError(t, s.Move(tt.from, tt.to))
			assert.Equal(t, tt.want, names(s))

			require.NoError(t, s.Move(tt.to, tt.from))
			assert.Equal(t, []string{"A", "B", "C"}, names(s), "moving back restores the order")
		})
	}

	assert.ErrorIs(t, abc().Move(0, 3), ErrIndexOutOfRange)
}

func TestSchedule_RefInvalidIndex(t *testing.T) {
	s := abc()
	assert.Nil(t, s.Ref(3))
	assert.Nil(t, s.Ref(-1))
	assert.Equal(t, "B", s.Ref(1).Name)
}

func TestSchedule_CloneIsIndependent(t *testing.T) {
	s := abc()
	c := s.Clone()
	c.Ref(0).Name = "changed"
	c.Append(NewFlexible("D", 5, false))

	assert.Equal(t, "A", s.Ref(0).Name)
	assert.Equal(t, 3, s.Len())
}

func TestSchedule_Setters(t *testing.T) {
	s := abc()

	assert.ErrorIs(t, s.SetName(0, "  "), ErrEmptyName)
	require.NoError(t, s.SetName(0, " Read "))
	assert.Equal(t, "Read", s.Ref(0).Name)

	assert.ErrorIs(t, s.SetLength(0, 0), ErrNonPositiveLength)
	require.NoError(t, s.SetLength(0, 90))
	assert.Equal(t, 90, s.Ref(0).Length)

	assert.ErrorIs(t, s.SetDayLength(0), ErrNonPositiveDayLength)
	require.NoError(t, s.SetDayLength(480))
	assert.Equal(t, 480, s.DayLength)
}

func TestSchedule_AnchorNow(t *testing.T) {
	s := abc()
	require.NoError(t, s.AnchorNow(0, ClockAt(10*60+20)))
	a := s.Ref(0)
	assert.True(t, a.Fixed)
	assert.Equal(t, 620, a.Start)
}

func TestSchedule_UpdateField(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		value   string
		wantErr error
		check   func(t *testing.T, a *Activity)
	}{
		{"name", FieldName, "Write", nil, func(t *testing.T, a *Activity) { assert.Equal(t, "Write", a.Name) }},
		{"length", FieldLength, "15", nil, func(t *testing.T, a *Activity) { assert.Equal(t, 15, a.Length) }},
		{"bad length", FieldLength, "soon", ErrNonPositiveLength, nil},
		{"anchor", FieldStart, "7:45", nil, func(t *testing.T, a *Activity) {
			assert.True(t, a.Fixed)
			assert.Equal(t, 465, a.Start)
		}},
		{"bad start", FieldStart, "7.45", ErrInvalidClock, nil},
		{"rigid yes", FieldRigid, "Yes", nil, func(t *testing.T, a *Activity) { assert.True(t, a.Rigid) }},
		{"fixed n", FieldFixed, "n", nil, func(t *testing.T, a *Activity) { assert.False(t, a.Fixed) }},
		{"bad flag", FieldRigid, "maybe", ErrInvalidFlag, nil},
		{"unknown", Field("colour"), "red", ErrUnknownField, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := abc()
			before := *s.Ref(0)
			err := s.UpdateField(0, tt.field, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, *s.Ref(0), "rejected edits leave the activity unchanged")
				return
			}
			require.NoError(t, err)
			tt.check(t, s.Ref(0))
		})
	}
}

func TestSchedule_UpdateFieldEmptyStartReleasesAnchor(t *testing.T) {
	s := abc()
	require.NoError(t, s.UpdateField(1, FieldStart, ""))
	assert.False(t, s.Ref(1).Fixed)
}

func TestActivity_Validate(t *testing.T) {
	assert.NoError(t, NewFixed("A", 600, 30, false).Validate())
	assert.ErrorIs(t, NewFlexible("", 30, false).Validate(), ErrEmptyName)
	assert.ErrorIs(t, NewFlexible("A", -1, false).Validate(), ErrNonPositiveLength)
}

func TestActivity_FreezeClampsNegativeSpan(t *testing.T) {
	a := NewFlexible("A", 30, false)
	a.Freeze(-15)
	assert.True(t, a.Frozen())
	assert.Equal(t, 0, a.Actual)

	a.Thaw()
	assert.False(t, a.Frozen())
	assert.Equal(t, 0, a.FrozenLength())
}
