package scheduler

import (
	"testing"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeStartTimes_FixedUntouched(t *testing.T) {
	s := testutil.NewSchedule(420,
		testutil.Flexible("A", 60),
		testutil.Fixed("B", "14:00", 30),
		testutil.Flexible("C", 60),
	)
	s.Ref(0).Actual = 60
	s.Ref(1).Actual = 30

	RecomputeStartTimes(s)

	assert.Equal(t, []string{"09:00", "14:00", "14:30"}, starts(s))
}

func TestRecomputeStartTimes_UsesConfiguredDefaultStart(t *testing.T) {
	s := testutil.NewSchedule(420, testutil.Flexible("A", 60), testutil.Flexible("B", 60))
	s.DefaultStart = 7*60 + 30
	s.Ref(0).Actual = 45

	RecomputeStartTimes(s)

	assert.Equal(t, []string{"07:30", "08:15"}, starts(s))
}

func TestRecomputeStartTimes_WrapsAcrossMidnight(t *testing.T) {
	s := testutil.NewSchedule(420,
		testutil.Fixed("Late", "23:30", 60),
		testutil.Flexible("After", 30),
	)
	s.Ref(0).Actual = 60

	RecomputeStartTimes(s)

	assert.Equal(t, []string{"23:30", "00:30"}, starts(s))
}

func TestRecompute_FlexibleBeforeAnchorSettles(t *testing.T) {
	s := testutil.NewSchedule(420,
		testutil.Flexible("A", 60, testutil.WithRigid()),
		testutil.Flexible("B", 30),
		testutil.Fixed("C", "12:00", 30),
	)

	alloc := Recompute(s)
	assert.Empty(t, alloc.Conflicts)

	b, _ := s.At(1)
	c, _ := s.At(2)
	assert.True(t, b.Frozen())
	assert.Equal(t, c.Start-b.Start, b.Actual)
	assert.Equal(t, c.Start, b.End())
	assert.Equal(t, "10:00", domain.FormatClock(b.Start))
	assert.Equal(t, 120, b.Actual)
}

func TestRecompute_FlexibleOverrunningAnchorEndsInConflict(t *testing.T) {
	s := testutil.NewSchedule(420,
		testutil.Flexible("A", 60),
		testutil.Flexible("B", 30),
		testutil.Fixed("C", "12:00", 30),
	)

	alloc := Recompute(s)

	require.Len(t, alloc.Conflicts, 1)
	assert.Equal(t, "B", alloc.Conflicts[0].Name)
	b, _ := s.At(1)
	assert.Equal(t, 0, b.Actual)
}
