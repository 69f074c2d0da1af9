package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/config"
	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/history"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func (r *recordingObserver) names() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Name
	}
	return out
}

type plannerFixture struct {
	svc   PlannerService
	repo  *repository.FileDocumentRepo
	state config.SessionState
	obs   *recordingObserver
	dir   string
}

func setupPlanner(t *testing.T, clock domain.Clock) plannerFixture {
	t.Helper()
	dir := t.TempDir()
	repo := repository.NewFileDocumentRepo(dir, ".json", clock, nil)
	state := config.SessionState{Path: filepath.Join(dir, ".task_session")}
	obs := &recordingObserver{}
	svc := NewPlannerService(repo, state, clock, PlannerSettings{
		Extension:    ".json",
		DayLength:    420,
		DefaultStart: 9 * 60,
	}, obs)
	return plannerFixture{svc: svc, repo: repo, state: state, obs: obs, dir: dir}
}

// saveMorning stores A fixed 10:00 rigid 60, then B flexible 60.
func saveMorning(t *testing.T, f plannerFixture, name string) {
	t.Helper()
	sched := testutil.NewSchedule(420,
		testutil.Fixed("A", "10:00", 60, testutil.WithRigid()),
		testutil.Flexible("B", 60),
	)
	require.NoError(t, f.repo.Save(context.Background(), &repository.Document{Name: name, Schedule: sched}))
}

func TestPlanner_DocumentName(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))

	tests := []struct {
		arg  string
		want string
	}{
		{"", "tasks_2025-03-15.json"},
		{"2025-04-01", "tasks_2025-04-01.json"},
		{"work", "work.json"},
		{"work.json", "work.json"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, f.svc.DocumentName(tc.arg), "arg %q", tc.arg)
	}
}

func TestPlanner_OpenMissingStartsEmpty(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))

	sess, err := f.svc.Open(context.Background(), "tasks_2025-04-01.json")
	require.NoError(t, err)

	assert.False(t, sess.Loaded)
	assert.Equal(t, "2025-04-01", sess.Date)
	assert.Equal(t, 0, sess.Schedule().Len())
	assert.Equal(t, 420, sess.Schedule().DayLength)
	assert.Equal(t, []string{"open-document"}, f.obs.names())
	assert.True(t, f.obs.events[0].Success)
}

func TestPlanner_OpenUsesConfiguredDefaultStart(t *testing.T) {
	dir := t.TempDir()
	clock := testutil.Clock("10:20")
	repo := repository.NewFileDocumentRepo(dir, ".json", clock, nil)
	svc := NewPlannerService(repo, nil, clock, PlannerSettings{Extension: ".json", DefaultStart: 8 * 60})

	require.NoError(t, repo.Save(context.Background(), &repository.Document{
		Name:     "plan.json",
		Schedule: testutil.NewSchedule(420, testutil.Flexible("A", 60)),
	}))

	sess, err := svc.Open(context.Background(), "plan.json")
	require.NoError(t, err)
	assert.True(t, sess.Loaded)
	assert.Equal(t, 8*60, sess.Schedule().Ref(0).Start)
}

func TestPlanner_OpenMalformedDocument(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))
	writeFile(t, filepath.Join(f.dir, "bad.json"), `{"tasks": []}`)

	_, err := f.svc.Open(context.Background(), "bad.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrInvalidFormat))
	require.Len(t, f.obs.events, 1)
	assert.False(t, f.obs.events[0].Success)
}

func TestPlanner_NowAndNext(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))
	saveMorning(t, f, "tasks_2025-03-15.json")
	ctx := context.Background()

	now, err := f.svc.Now(ctx, contract.NewQueryRequest(""))
	require.NoError(t, err)
	require.NotNil(t, now.Active)
	assert.Equal(t, "A", now.Active.Name)
	assert.Equal(t, 1, now.Active.Position)
	assert.Equal(t, 40, now.RemainingMin)
	assert.Equal(t, "11:00", now.Active.EndClock())

	next, err := f.svc.Next(ctx, contract.NewQueryRequest(""))
	require.NoError(t, err)
	require.NotNil(t, next.Next)
	assert.Equal(t, "B", next.Next.Name)
	assert.Equal(t, "11:00", next.Next.StartClock())
	assert.Equal(t, 40, next.UntilMin)
}

func TestPlanner_QueryAtExplicitTime(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))
	saveMorning(t, f, "work.json")
	ctx := context.Background()

	early := testutil.Clock("08:00").Now()
	req := contract.NewQueryRequest("work")
	req.Now = &early

	now, err := f.svc.Now(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, now.Active)
	assert.Equal(t, 8*60, now.NowMinute)

	next, err := f.svc.Next(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, next.Next)
	assert.Equal(t, "A", next.Next.Name)
	assert.Equal(t, 120, next.UntilMin)

	late := testutil.Clock("23:00").Now()
	req.Now = &late
	next, err = f.svc.Next(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, next.Next)
}

func TestPlanner_List(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))
	saveMorning(t, f, "tasks_2025-03-15.json")

	resp, err := f.svc.List(context.Background(), contract.NewQueryRequest("2025-03-15"))
	require.NoError(t, err)

	assert.Equal(t, "tasks_2025-03-15.json", resp.Document)
	assert.Equal(t, "2025-03-15", resp.Date)
	require.Len(t, resp.Activities, 2)
	assert.Equal(t, 60, resp.Activities[0].Actual)
	assert.Equal(t, 360, resp.Activities[1].Actual)
	assert.Equal(t, 420, resp.BookedMin())
	assert.Empty(t, resp.Conflicts)
}

func TestPlanner_ListReportsConflicts(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))
	sched := testutil.NewSchedule(420,
		testutil.Fixed("A", "11:00", 60),
		testutil.Fixed("B", "10:00", 30),
	)
	require.NoError(t, f.repo.Save(context.Background(), &repository.Document{Name: "c.json", Schedule: sched}))

	resp, err := f.svc.List(context.Background(), contract.NewQueryRequest("c"))
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)
	assert.Contains(t, resp.Conflicts[0], "'A' (starts 11:00) conflicts with 'B' (starts 10:00)")
}

func TestPlanner_EditSavesDocument(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))
	ctx := context.Background()

	res, err := f.svc.Edit(ctx, "", func(*domain.Schedule) (history.Command, error) {
		return history.NewAdd(testutil.Flexible("Write", 120))
	})
	require.NoError(t, err)
	assert.Equal(t, "tasks_2025-03-15.json", res.Document)
	assert.Equal(t, "Add task 'Write'", res.Description)

	doc, err := f.repo.Load(ctx, "tasks_2025-03-15.json")
	require.NoError(t, err)
	require.Equal(t, 1, doc.Schedule.Len())
	assert.Equal(t, "Write", doc.Schedule.Ref(0).Name)

	assert.Contains(t, f.obs.names(), "save-document")
	assert.Equal(t, "edit", f.obs.names()[len(f.obs.events)-1])
}

func TestPlanner_EditBuildErrorDoesNotSave(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))
	ctx := context.Background()

	_, err := f.svc.Edit(ctx, "work", func(s *domain.Schedule) (history.Command, error) {
		return nil, domain.IndexError(3, s.Len())
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIndexOutOfRange))

	exists, err := f.repo.Exists(ctx, "work.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPlanner_EditNilCommand(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))

	_, err := f.svc.Edit(context.Background(), "work", func(*domain.Schedule) (history.Command, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, history.ErrNilCommand)
}

func TestPlanner_LastOrToday(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))
	ctx := context.Background()

	name, err := f.svc.LastOrToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tasks_2025-03-15.json", name)

	require.NoError(t, f.svc.Remember(ctx, "work.json"))
	name, err = f.svc.LastOrToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tasks_2025-03-15.json", name, "a remembered document that no longer exists is ignored")

	saveMorning(t, f, "work.json")
	name, err = f.svc.LastOrToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, "work.json", name)
}

func TestPlanner_Documents(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))
	ctx := context.Background()
	saveMorning(t, f, "a.json")
	saveMorning(t, f, "b.json")
	writeFile(t, filepath.Join(f.dir, "notes.json"), `{"title": "not a plan"}`)

	infos, err := f.svc.Documents(ctx)
	require.NoError(t, err)
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	assert.ElementsMatch(t, []string{"a.json", "b.json"}, names)
}

func TestPlanner_SessionSaveRoundTrip(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))
	ctx := context.Background()

	sess, err := f.svc.Open(ctx, "work.json")
	require.NoError(t, err)
	add, err := history.NewAdd(testutil.Fixed("Standup", "09:30", 15, testutil.WithRigid()))
	require.NoError(t, err)
	_, err = sess.Log.Submit(add)
	require.NoError(t, err)
	require.NoError(t, f.svc.Save(ctx, sess))
	assert.True(t, sess.Loaded)

	reopened, err := f.svc.Open(ctx, "work.json")
	require.NoError(t, err)
	require.Equal(t, 1, reopened.Schedule().Len())
	got := reopened.Schedule().Ref(0)
	assert.True(t, got.Fixed)
	assert.True(t, got.Rigid)
	assert.Equal(t, 9*60+30, got.Start)
}

func TestLogUseCaseObserver_NilLoggerIsNoop(t *testing.T) {
	obs := NewLogUseCaseObserver(nil)
	assert.IsType(t, NoopUseCaseObserver{}, obs)
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "x", StartedAt: time.Now()})
}

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	_, err := NewLogger(nil, "loud")
	assert.Error(t, err)

	logger, err := NewLogger(nil, "debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

const malformedWork = `{"date": "2025-03-15", "dayLength": 420, "tasks": [
	{"name": "Good", "length": 30, "rigid": false, "fixed": false},
	{"name": "Bad", "rigid": false, "fixed": false}
]}`

func TestPlanner_EditReportsDroppedTasks(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))
	writeFile(t, filepath.Join(f.dir, "work.json"), malformedWork)
	ctx := context.Background()

	res, err := f.svc.Edit(ctx, "work", func(s *domain.Schedule) (history.Command, error) {
		return history.NewAdd(domain.NewFlexible("New", 15, false))
	})
	require.NoError(t, err)
	require.Len(t, res.Dropped, 1)
	assert.Contains(t, res.Dropped[0], "task 2")

	doc, err := f.repo.Load(ctx, "work.json")
	require.NoError(t, err)
	assert.Empty(t, doc.Skipped, "the saved document no longer holds the malformed task")
	assert.Equal(t, []string{"Good", "New"}, testutil.Names(doc.Schedule))

	last := f.obs.events[len(f.obs.events)-2]
	assert.Equal(t, "save-document", last.Name)
	assert.Equal(t, 1, last.Fields["dropped"])
}

func TestPlanner_SaveClearsSkipped(t *testing.T) {
	f := setupPlanner(t, testutil.Clock("10:20"))
	writeFile(t, filepath.Join(f.dir, "work.json"), malformedWork)
	ctx := context.Background()

	sess, err := f.svc.Open(ctx, "work.json")
	require.NoError(t, err)
	require.Len(t, sess.Skipped, 1)

	require.NoError(t, f.svc.Save(ctx, sess))
	assert.Empty(t, sess.Skipped)

	res, err := f.svc.Edit(ctx, "work", func(s *domain.Schedule) (history.Command, error) {
		return history.NewDelete(s, 0)
	})
	require.NoError(t, err)
	assert.Empty(t, res.Dropped, "nothing left to drop on later saves")
}
