package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/history"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/scheduler"
)

// PlannerSettings seeds new documents and bounds each session's history.
type PlannerSettings struct {
	Extension    string
	DayLength    int
	DefaultStart int
	MaxHistory   int
	MaxBytes     int
	Logger       *slog.Logger
}

func (p PlannerSettings) withDefaults() PlannerSettings {
	if p.DayLength <= 0 {
		p.DayLength = domain.DefaultDayLength
	}
	if p.DefaultStart < 0 || p.DefaultStart >= domain.MinutesPerDay {
		p.DefaultStart = domain.DefaultStartMinute
	}
	if p.MaxHistory <= 0 {
		p.MaxHistory = history.DefaultMaxHistory
	}
	if p.MaxBytes <= 0 {
		p.MaxBytes = history.DefaultMaxBytes
	}
	if p.Logger == nil {
		p.Logger = DiscardLogger()
	}
	return p
}

type plannerService struct {
	docs     repository.DocumentRepo
	state    SessionStore
	clock    domain.Clock
	settings PlannerSettings
	observer UseCaseObserver
}

func NewPlannerService(
	docs repository.DocumentRepo,
	state SessionStore,
	clock domain.Clock,
	settings PlannerSettings,
	observers ...UseCaseObserver,
) PlannerService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &plannerService{
		docs:     docs,
		state:    state,
		clock:    clock,
		settings: settings.withDefaults(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *plannerService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *plannerService) DocumentName(arg string) string {
	if arg == "" {
		return repository.DatedName(repository.Today(s.clock.Now()), s.settings.Extension)
	}
	return repository.DocumentName(arg, s.settings.Extension)
}

func (s *plannerService) LastOrToday(ctx context.Context) (string, error) {
	if s.state != nil {
		last, err := s.state.LastOpened()
		if err != nil {
			return "", err
		}
		if last != "" {
			ok, err := s.docs.Exists(ctx, last)
			if err != nil {
				return "", fmt.Errorf("checking last opened document: %w", err)
			}
			if ok {
				return last, nil
			}
		}
	}
	return s.DocumentName(""), nil
}

func (s *plannerService) Open(ctx context.Context, name string) (sess *Session, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"document": name}
	defer func() { s.observe(ctx, "open-document", startedAt, fields, err) }()

	loaded := true
	doc, err := s.docs.Load(ctx, name)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		doc = s.emptyDocument(name)
		loaded = false
		err = nil
	case err != nil:
		return nil, fmt.Errorf("loading %s: %w", name, err)
	default:
		fields["task_count"] = doc.Schedule.Len()
		fields["skipped"] = len(doc.Skipped)
	}
	doc.Schedule.DefaultStart = s.settings.DefaultStart

	log := history.NewLog(doc.Schedule,
		history.WithMaxHistory(s.settings.MaxHistory),
		history.WithMaxBytes(s.settings.MaxBytes),
		history.WithLogger(s.settings.Logger),
	)
	alloc := log.Recompute()
	fields["conflicts"] = len(alloc.Conflicts)

	return &Session{
		Name:      doc.Name,
		Date:      doc.Date,
		Log:       log,
		Loaded:    loaded,
		Skipped:   doc.Skipped,
		Conflicts: alloc.Conflicts,
	}, nil
}

func (s *plannerService) emptyDocument(name string) *repository.Document {
	date, ok := repository.DateOf(name, s.settings.Extension)
	if !ok {
		date = repository.Today(s.clock.Now())
	}
	sched := domain.NewSchedule(s.settings.DayLength)
	return &repository.Document{Name: name, Date: date, Schedule: sched}
}

func (s *plannerService) Save(ctx context.Context, sess *Session) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"document": sess.Name, "task_count": sess.Schedule().Len()}
	defer func() { s.observe(ctx, "save-document", startedAt, fields, err) }()

	if err = s.docs.Save(ctx, sess.document()); err != nil {
		return fmt.Errorf("saving %s: %w", sess.Name, err)
	}
	if n := len(sess.Skipped); n > 0 {
		s.settings.Logger.Warn("saved document without its malformed tasks",
			"document", sess.Name, "dropped", n)
		fields["dropped"] = n
	}
	sess.Loaded = true
	sess.Skipped = nil
	return nil
}

func (s *plannerService) Remember(_ context.Context, name string) error {
	if s.state == nil {
		return nil
	}
	return s.state.SetLastOpened(name)
}

func (s *plannerService) Documents(ctx context.Context) (infos []repository.DocumentInfo, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "list-documents", startedAt, fields, err) }()

	infos, err = s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	fields["count"] = len(infos)
	return infos, nil
}

func (s *plannerService) nowMinute(req contract.QueryRequest) int {
	now := s.clock.Now()
	if req.Now != nil {
		now = *req.Now
	}
	return domain.MinuteOfDay(now)
}

func (s *plannerService) Now(ctx context.Context, req contract.QueryRequest) (resp *contract.NowResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"document": req.Document}
	defer func() { s.observe(ctx, "now", startedAt, fields, err) }()

	sess, err := s.Open(ctx, s.DocumentName(req.Document))
	if err != nil {
		return nil, err
	}
	now := s.nowMinute(req)
	resp = &contract.NowResponse{
		Document:  sess.Name,
		NowMinute: now,
		Conflicts: ConflictMessages(sess.Conflicts),
	}
	if i, a, ok := scheduler.ActiveAt(sess.Schedule(), now); ok {
		view := contract.NewActivityView(i, a)
		resp.Active = &view
		resp.RemainingMin = a.End() - now
		fields["active"] = a.Name
	}
	return resp, nil
}

func (s *plannerService) Next(ctx context.Context, req contract.QueryRequest) (resp *contract.NextResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"document": req.Document}
	defer func() { s.observe(ctx, "next", startedAt, fields, err) }()

	sess, err := s.Open(ctx, s.DocumentName(req.Document))
	if err != nil {
		return nil, err
	}
	now := s.nowMinute(req)
	resp = &contract.NextResponse{
		Document:  sess.Name,
		NowMinute: now,
		Conflicts: ConflictMessages(sess.Conflicts),
	}
	if i, a, ok := scheduler.NextAfter(sess.Schedule(), now); ok {
		view := contract.NewActivityView(i, a)
		resp.Next = &view
		resp.UntilMin = a.Start - now
		fields["next"] = a.Name
	}
	return resp, nil
}

func (s *plannerService) List(ctx context.Context, req contract.QueryRequest) (resp *contract.ListResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"document": req.Document}
	defer func() { s.observe(ctx, "list", startedAt, fields, err) }()

	sess, err := s.Open(ctx, s.DocumentName(req.Document))
	if err != nil {
		return nil, err
	}
	return ListSession(sess), nil
}

// ListSession snapshots an open session for display.
func ListSession(sess *Session) *contract.ListResponse {
	sched := sess.Schedule()
	acts := scheduler.List(sched)
	views := make([]contract.ActivityView, len(acts))
	for i, a := range acts {
		views[i] = contract.NewActivityView(i, a)
	}
	return &contract.ListResponse{
		Document:   sess.Name,
		Date:       sess.Date,
		DayLength:  sched.DayLength,
		Activities: views,
		Conflicts:  ConflictMessages(sess.Conflicts),
		Skipped:    sess.Skipped,
	}
}

func (s *plannerService) Edit(ctx context.Context, document string, fn EditFunc) (res *EditResult, err error) {
	startedAt := time.Now().UTC()
	name := s.DocumentName(document)
	fields := map[string]any{"document": name}
	defer func() { s.observe(ctx, "edit", startedAt, fields, err) }()

	sess, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	cmd, err := fn(sess.Schedule())
	if err != nil {
		return nil, err
	}
	if cmd == nil {
		return nil, history.ErrNilCommand
	}
	fields["kind"] = cmd.Kind().String()

	outcome, err := sess.Log.Submit(cmd)
	if err != nil {
		return nil, err
	}
	dropped := sess.Skipped
	if err = s.Save(ctx, sess); err != nil {
		return nil, err
	}
	fields["conflicts"] = len(outcome.Conflicts())
	return &EditResult{
		Document:    sess.Name,
		Description: outcome.Description,
		Conflicts:   ConflictMessages(outcome.Conflicts()),
		Dropped:     dropped,
	}, nil
}
