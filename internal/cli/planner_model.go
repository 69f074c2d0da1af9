package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/history"
	"github.com/alexanderramin/dayplan/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

const dayLengthStep = 30

type statusKind int

const (
	statusInfo statusKind = iota
	statusWarn
	statusError
)

// activityForm is an open add, insert or edit form.
type activityForm struct {
	mode   formMode
	index  int
	values *activityValues
	form   *huh.Form
}

// plannerModel is the interactive editor for one open document. Every
// change goes through the session's command log, so it can be undone.
type plannerModel struct {
	app  *App
	sess *service.Session
	keys plannerKeyMap
	help help.Model

	cursor  int
	form    *activityForm
	status  string
	kind    statusKind
	dirty   bool
	saveErr error
}

func newPlannerModel(app *App, sess *service.Session) plannerModel {
	m := plannerModel{
		app:  app,
		sess: sess,
		keys: defaultPlannerKeys(),
		help: help.New(),
	}
	switch {
	case len(sess.Conflicts) > 0 && app.showWarnings():
		m.status, m.kind = sess.Conflicts[0].String(), statusWarn
	case len(sess.Skipped) > 0 && app.showWarnings():
		m.status, m.kind = fmt.Sprintf("Skipped %d malformed tasks while loading", len(sess.Skipped)), statusWarn
	case !sess.Loaded:
		m.status = "New plan " + sess.Name
	}
	return m
}

func (m plannerModel) Init() tea.Cmd { return nil }

func (m plannerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.help.Width = size.Width
		return m, nil
	}
	if m.form != nil {
		return m.updateForm(msg)
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(keyMsg)
	}
	return m, nil
}

func (m plannerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.sess.Schedule()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < s.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.MoveUp):
		if m.submit(asCommand(history.NewMoveUp(s, m.cursor))) {
			m.cursor--
		}
	case key.Matches(msg, m.keys.MoveDown):
		if m.submit(asCommand(history.NewMoveDown(s, m.cursor))) {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		return m.openForm(formAdd, s.Len(), &activityValues{})
	case key.Matches(msg, m.keys.Insert):
		at := 0
		if s.Len() > 0 {
			at = m.cursor + 1
		}
		return m.openForm(formInsert, at, &activityValues{})
	case key.Matches(msg, m.keys.Edit):
		if a, err := s.At(m.cursor); err == nil {
			return m.openForm(formEdit, m.cursor, valuesOf(a))
		}
	case key.Matches(msg, m.keys.Delete):
		m.submit(asCommand(history.NewDelete(s, m.cursor)))
	case key.Matches(msg, m.keys.ToggleFixed):
		m.submit(asCommand(history.NewToggleFixed(s, m.cursor)))
	case key.Matches(msg, m.keys.ToggleRigid):
		m.submit(asCommand(history.NewToggleRigid(s, m.cursor)))
	case key.Matches(msg, m.keys.Start):
		m.submit(asCommand(history.NewTimerStart(s, m.cursor, m.app.clock())))
	case key.Matches(msg, m.keys.Longer):
		m.submit(asCommand(history.NewEditDayLength(s, s.DayLength+dayLengthStep)))
	case key.Matches(msg, m.keys.Shorter):
		if s.DayLength > dayLengthStep {
			m.submit(asCommand(history.NewEditDayLength(s, s.DayLength-dayLengthStep)))
		}
	case key.Matches(msg, m.keys.Undo):
		out, err := m.sess.Log.Undo()
		m.report("Undid: ", out, err)
	case key.Matches(msg, m.keys.Redo):
		out, err := m.sess.Log.Redo()
		m.report("Redid: ", out, err)
	case key.Matches(msg, m.keys.Save):
		m.save()
	}
	m.clampCursor()
	return m, nil
}

// submit records c in the log and reports whether it was applied.
func (m *plannerModel) submit(c history.Command, err error) bool {
	if err != nil {
		m.setStatus(err.Error(), statusError)
		return false
	}
	out, err := m.sess.Log.Submit(c)
	m.report("", out, err)
	return err == nil
}

func (m *plannerModel) report(prefix string, out history.Outcome, err error) {
	if err != nil {
		m.setStatus(err.Error(), statusError)
		return
	}
	m.dirty = true
	if conflicts := out.Conflicts(); len(conflicts) > 0 && m.app.showWarnings() {
		m.setStatus(conflicts[0].String(), statusWarn)
		return
	}
	if m.app.statusMessages() {
		m.setStatus(prefix+out.Description, statusInfo)
	} else {
		m.setStatus("", statusInfo)
	}
}

func (m *plannerModel) setStatus(text string, kind statusKind) {
	m.status, m.kind = text, kind
}

func (m *plannerModel) clampCursor() {
	n := m.sess.Schedule().Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *plannerModel) save() bool {
	dropped := len(m.sess.Skipped)
	if err := m.app.Planner.Save(context.Background(), m.sess); err != nil {
		m.saveErr = err
		m.setStatus("Save failed: "+err.Error(), statusError)
		return false
	}
	m.saveErr = nil
	m.dirty = false
	if dropped > 0 && m.app.showWarnings() {
		m.setStatus(fmt.Sprintf("Saved %s without %d malformed tasks", m.sess.Name, dropped), statusWarn)
		return true
	}
	m.setStatus("Saved "+m.sess.Name, statusInfo)
	return true
}

// quit saves first when auto-save is on. A failed save keeps the planner
// open once; quitting again leaves without saving.
func (m plannerModel) quit() (tea.Model, tea.Cmd) {
	if m.dirty && m.app.autoSave() && m.saveErr == nil && !m.save() {
		return m, nil
	}
	return m, tea.Quit
}

func (m plannerModel) openForm(mode formMode, index int, values *activityValues) (tea.Model, tea.Cmd) {
	m.form = &activityForm{mode: mode, index: index, values: values, form: newActivityForm(values)}
	return m, m.form.form.Init()
}

func (m plannerModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		m.setStatus("Cancelled", statusInfo)
		return m, nil
	}

	form, cmd := m.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form.form = f
	}
	switch m.form.form.State {
	case huh.StateCompleted:
		m.applyForm()
		return m, nil
	case huh.StateAborted:
		m.form = nil
		m.setStatus("Cancelled", statusInfo)
		return m, nil
	}
	return m, cmd
}

// applyForm submits the completed form and closes it.
func (m *plannerModel) applyForm() {
	f := m.form
	m.form = nil
	s := m.sess.Schedule()

	switch f.mode {
	case formAdd, formInsert:
		act, err := f.values.activity()
		if err != nil {
			m.setStatus(err.Error(), statusError)
			return
		}
		if f.mode == formAdd {
			if m.submit(asCommand(history.NewAdd(act))) {
				m.cursor = s.Len() - 1
			}
			return
		}
		if m.submit(asCommand(history.NewInsert(s, f.index, act))) {
			m.cursor = f.index
		}
	case formEdit:
		cmds, err := f.values.editCommands(s, f.index)
		if err != nil {
			m.setStatus(err.Error(), statusError)
			return
		}
		if len(cmds) == 0 {
			m.setStatus("No changes", statusInfo)
			return
		}
		name := s.Ref(f.index).Name
		m.submit(history.NewGroup(fmt.Sprintf("Edit task '%s'", name), cmds...), nil)
	}
}

func (m plannerModel) View() string {
	var b strings.Builder
	s := m.sess.Schedule()

	b.WriteString(formatter.StyleHeader.Render("dayplan"))
	b.WriteString("  " + formatter.Bold(m.sess.Name))
	if m.sess.Date != "" {
		b.WriteString(formatter.Dim("  " + m.sess.Date))
	}
	if m.dirty {
		b.WriteString(formatter.StyleYellow.Render("  modified"))
	}
	b.WriteString("\n\n")

	if m.form != nil {
		b.WriteString(formatter.RenderBox(m.form.mode.String(), m.form.form.View()))
		b.WriteString("\n" + formatter.Dim("esc cancel") + "\n")
		return b.String()
	}

	if s.Len() == 0 {
		b.WriteString(formatter.Dim("No tasks yet. Press a to add one.") + "\n")
	} else {
		b.WriteString(m.renderTable())
	}

	booked := 0
	for _, a := range s.Activities() {
		booked += a.Actual
	}
	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("Day length %s (%d min), booked %s",
		formatter.FormatHours(s.DayLength), s.DayLength, formatter.FormatMinutes(booked))))
	b.WriteString("\n")

	if m.status != "" {
		style := formatter.StyleDim
		switch m.kind {
		case statusWarn:
			style = formatter.StyleYellow
		case statusError:
			style = formatter.StyleRed
		}
		b.WriteString(style.Render(m.status) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m plannerModel) renderTable() string {
	acts := m.sess.Schedule().Activities()
	rows := make([][]string, len(acts))
	for i, a := range acts {
		marker := "  "
		name := a.Name
		if i == m.cursor {
			marker = formatter.StyleHeader.Render("› ")
			name = formatter.Bold(name)
		}
		flags := formatter.AnchorTag(a.Fixed)
		if a.Rigid {
			flags += " " + formatter.RigidTag(true)
		}
		actual := fmt.Sprintf("%d", a.Actual)
		if a.Frozen() {
			actual += "*"
		}
		rows[i] = []string{
			fmt.Sprintf("%s%d", marker, i+1),
			name,
			domain.FormatClock(a.Start),
			domain.FormatClock(a.Start + a.Actual),
			fmt.Sprintf("%d", a.Length),
			actual,
			flags,
		}
	}
	return formatter.Table{
		Headers:    []string{"  #", "TASK", "START", "END", "LEN", "ACTUAL", ""},
		Rows:       rows,
		RightAlign: map[int]bool{4: true, 5: true},
	}.Render()
}
