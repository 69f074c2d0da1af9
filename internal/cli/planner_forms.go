package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/history"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// plannerHuhTheme returns a huh theme matching the formatter palette.
func plannerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

type formMode int

const (
	formAdd formMode = iota
	formInsert
	formEdit
)

func (f formMode) String() string {
	switch f {
	case formInsert:
		return "Insert task"
	case formEdit:
		return "Edit task"
	default:
		return "Add task"
	}
}

// activityValues backs the add/edit form. Every field is text so an
// untouched form round-trips the current values exactly.
type activityValues struct {
	Name   string
	Length string
	Start  string
	Rigid  bool
}

func valuesOf(a domain.Activity) *activityValues {
	v := &activityValues{Name: a.Name, Length: strconv.Itoa(a.Length), Rigid: a.Rigid}
	if a.Fixed {
		v.Start = domain.FormatClock(a.Start)
	}
	return v
}

// activity builds a new activity from the form.
func (v *activityValues) activity() (domain.Activity, error) {
	length, err := strconv.Atoi(strings.TrimSpace(v.Length))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("invalid length %q", v.Length)
	}
	name := strings.TrimSpace(v.Name)
	if strings.TrimSpace(v.Start) == "" {
		return domain.NewFlexible(name, length, v.Rigid), nil
	}
	start, err := domain.ParseClock(v.Start)
	if err != nil {
		return domain.Activity{}, err
	}
	return domain.NewFixed(name, start, length, v.Rigid), nil
}

// editCommands returns one command per field that differs from activity i.
func (v *activityValues) editCommands(s *domain.Schedule, i int) ([]history.Command, error) {
	cur, err := s.At(i)
	if err != nil {
		return nil, err
	}
	var cmds []history.Command
	add := func(c history.Command, err error) error {
		if err != nil {
			return err
		}
		cmds = append(cmds, c)
		return nil
	}

	if name := strings.TrimSpace(v.Name); name != cur.Name {
		if err := add(asCommand(history.NewEditName(s, i, name))); err != nil {
			return nil, err
		}
	}
	length, err := strconv.Atoi(strings.TrimSpace(v.Length))
	if err != nil {
		return nil, fmt.Errorf("invalid length %q", v.Length)
	}
	if length != cur.Length {
		if err := add(asCommand(history.NewEditLength(s, i, length))); err != nil {
			return nil, err
		}
	}
	start := strings.TrimSpace(v.Start)
	if start != valuesOf(cur).Start {
		if err := add(asCommand(history.NewEditStartTime(s, i, start))); err != nil {
			return nil, err
		}
	}
	if v.Rigid != cur.Rigid {
		if err := add(asCommand(history.NewToggleRigid(s, i))); err != nil {
			return nil, err
		}
	}
	return cmds, nil
}

func newActivityForm(v *activityValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Placeholder("Deep work").
				Value(&v.Name).
				Validate(validateName),
			huh.NewInput().
				Title("Length (minutes)").
				Placeholder("60").
				Value(&v.Length).
				Validate(validateLength),
			huh.NewInput().
				Title("Start time (HH:MM, blank for flexible)").
				Placeholder("09:30").
				Value(&v.Start).
				Validate(validateOptionalClock),
			huh.NewConfirm().
				Title("Keep this length when the day is rebalanced?").
				Value(&v.Rigid),
		),
	).WithTheme(plannerHuhTheme()).WithShowHelp(false)
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a task needs a name")
	}
	return nil
}

func validateLength(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return errors.New("enter a positive number of minutes")
	}
	return nil
}

func validateOptionalClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := domain.ParseClock(s); err != nil {
		return errors.New("use HH:MM")
	}
	return nil
}
