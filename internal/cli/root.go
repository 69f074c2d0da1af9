package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/dayplan/internal/config"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// ErrUnknownCommand is returned when the arguments name neither a command
// nor a single document.
var ErrUnknownCommand = errors.New("unknown command")

// App holds what the CLI commands need from the rest of the program.
type App struct {
	Planner service.PlannerService
	Clock   domain.Clock
	Config  *config.Config
	// ConfigPath is where "config init" writes the default configuration.
	ConfigPath string

	// IsInteractive reports whether stdin is a terminal. When nil the
	// planner is never started.
	IsInteractive func() bool
	// RunProgram runs the interactive planner. Tests replace it.
	RunProgram func(m tea.Model) (tea.Model, error)
}

func (a *App) autoSave() bool       { return a.Config == nil || a.Config.AutoSave() }
func (a *App) showWarnings() bool   { return a.Config == nil || a.Config.ShowWarnings() }
func (a *App) statusMessages() bool { return a.Config == nil || a.Config.StatusMessages() }

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) clock() domain.Clock {
	if a.Clock == nil {
		return domain.SystemClock{}
	}
	return a.Clock
}

// rootOptions are flags shared by every subcommand.
type rootOptions struct {
	document string
}

// documentArg picks the document from a trailing argument, then --doc.
func (o *rootOptions) documentArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return o.document
}

// NewRootCmd creates the top-level "dayplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "dayplan [DATE|DOCUMENT]",
		Short: "Day planner that fits flexible tasks around fixed anchors",
		Long: `dayplan keeps one plan per day. Fixed tasks start at a set time,
flexible tasks share whatever is left of the day budget.

Run without a command to open the interactive planner on the last opened
document, or pass a YYYY-MM-DD date or a document name to open that one.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("%w %q for %q", ErrUnknownCommand, args[0], cmd.CommandPath())
			}
			if !app.interactive() {
				if len(args) == 0 && opts.document == "" {
					return cmd.Help()
				}
				return runList(cmd, app, opts.documentArg(args))
			}
			return runPlanner(cmd, app, opts.documentArg(args))
		},
	}

	root.PersistentFlags().StringVarP(&opts.document, "doc", "d", "",
		"Document name or YYYY-MM-DD date (default: today)")

	root.AddCommand(
		newNowCmd(app, opts),
		newNextCmd(app, opts),
		newListCmd(app, opts),
		newAddCmd(app, opts),
		newRemoveCmd(app, opts),
		newStartCmd(app, opts),
		newEditCmd(app, opts),
		newMoveCmd(app, opts),
		newDayLengthCmd(app, opts),
		newDocsCmd(app),
		newConfigCmd(app),
	)

	return root
}
