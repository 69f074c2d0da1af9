package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/history"
	"github.com/alexanderramin/dayplan/internal/service"
	"github.com/spf13/cobra"
)

var errNothingToEdit = errors.New("nothing to change: pass --name, --length, --at, --flexible or --rigid")

// runEdit submits one command against the selected document and reports it.
func runEdit(cmd *cobra.Command, app *App, document string, fn service.EditFunc) error {
	res, err := app.Planner.Edit(cmd.Context(), document, fn)
	if err != nil {
		return err
	}
	if app.statusMessages() {
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEdit(res.Document, res.Description))
	}
	printWarnings(cmd, app, res.Conflicts)
	printWarnings(cmd, app, droppedMessages(res.Dropped))
	return nil
}

func newAddCmd(app *App, opts *rootOptions) *cobra.Command {
	var at clockValue
	var rigid bool
	var position int

	cmd := &cobra.Command{
		Use:   "add NAME MINUTES",
		Short: "Add a task",
		Long: `Add a task to the end of the plan, or at --position.
With --at the task is fixed at that time; otherwise it is flexible.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			length, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid length %q: expected minutes", args[1])
			}
			act := domain.NewFlexible(args[0], length, rigid)
			if at.set {
				act = domain.NewFixed(args[0], at.minute, length, rigid)
			}
			return runEdit(cmd, app, opts.document, func(s *domain.Schedule) (history.Command, error) {
				if position > 0 {
					return asCommand(history.NewInsert(s, position-1, act))
				}
				return asCommand(history.NewAdd(act))
			})
		},
	}

	cmd.Flags().Var(&at, "at", "Fix the task at HH:MM")
	cmd.Flags().BoolVar(&rigid, "rigid", false, "Keep the task's length when the day is rebalanced")
	cmd.Flags().IntVar(&position, "position", 0, "Insert at this 1-based position")

	return cmd
}

func newRemoveCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm POSITION",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, opts.document, func(s *domain.Schedule) (history.Command, error) {
				i, err := parsePosition(args[0], s.Len())
				if err != nil {
					return nil, err
				}
				return asCommand(history.NewDelete(s, i))
			})
		},
	}
}

func newStartCmd(app *App, opts *rootOptions) *cobra.Command {
	var at clockValue

	cmd := &cobra.Command{
		Use:   "start POSITION",
		Short: "Start a task now and push later fixed tasks back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clock := at.clockOr(app.clock())
			return runEdit(cmd, app, opts.document, func(s *domain.Schedule) (history.Command, error) {
				i, err := parsePosition(args[0], s.Len())
				if err != nil {
					return nil, err
				}
				return asCommand(history.NewTimerStart(s, i, clock))
			})
		},
	}

	cmd.Flags().Var(&at, "at", "Start at HH:MM instead of the current time")

	return cmd
}

func newEditCmd(app *App, opts *rootOptions) *cobra.Command {
	var (
		name     string
		length   int
		at       clockValue
		flexible bool
		rigid    bool
	)

	cmd := &cobra.Command{
		Use:   "edit POSITION",
		Short: "Change a task's name, length, start time or rigidity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			return runEdit(cmd, app, opts.document, func(s *domain.Schedule) (history.Command, error) {
				i, err := parsePosition(args[0], s.Len())
				if err != nil {
					return nil, err
				}
				cur := s.Ref(i)
				var cmds []history.Command

				if flags.Changed("name") && name != cur.Name {
					c, err := asCommand(history.NewEditName(s, i, name))
					if err != nil {
						return nil, err
					}
					cmds = append(cmds, c)
				}
				if flags.Changed("length") && length != cur.Length {
					c, err := asCommand(history.NewEditLength(s, i, length))
					if err != nil {
						return nil, err
					}
					cmds = append(cmds, c)
				}
				if at.set || flexible {
					c, err := asCommand(history.NewEditStartTime(s, i, at.String()))
					if err != nil {
						return nil, err
					}
					cmds = append(cmds, c)
				}
				if flags.Changed("rigid") && rigid != cur.Rigid {
					c, err := asCommand(history.NewToggleRigid(s, i))
					if err != nil {
						return nil, err
					}
					cmds = append(cmds, c)
				}

				if len(cmds) == 0 {
					return nil, errNothingToEdit
				}
				return history.NewGroup(fmt.Sprintf("Edit task '%s'", cur.Name), cmds...), nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().IntVar(&length, "length", 0, "New length in minutes")
	cmd.Flags().Var(&at, "at", "Fix the task at HH:MM")
	cmd.Flags().BoolVar(&flexible, "flexible", false, "Unfix the task")
	cmd.Flags().BoolVar(&rigid, "rigid", false, "Keep the task's length when the day is rebalanced")
	cmd.MarkFlagsMutuallyExclusive("at", "flexible")

	return cmd
}

func newMoveCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "move POSITION up|down",
		Short:     "Move a task one place up or down",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[1]
			if dir != "up" && dir != "down" {
				return fmt.Errorf("invalid direction %q: expected up or down", dir)
			}
			return runEdit(cmd, app, opts.document, func(s *domain.Schedule) (history.Command, error) {
				i, err := parsePosition(args[0], s.Len())
				if err != nil {
					return nil, err
				}
				if dir == "up" {
					return asCommand(history.NewMoveUp(s, i))
				}
				return asCommand(history.NewMoveDown(s, i))
			})
		},
	}
}

func newDayLengthCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "day-length HOURS",
		Short: "Set how many hours the plan spreads flexible tasks over",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := parseHours(args[0])
			if err != nil {
				return err
			}
			return runEdit(cmd, app, opts.document, func(s *domain.Schedule) (history.Command, error) {
				return asCommand(history.NewEditDayLength(s, minutes))
			})
		},
	}
}
