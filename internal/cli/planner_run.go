package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func runProgram(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

// runPlanner opens document, or the last opened one, in the interactive
// planner and remembers it for next time.
func runPlanner(cmd *cobra.Command, app *App, document string) error {
	ctx := cmd.Context()

	var name string
	if document == "" {
		last, err := app.Planner.LastOrToday(ctx)
		if err != nil {
			return err
		}
		name = last
	} else {
		name = app.Planner.DocumentName(document)
	}

	sess, err := app.Planner.Open(ctx, name)
	if err != nil {
		return err
	}
	if err := app.Planner.Remember(ctx, sess.Name); err != nil {
		return err
	}

	run := app.RunProgram
	if run == nil {
		run = runProgram
	}
	final, err := run(newPlannerModel(app, sess))
	if err != nil {
		return err
	}
	if m, ok := final.(plannerModel); ok && m.saveErr != nil {
		return m.saveErr
	}
	return nil
}
