package cli

import (
	"fmt"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/spf13/cobra"
)

func newNowCmd(app *App, opts *rootOptions) *cobra.Command {
	var at clockValue

	cmd := &cobra.Command{
		Use:   "now [DATE|DOCUMENT]",
		Short: "Show the task in progress",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewQueryRequest(opts.documentArg(args))
			req.Now = at.on(app.clock().Now())

			resp, err := app.Planner.Now(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNow(resp))
			printWarnings(cmd, app, resp.Conflicts)
			return nil
		},
	}

	cmd.Flags().Var(&at, "at", "Ask about HH:MM instead of the current time")

	return cmd
}

func newNextCmd(app *App, opts *rootOptions) *cobra.Command {
	var at clockValue

	cmd := &cobra.Command{
		Use:   "next [DATE|DOCUMENT]",
		Short: "Show the next task to start",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewQueryRequest(opts.documentArg(args))
			req.Now = at.on(app.clock().Now())

			resp, err := app.Planner.Next(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNext(resp))
			printWarnings(cmd, app, resp.Conflicts)
			return nil
		},
	}

	cmd.Flags().Var(&at, "at", "Ask about HH:MM instead of the current time")

	return cmd
}

func newListCmd(app *App, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list [DATE|DOCUMENT]",
		Aliases: []string{"ls"},
		Short:   "List every task with its computed times",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, app, opts.documentArg(args))
		},
	}
}

func runList(cmd *cobra.Command, app *App, document string) error {
	resp, err := app.Planner.List(cmd.Context(), contract.NewQueryRequest(document))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatList(resp))
	printWarnings(cmd, app, resp.Conflicts)
	printWarnings(cmd, app, skippedMessages(resp.Skipped))
	return nil
}

func printWarnings(cmd *cobra.Command, app *App, msgs []string) {
	if len(msgs) == 0 || !app.showWarnings() {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatWarnings(msgs))
}

func skippedMessages(skipped []string) []string {
	out := make([]string, len(skipped))
	for i, s := range skipped {
		out[i] = "skipped malformed " + s
	}
	return out
}

func droppedMessages(dropped []string) []string {
	out := make([]string, len(dropped))
	for i, s := range dropped {
		out[i] = "removed malformed " + s + " from the document"
	}
	return out
}
