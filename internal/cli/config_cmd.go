package cli

import (
	"fmt"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := app.Config
				if cfg == nil {
					cfg = config.New()
				}
				if _, err := cfg.WriteTo(cmd.OutOrStdout()); err != nil {
					return err
				}
				printWarnings(cmd, app, cfg.Warnings)
				return nil
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write a configuration file with default values",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path := app.ConfigPath
				if path == "" {
					path = config.DefaultPath
				}
				if err := config.WriteDefault(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("Created"), path)
				return nil
			},
		},
	)

	return cmd
}
