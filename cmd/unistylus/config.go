// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/unistylus/unistylus/internal/config"

	"github.com/spf13/cobra"
)

func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the project configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show [path]",
		Short: "Print the resolved configuration as CUE",
		Long: `Print the configuration a run would use, defaults and environment
overrides applied, in the rc file format.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), projectArg(args))
			if err != nil {
				return err
			}
			source := cfg.Source
			if source == "" {
				source = "defaults (no " + config.RCFileBase + ".* found)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "// Source: %s\n", source)
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})
	return cfgCmd
}
