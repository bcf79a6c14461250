// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/unistylus/unistylus/internal/config"

	"github.com/spf13/cobra"
)

func newInitCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "init [path]",
		Aliases: []string{"i"},
		Short:   "Add Unistylus tools to a project",
		Long: `Add a .unistylusrc.cue with the default configuration to a project.

Nothing is written when the project already has an rc file in any format.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := projectArg(args)
			if dir == "" {
				dir = "."
			}
			path, created, err := config.WriteDefault(app.Fs, dir)
			if err != nil {
				return err
			}
			if !created {
				printWarn(cmd.OutOrStdout(), "Already initialised:", path)
				return nil
			}
			printOK(cmd.OutOrStdout(), "Added Unistylus tools:", path)
			return nil
		},
	}
}
