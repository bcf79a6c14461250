// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/unistylus/unistylus/internal/config"
	"github.com/unistylus/unistylus/internal/soul"
	"github.com/unistylus/unistylus/internal/web"

	"github.com/spf13/cobra"
)

func newBuildCommand(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:     "build [path]",
		Aliases: []string{"b"},
		Short:   "Build the website of a project",
		Long: `Generate the soul, then render the website: an index with every group
and a skin selector fed by src/skins, and one page per part.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.loadConfig(cmd.Context(), projectArg(args))
			if err != nil {
				return err
			}
			cfg := *loaded
			if out != "" {
				cfg.Web.Out = config.DirPath(out)
			}

			compiler, err := app.compiler(&cfg)
			if err != nil {
				return err
			}
			gen, err := soul.NewGenerator(app.Fs, soul.WithFetcher(app.Fetcher)).Generate(cmd.Context(), &cfg)
			if err != nil {
				return err
			}
			res, err := web.NewBuilder(app.Fs, compiler).Build(cmd.Context(), &cfg, gen.Groups)
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), fmt.Sprintf("Website built (%d pages) to:", res.Pages), res.OutDir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "website directory (default from web.out)")
	return cmd
}
