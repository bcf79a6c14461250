// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/unistylus/unistylus/internal/config"
	"github.com/unistylus/unistylus/internal/soul"
	"github.com/unistylus/unistylus/internal/watch"

	"github.com/spf13/cobra"
)

// watchPatterns select the source files that trigger a regeneration.
var watchPatterns = []string{"**/*.scss", "**/*.md"}

type generateOptions struct {
	api       bool
	apiFormat string
	watch     bool
}

func newGenerateCommand(app *App) *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:     "generate [path]",
		Aliases: []string{"g"},
		Short:   "Generate the soul of a project",
		Long: `Expand every part of the source groups into the output directory.

The output directory is cleared first. reset.scss and core.scss are copied
from the source directory, or downloaded from remote.reset / remote.core when
the project does not ship them. full.scss imports every top-level stylesheet.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := soul.APIFormat(opts.apiFormat)
			if valid, errs := format.IsValid(); !valid {
				return errs[0]
			}
			cfg, err := app.loadConfig(cmd.Context(), projectArg(args))
			if err != nil {
				return err
			}
			if err := runGenerate(cmd.Context(), app, cfg, opts, cmd.OutOrStdout()); err != nil {
				return err
			}
			if !opts.watch {
				return nil
			}
			return watchGenerate(cmd.Context(), app, cfg, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVarP(&opts.api, "api", "a", false, "write the API manifest of generated paths")
	cmd.Flags().StringVar(&opts.apiFormat, "api-format", string(soul.APIFormatJSON), "API manifest format (json, yaml)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "regenerate when sources change")
	return cmd
}

func runGenerate(ctx context.Context, app *App, cfg *config.Config, opts generateOptions, out io.Writer) error {
	res, err := soul.NewGenerator(app.Fs, soul.WithFetcher(app.Fetcher)).Generate(ctx, cfg)
	if err != nil {
		return err
	}
	if opts.api {
		path, err := soul.WriteManifest(app.Fs, res.OutDir, res.Manifest, soul.APIFormat(opts.apiFormat))
		if err != nil {
			return err
		}
		slog.Debug("api manifest written", "path", path)
	}
	printOK(out, fmt.Sprintf("Soul generated (%d files) to:", res.Files), res.OutDir)
	return nil
}

// watchGenerate regenerates on source changes until ctx is done. Failed
// runs are reported and watching continues.
func watchGenerate(ctx context.Context, app *App, cfg *config.Config, opts generateOptions, out io.Writer) error {
	w, err := watch.New(watch.Options{
		Root:     cfg.SrcDir(),
		Patterns: watchPatterns,
		OnChange: func(ctx context.Context, changed []string) error {
			slog.Info("sources changed", "files", changed)
			return runGenerate(ctx, app, cfg, opts, out)
		},
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, SubtitleStyle.Render("Watching "+cfg.SrcDir()+" (Ctrl+C to stop)"))
	return w.Run(ctx)
}
