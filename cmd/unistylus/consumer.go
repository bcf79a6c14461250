// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/unistylus/unistylus/internal/config"
	"github.com/unistylus/unistylus/internal/consumer"
	"github.com/unistylus/unistylus/internal/fsutil"
	"github.com/unistylus/unistylus/internal/issue"

	"github.com/spf13/cobra"
)

func newAddCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Import a part or skin in src/unistylus.scss",
		Long: `Import a part ('components/badge-all') or a skin ('skins/dark') from the
current collection in src/unistylus.scss.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := editConsumer(app, cmd, func(i consumer.Info) consumer.Info { return i.Add(args[0]) })
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), fmt.Sprintf("Added %s to", args[0]), file)
			return nil
		},
	}
}

func newRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a part or skin from src/unistylus.scss",
		Long: `Remove a part or skin import from src/unistylus.scss. Removing the last
import leaves a collection comment so later 'add' and 'use' still work.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := editConsumer(app, cmd, func(i consumer.Info) consumer.Info { return i.Remove(args[0]) })
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), fmt.Sprintf("Removed %s from", args[0]), file)
			return nil
		},
	}
}

func newUseCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <collection>",
		Short: "Switch the collection imported by src/unistylus.scss",
		Long: `Rewrite every import of src/unistylus.scss to come from another
collection, e.g. '@lamnhan/unistylus-material'. Parts are kept by name; the
new collection may not provide all of them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collection := args[0]
			cfg, err := app.loadConfig(cmd.Context(), "")
			if err != nil {
				return err
			}
			if !fsutil.Exists(app.Fs, cfg.Resolve(path.Join("node_modules", collection))) {
				slog.Warn("collection is not installed", "collection", collection)
			}
			file, err := editConsumerOf(app, cfg, func(i consumer.Info) consumer.Info { return i.Use(collection) })
			if err != nil {
				return err
			}
			printWarn(cmd.OutOrStdout(), "Some parts may not exist in", collection)
			printOK(cmd.OutOrStdout(), "Changed the collection of", file)
			return nil
		},
	}
}

// editConsumer applies fn to the consumer file of the current project and
// returns its path.
func editConsumer(app *App, cmd *cobra.Command, fn func(consumer.Info) consumer.Info) (string, error) {
	cfg, err := app.loadConfig(cmd.Context(), "")
	if err != nil {
		return "", err
	}
	return editConsumerOf(app, cfg, fn)
}

func editConsumerOf(app *App, cfg *config.Config, fn func(consumer.Info) consumer.Info) (string, error) {
	file := consumer.Path(cfg.SrcDir())
	if _, err := consumer.Edit(app.Fs, file, fn); err != nil {
		return "", consumerError(err, file)
	}
	return file, nil
}

func consumerError(err error, file string) error {
	ctx := issue.NewErrorContext().
		WithOperation("edit consumer file").
		WithResource(file).
		WithIssue(issue.ConsumerFileInvalidId).
		Wrap(err)
	switch {
	case errors.Is(err, consumer.ErrConsumerFileNotFound):
		ctx.WithSuggestion(fmt.Sprintf("Create %s with one import of your collection, e.g. @import '%s/full';", consumer.FileName, config.AppName))
	case errors.Is(err, consumer.ErrInvalidConsumerFile):
		ctx.WithSuggestion("The first @import decides the collection; make sure the file has one")
	}
	return ctx.BuildError()
}
