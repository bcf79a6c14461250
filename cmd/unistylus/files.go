// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/unistylus/unistylus/internal/fsutil"
	"github.com/unistylus/unistylus/internal/issue"

	"github.com/spf13/cobra"
)

func newCleanCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "clean <path>",
		Aliases: []string{"del", "d"},
		Short:   "Clean a folder",
		Long:    "Remove everything inside a folder, creating it when missing.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existed := fsutil.Exists(app.Fs, args[0])
			if err := fsutil.ClearDir(app.Fs, args[0]); err != nil {
				return fsutil.WrapError(err, "clean folder", args[0])
			}
			if existed {
				printOK(cmd.OutOrStdout(), "Cleaned the folder:", args[0])
			} else {
				printOK(cmd.OutOrStdout(), "Created the folder:", args[0])
			}
			return nil
		},
	}
}

func newCopyCommand(app *App) *cobra.Command {
	var (
		src   string
		out   string
		clean bool
	)
	cmd := &cobra.Command{
		Use:     "copy [items...]",
		Aliases: []string{"c"},
		Short:   "Copy resources",
		Long: `Copy files or folders from --src to the same paths under --out.

Items may be doublestar globs: 'assets/**/*.svg' copies every svg below assets,
keeping the path relative to 'assets' under the same prefix in --out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !fsutil.Exists(app.Fs, src) {
				return issue.NewErrorContext().
					WithOperation("copy resources").
					WithResource(src).
					WithSuggestion("Pass the directory holding the items with --src").
					WithIssue(issue.SourceNotFoundId).
					Wrap(fmt.Errorf("source directory %s does not exist", src)).
					BuildError()
			}
			if clean {
				if err := fsutil.ClearDir(app.Fs, out); err != nil {
					return fsutil.WrapError(err, "clean folder", out)
				}
			}
			specs := make([]fsutil.CopySpec, len(args))
			for i, item := range args {
				specs[i] = fsutil.CopySpec{From: item, To: item}
			}
			if err := fsutil.Copies(app.Fs, src, out, specs); err != nil {
				return issue.NewErrorContext().
					WithOperation("copy resources").
					WithResource(src).
					WithSuggestion("Check the items exist relative to --src").
					Wrap(err).
					BuildError()
			}
			printOK(cmd.OutOrStdout(), "Items copied:", strings.Join(args, ", "))
			return nil
		},
	}
	cmd.Flags().StringVarP(&src, "src", "s", ".", "source of the items")
	cmd.Flags().StringVarP(&out, "out", "o", "dist", "copy destination")
	cmd.Flags().BoolVarP(&clean, "clean", "c", false, "clean the destination first")
	return cmd
}
