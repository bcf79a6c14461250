// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "unistylus",
		Short: "Tools for the Unistylus framework",
		Long: TitleStyle.Render("unistylus") + SubtitleStyle.Render(" - Tools for the Unistylus framework") + `

unistylus expands templated style parts into every variant of your design
variables (palettes, sizes, directions, fonts), bundles them, and builds a
browsable website of the result.

` + SubtitleStyle.Render("Quick Start:") + `
  1. unistylus init          Add a .unistylusrc.cue to the project
  2. unistylus generate      Expand src/ into dist/
  3. unistylus build         Render the website into docs/`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd.ErrOrStderr(), app.verbose)
		},
	}
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&app.configFile, "config", "", "rc file to use instead of the project's .unistylusrc.*")

	root.AddCommand(
		newInitCommand(app),
		newGenerateCommand(app),
		newBuildCommand(app),
		newCleanCommand(app),
		newCopyCommand(app),
		newAddCommand(app),
		newRemoveCommand(app),
		newUseCommand(app),
		newConfigCommand(app),
	)
	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Run executes the CLI with os.Args and returns the process exit code.
func Run() int {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.errorHandler),
	); err != nil {
		return 1
	}
	return 0
}

// Execute runs the CLI and exits the process. It is called by main.main().
func Execute() {
	os.Exit(Run())
}
