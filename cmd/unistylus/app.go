// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/unistylus/unistylus/internal/config"
	"github.com/unistylus/unistylus/internal/download"
	"github.com/unistylus/unistylus/internal/issue"
	"github.com/unistylus/unistylus/internal/sass"
	"github.com/unistylus/unistylus/internal/soul"

	"github.com/spf13/afero"
)

type (
	// App wires the CLI services. Command handlers receive it and never
	// reach for package-level state.
	App struct {
		Config   ConfigProvider
		Fs       afero.Fs
		Fetcher  soul.Fetcher
		Compiler CompilerFactory
		stdout   io.Writer
		stderr   io.Writer

		// Persistent flag values.
		verbose    bool
		configFile string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   ConfigProvider
		Fs       afero.Fs
		Fetcher  soul.Fetcher
		Compiler CompilerFactory
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// CompilerFactory returns the style compiler for a configured binary.
	CompilerFactory func(binary string) (sass.Compiler, error)
)

// NewApp creates an App, filling unset dependencies with defaults.
func NewApp(deps Dependencies) *App {
	fs := deps.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	app := &App{
		Config:   deps.Config,
		Fs:       fs,
		Fetcher:  deps.Fetcher,
		Compiler: deps.Compiler,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider(config.WithFs(fs))
	}
	if app.Fetcher == nil {
		app.Fetcher = download.NewClient(download.WithUserAgent(config.AppName + "/" + Version))
	}
	if app.Compiler == nil {
		app.Compiler = func(binary string) (sass.Compiler, error) {
			return sass.NewExecCompiler(binary)
		}
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// loadConfig loads the project configuration, honouring --config.
func (a *App) loadConfig(ctx context.Context, projectDir string) (*config.Config, error) {
	return a.Config.Load(ctx, config.LoadOptions{
		ProjectDir:     projectDir,
		ConfigFilePath: a.configFile,
	})
}

// compiler returns the configured Sass compiler. When the default binary is
// missing, pages show their sources uncompiled; a configured binary that is
// missing is an error.
func (a *App) compiler(cfg *config.Config) (sass.Compiler, error) {
	c, err := a.Compiler(cfg.Sass.Binary)
	if err == nil {
		return c, nil
	}
	if cfg.Sass.Binary != config.DefaultSassBinary {
		return nil, issue.NewErrorContext().
			WithOperation("find sass compiler").
			WithResource(cfg.Sass.Binary).
			WithSuggestion("Check the sass.binary value of your rc file").
			WithIssue(issue.SassNotFoundId).
			Wrap(err).
			BuildError()
	}
	slog.Warn("sass compiler unavailable, stylesheets are copied uncompiled", "binary", cfg.Sass.Binary, "error", err)
	return sass.CopyCompiler{}, nil
}

// projectArg returns the optional project path argument.
func projectArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
