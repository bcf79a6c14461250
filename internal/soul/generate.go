// SPDX-License-Identifier: MPL-2.0

package soul

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/unistylus/unistylus/internal/config"
	"github.com/unistylus/unistylus/internal/download"
	"github.com/unistylus/unistylus/internal/fsutil"
	"github.com/unistylus/unistylus/internal/issue"
	"github.com/unistylus/unistylus/internal/part"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const (
	// ResetName is the export path of the reset stylesheet.
	ResetName = "reset"
	// CoreName is the export path of the core stylesheet.
	CoreName = "core"
	// FullFile is the bundle importing every top-level stylesheet.
	FullFile = "full.scss"

	// writeLimit bounds concurrent style file writes.
	writeLimit = 16
)

type (
	// Fetcher downloads a text document.
	Fetcher interface {
		FetchText(ctx context.Context, rawURL string) (string, error)
	}

	// Generator runs soul generations against a filesystem.
	Generator struct {
		fs      afero.Fs
		fetcher Fetcher
	}

	// Option configures a Generator.
	Option func(*Generator)

	// Result describes a finished generation.
	Result struct {
		OutDir   string
		Groups   []part.GroupResult
		Manifest part.Manifest
		// Files counts the generated part stylesheets plus full.scss.
		Files int
	}

	// foundation is a top-level stylesheet copied from the source or
	// downloaded when the project does not ship it.
	foundation struct {
		name string
		url  string
	}
)

// WithFetcher replaces the HTTP client used for missing foundation files.
func WithFetcher(f Fetcher) Option {
	return func(g *Generator) { g.fetcher = f }
}

// NewGenerator creates a Generator. Without WithFetcher, foundation files
// are downloaded with a default download.Client.
func NewGenerator(fs afero.Fs, opts ...Option) *Generator {
	g := &Generator{fs: fs}
	for _, opt := range opts {
		opt(g)
	}
	if g.fetcher == nil {
		g.fetcher = download.NewClient()
	}
	return g
}

// Generate clears the output directory and rebuilds it from cfg. Files
// written before a failure are kept.
func (g *Generator) Generate(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	srcDir, outDir := cfg.SrcDir(), cfg.OutDir()
	slog.Debug("generating soul", "src", srcDir, "out", outDir)

	if err := fsutil.ClearDir(g.fs, outDir); err != nil {
		return nil, fsutil.WrapError(err, "clear output directory", outDir)
	}
	if err := fsutil.Copies(g.fs, srcDir, outDir, copySpecs(cfg.Copies)); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("copy resources").
			WithResource(srcDir).
			WithSuggestion("Check the 'copies' entries of your rc file point at existing paths").
			Wrap(err).
			BuildError()
	}
	if !fsutil.Exists(g.fs, srcDir) {
		slog.Warn("source directory not found, only foundation files are generated", "src", srcDir)
	}

	foundations := []foundation{
		{name: ResetName, url: cfg.Remote.Reset},
		{name: CoreName, url: cfg.Remote.Core},
	}
	if err := g.writeFoundations(ctx, srcDir, outDir, foundations); err != nil {
		return nil, err
	}

	results, err := part.NewProcessor(g.fs, cfg.Variables, srcDir, outDir).ProcessGroups(ctx, cfg.ProcessedGroups())
	if err != nil {
		return nil, err
	}

	written, err := g.writeItems(ctx, results)
	if err != nil {
		return nil, fsutil.WrapError(err, "write stylesheets", outDir)
	}

	manifest := part.BuildManifest([]string{ResetName, CoreName}, results)
	fullPath := filepath.Join(outDir, FullFile)
	if err := fsutil.WriteFile(g.fs, fullPath, []byte(FullBundle(manifest))); err != nil {
		return nil, fsutil.WrapError(err, "write bundle", fullPath)
	}

	slog.Debug("soul generated", "out", outDir, "files", written+1)
	return &Result{
		OutDir:   outDir,
		Groups:   results,
		Manifest: manifest,
		Files:    written + 1,
	}, nil
}

// FullBundle renders full.scss: one import per top-level manifest path.
func FullBundle(m part.Manifest) string {
	paths := m.TopLevel()
	lines := make([]string, len(paths))
	for i, p := range paths {
		lines[i] = "@import './" + p + "';"
	}
	return strings.Join(lines, "\n")
}

func (g *Generator) writeFoundations(ctx context.Context, srcDir, outDir string, files []foundation) error {
	eg, egctx := errgroup.WithContext(ctx)
	for _, f := range files {
		eg.Go(func() error {
			return g.writeFoundation(egctx, srcDir, outDir, f)
		})
	}
	return eg.Wait()
}

func (g *Generator) writeFoundation(ctx context.Context, srcDir, outDir string, f foundation) error {
	file := f.name + part.StyleExt
	dst := filepath.Join(outDir, file)

	local := filepath.Join(srcDir, file)
	if fsutil.Exists(g.fs, local) {
		slog.Debug("copying foundation", "file", file)
		return fsutil.CopyPath(g.fs, local, dst)
	}

	slog.Debug("downloading foundation", "file", file, "url", f.url)
	content, err := g.fetcher.FetchText(ctx, f.url)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("download "+file).
			WithResource(f.url).
			WithSuggestions(
				"Check your network connection",
				fmt.Sprintf("Add %s to the source directory to skip the download", file),
				"Point remote."+f.name+" in your rc file at a reachable URL",
			).
			WithIssue(issue.DownloadFailedId).
			Wrap(err).
			BuildError()
	}
	return fsutil.WriteFile(g.fs, dst, []byte(content))
}

// writeItems writes every item of results, plus the "-default" alias of each
// default variant, and returns how many files were written.
func (g *Generator) writeItems(ctx context.Context, results []part.GroupResult) (int, error) {
	var items []part.Item
	for _, r := range results {
		items = append(items, part.Flatten(r.Entries)...)
		for _, e := range r.Entries {
			if alias, ok := e.DefaultAlias(); ok {
				items = append(items, alias)
			}
		}
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(writeLimit)
	for _, it := range items {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			return fsutil.WriteFile(g.fs, it.StylePath, []byte(it.StyleContent))
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}
	return len(items), nil
}

func copySpecs(entries []config.CopyEntry) []fsutil.CopySpec {
	specs := make([]fsutil.CopySpec, len(entries))
	for i, e := range entries {
		specs[i] = fsutil.CopySpec{From: e.From, To: e.To}
	}
	return specs
}
