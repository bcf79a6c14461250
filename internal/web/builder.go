// SPDX-License-Identifier: MPL-2.0

package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/unistylus/unistylus/internal/config"
	"github.com/unistylus/unistylus/internal/fsutil"
	"github.com/unistylus/unistylus/internal/issue"
	"github.com/unistylus/unistylus/internal/part"
	"github.com/unistylus/unistylus/internal/sass"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	// IndexFile is the site entry page.
	IndexFile = "index.html"

	skinsPattern = config.SkinsGroup + "/*" + part.StyleExt
	docExt       = ".md"
)

type (
	// Builder renders the website of a generated soul.
	Builder struct {
		fs           afero.Fs
		compiler     sass.Compiler
		compileLimit int
	}

	// BuilderOption configures a Builder.
	BuilderOption func(*Builder)

	// Result describes a finished website build.
	Result struct {
		OutDir string
		// Pages counts the HTML pages written, the index included.
		Pages int
		Skins []string
	}

	// site is the shared state of one build.
	site struct {
		cfg       *config.Config
		outDir    string
		nav       Nav
		skins     []string
		loadPaths []string
		// compiles bounds the compiler runs in flight across the whole build.
		compiles *semaphore.Weighted
	}
)

// WithCompileLimit caps how many stylesheets are compiled at once. Values
// below one are ignored.
func WithCompileLimit(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.compileLimit = n
		}
	}
}

// NewBuilder creates a Builder compiling stylesheets with compiler. Without
// WithCompileLimit, one compile runs per CPU.
func NewBuilder(fs afero.Fs, compiler sass.Compiler, opts ...BuilderOption) *Builder {
	b := &Builder{fs: fs, compiler: compiler, compileLimit: runtime.NumCPU()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build clears the website directory of cfg and renders the index and one
// page per entry of results. Every item is compiled once.
func (b *Builder) Build(ctx context.Context, cfg *config.Config, results []part.GroupResult) (*Result, error) {
	s := &site{
		cfg:       cfg,
		outDir:    cfg.WebOutDir(),
		nav:       BuildNav(results),
		loadPaths: append([]string{cfg.OutDir()}, cfg.LoadPaths()...),
		compiles:  semaphore.NewWeighted(int64(b.compileLimit)),
	}
	slog.Debug("building website", "out", s.outDir, "compile_limit", b.compileLimit)

	if err := fsutil.ClearDir(b.fs, s.outDir); err != nil {
		return nil, fsutil.WrapError(err, "clear website directory", s.outDir)
	}
	if err := b.writeAssets(s.outDir); err != nil {
		return nil, err
	}

	skins, err := b.compileSkins(ctx, s)
	if err != nil {
		return nil, err
	}
	s.skins = skins

	if err := b.writePage(indexTemplate, filepath.Join(s.outDir, IndexFile), s.pageData("", "")); err != nil {
		return nil, err
	}

	var entries []part.Entry
	for _, r := range results {
		entries = append(entries, r.Entries...)
	}
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(b.compileLimit)
	for _, e := range entries {
		eg.Go(func() error {
			return b.buildPart(egctx, s, e, navPart(e))
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("website built", "out", s.outDir, "pages", len(entries)+1)
	return &Result{OutDir: s.outDir, Pages: len(entries) + 1, Skins: skins}, nil
}

// buildPart compiles the items of one entry and writes its stylesheet and
// page. The page links the compiled entry item, which for variant sets
// imports every variant.
func (b *Builder) buildPart(ctx context.Context, s *site, e part.Entry, np NavPart) error {
	items := e.Items()
	sections := make([]section, len(items))
	compiled := make([]string, len(items))

	eg, egctx := errgroup.WithContext(ctx)
	for i, it := range items {
		eg.Go(func() error {
			css, err := b.compile(egctx, s, it)
			if err != nil {
				return err
			}
			source, err := Highlight(it.StyleContent)
			if err != nil {
				return fmt.Errorf("highlight %s: %w", it.ExportPath, err)
			}
			selectors, err := Selectors(css)
			if err != nil {
				slog.Debug("listing selectors failed", "part", it.ExportPath, "error", err)
			}
			compiled[i] = css
			sections[i] = section{ExportPath: it.ExportPath, Selectors: selectors, Source: source}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	cssRel := strings.TrimSuffix(np.Href, ".html") + ".css"
	if err := fsutil.WriteFile(b.fs, filepath.Join(s.outDir, filepath.FromSlash(cssRel)), []byte(compiled[0])); err != nil {
		return err
	}

	docs, err := b.readDocs(s.cfg.SrcDir(), np)
	if err != nil {
		return err
	}

	data := s.pageData(np.Href, np.Title)
	data.Part = &np
	data.Sections = sections
	data.Docs = docs
	data.Stylesheets = []string{path.Base(cssRel)}
	return b.writePage(partTemplate, filepath.Join(s.outDir, filepath.FromSlash(np.Href)), data)
}

// compile turns an item into CSS. Relative imports of generated items
// resolve against the item's own directory.
func (b *Builder) compile(ctx context.Context, s *site, it part.Item) (string, error) {
	loadPaths := s.loadPaths
	if it.StylePath != "" {
		loadPaths = slices.Concat([]string{filepath.Dir(it.StylePath)}, s.loadPaths)
	}
	if err := s.compiles.Acquire(ctx, 1); err != nil {
		return "", err
	}
	css, err := b.compiler.Compile(ctx, it.StyleContent, loadPaths)
	s.compiles.Release(1)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", issue.NewErrorContext().
			WithOperation("compile "+it.ExportPath).
			WithResource(it.StylePath).
			WithSuggestions(
				"Run 'unistylus generate' first so imported parts exist",
				"Add the directories of third-party imports to sass.load_paths",
			).
			WithIssue(issue.SassCompileFailedId).
			Wrap(err).
			BuildError()
	}
	return css, nil
}

// compileSkins compiles src/skins/*.scss into skins/<name>.css and returns
// the skin names in order.
func (b *Builder) compileSkins(ctx context.Context, s *site) ([]string, error) {
	srcDir := s.cfg.SrcDir()
	if !fsutil.Exists(b.fs, srcDir) {
		return nil, nil
	}
	matches, err := fsutil.Glob(b.fs, srcDir, skinsPattern)
	if err != nil {
		return nil, err
	}
	slices.Sort(matches)

	skins := make([]string, len(matches))
	eg, egctx := errgroup.WithContext(ctx)
	for i, m := range matches {
		eg.Go(func() error {
			src := filepath.Join(srcDir, filepath.FromSlash(m))
			content, err := afero.ReadFile(b.fs, src)
			if err != nil {
				return fmt.Errorf("read skin %s: %w", m, err)
			}
			name := strings.TrimSuffix(path.Base(m), part.StyleExt)
			css, err := b.compile(egctx, s, part.Item{ExportPath: config.SkinsGroup + "/" + name, StylePath: src, StyleContent: string(content)})
			if err != nil {
				return err
			}
			skins[i] = name
			return fsutil.WriteFile(b.fs, filepath.Join(s.outDir, config.SkinsGroup, name+".css"), []byte(css))
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return skins, nil
}

// readDocs renders <src>/<group>/<name>.md when present.
func (b *Builder) readDocs(srcDir string, np NavPart) (template.HTML, error) {
	docPath := filepath.Join(srcDir, np.Group, np.Name+docExt)
	data, err := afero.ReadFile(b.fs, docPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read docs %s: %w", docPath, err)
	}
	html, err := RenderMarkdown(data)
	if err != nil {
		return "", fmt.Errorf("render docs %s: %w", docPath, err)
	}
	return html, nil
}

func (b *Builder) writeAssets(outDir string) error {
	var highlight bytes.Buffer
	if err := WriteHighlightCSS(&highlight); err != nil {
		return fmt.Errorf("highlight stylesheet: %w", err)
	}
	assets := map[string][]byte{
		"index.css":     indexCSS,
		"index.js":      indexJS,
		"highlight.css": highlight.Bytes(),
	}
	for name, data := range assets {
		if err := fsutil.WriteFile(b.fs, filepath.Join(outDir, name), data); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) writePage(tmpl *template.Template, dst string, data pageData) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", dst, err)
	}
	return fsutil.WriteFile(b.fs, dst, buf.Bytes())
}

// pageData returns the layout data of the page at href.
func (s *site) pageData(href, title string) pageData {
	return pageData{
		SiteTitle: s.cfg.Web.Title,
		PageTitle: title,
		Root:      strings.Repeat("../", strings.Count(href, "/")),
		Nav:       s.nav,
		Skins:     s.skins,
	}
}
