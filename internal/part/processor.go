// SPDX-License-Identifier: MPL-2.0

package part

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/unistylus/unistylus/internal/variable"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

type (
	// Processor expands the parts of group directories under a source root.
	Processor struct {
		fs       afero.Fs
		srcDir   string
		outDir   string
		expander *Expander
	}

	// GroupResult is the ordered outcome of processing one group.
	GroupResult struct {
		Group   string
		Entries []Entry
	}
)

// NewProcessor creates a Processor reading parts from srcDir. Item style
// paths are resolved under outDir.
func NewProcessor(fs afero.Fs, vars *variable.Table, srcDir, outDir string) *Processor {
	return &Processor{
		fs:       fs,
		srcDir:   srcDir,
		outDir:   outDir,
		expander: NewExpander(fs, vars),
	}
}

// ProcessGroups processes groups concurrently and returns their results in
// the order the groups were given.
func (p *Processor) ProcessGroups(ctx context.Context, groups []string) ([]GroupResult, error) {
	results := make([]GroupResult, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	for i, group := range groups {
		g.Go(func() error {
			entries, err := p.ProcessGroup(gctx, group)
			if err != nil {
				return err
			}
			results[i] = GroupResult{Group: group, Entries: entries}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ProcessGroup expands every part of a group. Entries follow the sorted
// directory listing regardless of which sibling finishes first. A missing
// group directory yields no entries.
func (p *Processor) ProcessGroup(ctx context.Context, group string) ([]Entry, error) {
	groupDir := filepath.Join(p.srcDir, group)
	exists, err := afero.DirExists(p.fs, groupDir)
	if err != nil {
		return nil, fmt.Errorf("process group %s: %w", group, err)
	}
	if !exists {
		return nil, nil
	}

	infos, err := afero.ReadDir(p.fs, groupDir)
	if err != nil {
		return nil, fmt.Errorf("process group %s: %w", group, err)
	}
	infos = partEntries(infos)

	entries := make([]Entry, len(infos))
	g, gctx := errgroup.WithContext(ctx)
	for i, info := range infos {
		g.Go(func() error {
			entry, err := p.processPart(gctx, groupDir, info.Name())
			if err != nil {
				return fmt.Errorf("process group %s: %w", group, err)
			}
			entries[i] = promoteEntry(group, p.outDir, entry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// processPart classifies and expands one group entry with group-local paths.
func (p *Processor) processPart(ctx context.Context, groupDir, name string) (Entry, error) {
	if partName := strings.TrimSuffix(name, StyleExt); HasDelimiter(partName) {
		slog.Warn("part name contains a variant delimiter, its export paths are ambiguous",
			"part", filepath.Join(filepath.Base(groupDir), name))
	}
	if Classify(name, nil) == LooseFile {
		content, err := readTemplate(ctx, p.fs, filepath.Join(groupDir, name))
		if err != nil {
			return Entry{}, err
		}
		return Entry{
			Shape: LooseFile,
			Item: Item{
				ExportPath:   strings.TrimSuffix(name, StyleExt),
				StyleContent: content,
			},
		}, nil
	}

	partDir := filepath.Join(groupDir, name)
	children, err := listNames(p.fs, partDir)
	if err != nil {
		return Entry{}, err
	}

	switch Classify(name, children) {
	case SingleDefinition:
		tmpl, err := readTemplate(ctx, p.fs, filepath.Join(partDir, children[0]))
		if err != nil {
			return Entry{}, err
		}
		return Entry{
			Shape: SingleDefinition,
			Item: Item{
				ExportPath:   name,
				StyleContent: substitute(tmpl, TokenBase, selector(name)),
			},
		}, nil
	default:
		aggregator, items, err := p.expander.Expand(ctx, partDir, name, children)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Shape: VariantSet, Item: aggregator, Children: items}, nil
	}
}

// HasDelimiter reports whether a part name contains "-" or "/", the
// delimiters export paths are split on.
func HasDelimiter(name string) bool {
	return strings.ContainsAny(name, "-/")
}

// promoteEntry prefixes every item of a group-local entry with its group.
func promoteEntry(group, outDir string, e Entry) Entry {
	e.Item = promote(group, outDir, e.Item)
	if e.Children != nil {
		children := make([]Item, len(e.Children))
		for i, c := range e.Children {
			children[i] = promote(group, outDir, c)
		}
		e.Children = children
	}
	return e
}

// partEntries keeps style files and folders. Other files (docs, editor
// leftovers) live next to parts without being parts themselves.
func partEntries(infos []os.FileInfo) []os.FileInfo {
	kept := infos[:0:0]
	for _, info := range infos {
		if info.IsDir() || strings.HasSuffix(info.Name(), StyleExt) {
			kept = append(kept, info)
		}
	}
	return kept
}

func listNames(fs afero.Fs, dir string) ([]string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}
	return names, nil
}
