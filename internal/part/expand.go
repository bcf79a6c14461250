// SPDX-License-Identifier: MPL-2.0

package part

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/unistylus/unistylus/internal/variable"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

type (
	// Expander turns a variant folder into its default and axis variants.
	Expander struct {
		fs   afero.Fs
		vars *variable.Table
	}

	// expansion is one template read plus the pure function that expands it.
	// Units are planned in output order and may be read concurrently.
	expansion struct {
		template string
		expand   func(name, tmpl string) []Item
	}
)

// NewExpander creates an Expander reading templates from fs.
func NewExpander(fs afero.Fs, vars *variable.Table) *Expander {
	return &Expander{fs: fs, vars: vars}
}

// Expand produces the aggregator and the children of the variant folder dir
// named name, whose listing is children. Children are ordered: default first,
// then simple axes in table order, then combined axes in table order, each
// axis in its nested-loop order. Export paths are local to the group.
func (e *Expander) Expand(ctx context.Context, dir, name string, children []string) (Item, []Item, error) {
	units := e.plan(children)
	results := make([][]Item, len(units))

	g, gctx := errgroup.WithContext(ctx)
	for i, u := range units {
		g.Go(func() error {
			tmpl, err := readTemplate(gctx, e.fs, filepath.Join(dir, u.template))
			if err != nil {
				return err
			}
			results[i] = u.expand(name, tmpl)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Item{}, nil, fmt.Errorf("expand %s: %w", name, err)
	}

	items := make([]Item, 0, len(units))
	for _, r := range results {
		items = append(items, r...)
	}
	if err := checkReserved(name, items); err != nil {
		return Item{}, nil, fmt.Errorf("expand %s: %w", name, err)
	}
	aggregator := Item{
		ExportPath:   name + AggregateSuffix,
		StyleContent: importList(items),
	}
	return aggregator, items, nil
}

// checkReserved rejects variants that would overwrite the aggregator or
// the default alias. Only the default variant may use the bare name.
func checkReserved(name string, items []Item) error {
	reserved := []string{name + AggregateSuffix, name + DefaultSuffix}
	for _, it := range items {
		if slices.Contains(reserved, it.ExportPath) {
			return &ExportPathCollisionError{ExportPath: it.ExportPath}
		}
	}
	return nil
}

// plan lists the expansions a folder listing supports, in output order.
func (e *Expander) plan(children []string) []expansion {
	present := make(map[string]bool, len(children))
	for _, c := range children {
		present[c] = true
	}

	var units []expansion
	if present[DefaultTemplate] {
		units = append(units, expansion{template: DefaultTemplate, expand: func(name, tmpl string) []Item {
			return []Item{ExpandDefault(name, tmpl)}
		}})
	}

	names := e.vars.Names()
	for _, axisName := range names {
		if variable.IsCombined(axisName) {
			continue
		}
		axis, ok := e.vars.Lookup(axisName)
		if !ok || !present[axisName+StyleExt] {
			continue
		}
		units = append(units, expansion{template: axisName + StyleExt, expand: func(name, tmpl string) []Item {
			return ExpandSimple(name, axis, tmpl)
		}})
	}

	for _, axisName := range names {
		if !variable.IsCombined(axisName) {
			continue
		}
		if _, ok := e.vars.Lookup(axisName); !ok || !present[axisName+StyleExt] {
			continue
		}
		axes, ok := e.resolveCombined(axisName)
		if !ok {
			continue
		}
		units = append(units, expansion{template: axisName + StyleExt, expand: func(name, tmpl string) []Item {
			return ExpandCombined(name, axes, tmpl)
		}})
	}
	return units
}

// resolveCombined resolves the component axes of a combined axis. The first
// two components are required; a third one is used only when it resolves.
// Names with more than MaxCombinedDepth components never resolve.
func (e *Expander) resolveCombined(axisName string) ([]variable.Axis, bool) {
	components := variable.SplitCombined(axisName)
	if len(components) > variable.MaxCombinedDepth {
		return nil, false
	}
	first, ok1 := e.vars.Lookup(components[0])
	second, ok2 := e.vars.Lookup(components[1])
	if !ok1 || !ok2 {
		return nil, false
	}
	axes := []variable.Axis{first, second}
	if len(components) == 3 {
		if third, ok := e.vars.Lookup(components[2]); ok {
			axes = append(axes, third)
		}
	}
	return axes, true
}

// ExpandDefault substitutes the default selector into the default template.
func ExpandDefault(name, tmpl string) Item {
	return Item{
		ExportPath:   name,
		StyleContent: substitute(tmpl, TokenDefault, selector(name)+", "+selector(name+DefaultSuffix)),
	}
}

// ExpandSimple produces one item per axis entry.
func ExpandSimple(name string, axis variable.Axis, tmpl string) []Item {
	entries := axis.Entries()
	items := make([]Item, len(entries))
	for i, entry := range entries {
		exportPath := name + "-" + entry.Key
		items[i] = Item{
			ExportPath: exportPath,
			StyleContent: substitute(tmpl,
				TokenVariant, selector(exportPath),
				TokenKey, entry.Key,
				TokenValue, entry.Value,
			),
		}
	}
	return items
}

// ExpandCombined produces one item per combination of the component axes, the
// first axis varying slowest. It expands nothing for fewer than two or more
// than MaxCombinedDepth axes.
func ExpandCombined(name string, axes []variable.Axis, tmpl string) []Item {
	if len(axes) < 2 || len(axes) > variable.MaxCombinedDepth {
		return nil
	}
	var items []Item
	for _, combo := range product(axes) {
		keys := make([]string, len(combo))
		oldnew := make([]string, 0, 2+4*len(combo))
		for i, entry := range combo {
			keys[i] = entry.Key
			oldnew = append(oldnew,
				KeyToken(i+1), entry.Key,
				ValueToken(i+1), entry.Value,
			)
		}
		exportPath := name + "-" + strings.Join(keys, "-")
		oldnew = append(oldnew, TokenVariant, selector(exportPath))
		items = append(items, Item{
			ExportPath:   exportPath,
			StyleContent: substitute(tmpl, oldnew...),
		})
	}
	return items
}

// product returns the Cartesian product of the axes' entries in nested-loop
// order: outer loop over the first axis, inner loop over the last.
func product(axes []variable.Axis) [][]variable.Entry {
	combos := [][]variable.Entry{{}}
	for _, axis := range axes {
		entries := axis.Entries()
		next := make([][]variable.Entry, 0, len(combos)*len(entries))
		for _, prefix := range combos {
			for _, entry := range entries {
				combo := make([]variable.Entry, len(prefix), len(prefix)+1)
				copy(combo, prefix)
				next = append(next, append(combo, entry))
			}
		}
		combos = next
	}
	return combos
}

func readTemplate(ctx context.Context, fs afero.Fs, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(data), nil
}
