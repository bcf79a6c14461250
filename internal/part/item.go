// SPDX-License-Identifier: MPL-2.0

package part

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// StyleExt is the extension of style source files.
	StyleExt = ".scss"
	// AggregateSuffix is appended to a part name to form its aggregator export path.
	AggregateSuffix = "-all"
	// DefaultSuffix names the alias written next to a default variant.
	DefaultSuffix = "-default"
)

// ErrExportPathCollision is returned when a variant would be written to a
// path already claimed by its aggregator or default alias.
var ErrExportPathCollision = errors.New("export path collision")

type (
	// Item is one generated stylesheet.
	Item struct {
		// ExportPath is the logical identifier, e.g. "components/badge-primary".
		ExportPath string `json:"exportPath" yaml:"exportPath"`
		// StylePath is the physical destination of the style source.
		StylePath string `json:"stylePath" yaml:"stylePath"`
		// StyleContent is the substituted style source.
		StyleContent string `json:"styleContent" yaml:"styleContent"`
	}

	// ExportPathCollisionError names the variant that clashes with a
	// reserved export path of its variant set.
	ExportPathCollisionError struct {
		ExportPath string
	}

	// Entry is one part of a group result. Variant sets carry their
	// aggregator in Item and the generated variants in Children; other shapes
	// have no children.
	Entry struct {
		Shape    Shape
		Item     Item
		Children []Item
	}
)

// IsAggregate reports whether the entry is an aggregator with variant children.
func (e Entry) IsAggregate() bool { return e.Shape == VariantSet }

// Items returns the entry's item followed by its children.
func (e Entry) Items() []Item {
	items := make([]Item, 0, 1+len(e.Children))
	items = append(items, e.Item)
	return append(items, e.Children...)
}

// DefaultAlias returns the "-default" copy of the entry's default variant.
// Only variant sets with a default variant have one.
func (e Entry) DefaultAlias() (Item, bool) {
	if !e.IsAggregate() {
		return Item{}, false
	}
	base := strings.TrimSuffix(e.Item.ExportPath, AggregateSuffix)
	for _, c := range e.Children {
		if c.ExportPath != base {
			continue
		}
		c.ExportPath += DefaultSuffix
		c.StylePath = strings.TrimSuffix(c.StylePath, StyleExt) + DefaultSuffix + StyleExt
		return c, true
	}
	return Item{}, false
}

// Flatten returns every item of entries, aggregators before their children.
func Flatten(entries []Entry) []Item {
	var items []Item
	for _, e := range entries {
		items = append(items, e.Items()...)
	}
	return items
}

// StylePathFor derives the physical style path of an export path under outDir.
func StylePathFor(outDir, exportPath string) string {
	return filepath.Join(outDir, filepath.FromSlash(exportPath)+StyleExt)
}

// promote prefixes a group-local item with its group and resolves its
// destination. It is applied exactly once per item.
func promote(group, outDir string, it Item) Item {
	it.ExportPath = group + "/" + it.ExportPath
	it.StylePath = StylePathFor(outDir, it.ExportPath)
	return it
}

// importList renders the aggregator body referencing each child export path.
func importList(children []Item) string {
	lines := make([]string, len(children))
	for i, c := range children {
		lines[i] = "@import './" + c.ExportPath + "';"
	}
	return strings.Join(lines, "\n")
}

// Error implements the error interface for ExportPathCollisionError.
func (e *ExportPathCollisionError) Error() string {
	return fmt.Sprintf("variant %q collides with a reserved export path", e.ExportPath)
}

// Unwrap returns ErrExportPathCollision for errors.Is() compatibility.
func (e *ExportPathCollisionError) Unwrap() error { return ErrExportPathCollision }
