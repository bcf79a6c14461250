// SPDX-License-Identifier: MPL-2.0

package web

import (
	"path"
	"strings"

	"github.com/unistylus/unistylus/internal/part"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	// Nav is the site navigation, groups in processing order.
	Nav struct {
		Groups []NavGroup
	}

	// NavGroup lists the parts of one group.
	NavGroup struct {
		Name  string
		Title string
		Parts []NavPart
	}

	// NavPart links to a part page. Variant sets list their variants.
	NavPart struct {
		Group      string
		Name       string
		Title      string
		ExportPath string
		// Href is relative to the site root.
		Href     string
		Variants []NavVariant
	}

	// NavVariant is one generated variant of a part.
	NavVariant struct {
		ExportPath string
		Label      string
	}
)

// BuildNav derives the navigation from group results. Every name and label
// comes from splitting export paths on "/" and "-".
func BuildNav(results []part.GroupResult) Nav {
	var nav Nav
	for _, r := range results {
		if len(r.Entries) == 0 {
			continue
		}
		g := NavGroup{Name: r.Group, Title: Title(r.Group)}
		for _, e := range r.Entries {
			g.Parts = append(g.Parts, navPart(e))
		}
		nav.Groups = append(nav.Groups, g)
	}
	return nav
}

func navPart(e part.Entry) NavPart {
	group, name := SplitExportPath(e.Item.ExportPath)
	name = PartName(name)
	p := NavPart{
		Group:      group,
		Name:       name,
		Title:      Title(name),
		ExportPath: e.Item.ExportPath,
		Href:       PageHref(group, name),
	}
	for _, c := range e.Children {
		p.Variants = append(p.Variants, NavVariant{
			ExportPath: c.ExportPath,
			Label:      VariantLabel(name, c.ExportPath),
		})
	}
	return p
}

// SplitExportPath splits "group/name" into its group and name. Paths
// without a group return an empty group.
func SplitExportPath(exportPath string) (group, name string) {
	if g, n, ok := strings.Cut(exportPath, "/"); ok {
		return g, n
	}
	return "", exportPath
}

// PartName strips the aggregator suffix from a name.
func PartName(name string) string {
	return strings.TrimSuffix(name, part.AggregateSuffix)
}

// PageHref is the page path of a part, relative to the site root.
func PageHref(group, name string) string {
	if group == "" {
		return name + ".html"
	}
	return path.Join(group, name+".html")
}

// VariantLabel names a variant by the keys following its part name:
// "components/badge-primary-shade" of "badge" is "primary shade". The
// default variant, whose export path is the part name, is "default".
func VariantLabel(partName, exportPath string) string {
	_, name := SplitExportPath(exportPath)
	keys, ok := strings.CutPrefix(name, partName+"-")
	if !ok {
		return "default"
	}
	return strings.Join(strings.Split(keys, "-"), " ")
}

// Title turns a dash or underscore separated name into a title.
func Title(name string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(words)
}
