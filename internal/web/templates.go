// SPDX-License-Identifier: MPL-2.0

package web

import (
	"embed"
	"html/template"
)

var (
	//go:embed templates
	templates embed.FS

	//go:embed assets/index.css
	indexCSS []byte

	//go:embed assets/index.js
	indexJS []byte

	indexTemplate = template.Must(template.New("").ParseFS(templates, "templates/layout.tmpl", "templates/index.tmpl")).Lookup("layout")
	partTemplate  = template.Must(template.New("").ParseFS(templates, "templates/layout.tmpl", "templates/part.tmpl")).Lookup("layout")
)

type (
	// pageData feeds the layout and both page bodies.
	pageData struct {
		SiteTitle string
		PageTitle string
		// Root is the relative path from the page back to the site root.
		Root        string
		Nav         Nav
		Skins       []string
		Stylesheets []string

		Part     *NavPart
		Sections []section
		Docs     template.HTML
	}

	// section is one item rendered on a part page.
	section struct {
		ExportPath string
		Selectors  []string
		Source     template.HTML
	}
)
