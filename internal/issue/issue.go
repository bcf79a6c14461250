// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Catalog identifiers.
const (
	ConfigNotFoundId Id = iota + 1
	ConfigInvalidId
	SourceNotFoundId
	SassNotFoundId
	SassCompileFailedId
	DownloadFailedId
	ConsumerFileInvalidId
	PermissionDeniedId
)

// DefaultStyle is the glamour style used when rendering catalog pages.
const DefaultStyle = "dark"

type (
	// Id identifies a catalog page.
	Id int

	// MarkdownMsg is the Markdown body of a catalog page.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is a catalog page: a Markdown explanation of a failure and what
	// to try next.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Markdown returns the page body followed by its links.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range slices.Concat(i.docLinks, i.extLinks) {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return sb.String()
}

// Render renders the page for the terminal with the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	configNotFoundIssue = &Issue{
		id: ConfigNotFoundId,
		mdMsg: `
# No unistylus rc file found!

The project directory has no ` + "`.unistylusrc.cue`" + `, ` + "`.unistylusrc.json`" + ` or ` + "`.unistylusrc.toml`" + `.

## Things you can try:
- Create one with the defaults:
~~~
$ unistylus init
~~~

- Or point at an existing file:
~~~
$ unistylus generate --config path/to/.unistylusrc.cue
~~~`,
		docLinks: []HttpLink{"https://unistylus.lamnhan.com/guides/configuration"},
	}

	configInvalidIssue = &Issue{
		id: ConfigInvalidId,
		mdMsg: `
# The rc file is not valid!

The configuration did not match the expected schema.

## Common causes:
- A variable name that is not lower snake case (` + "`size_steps`" + `)
- A variable key containing characters other than letters, digits and ` + "`_`" + `
- ` + "`copies`" + ` that is neither a list nor a map of paths

## Example:
~~~cue
src: "src"
out: "dist"
variables: {
	palettes: ["primary", "danger"]
	size_steps: {"1x": 1, "2x": 2}
	fonts: null
}
~~~`,
		docLinks: []HttpLink{"https://unistylus.lamnhan.com/guides/configuration"},
	}

	sourceNotFoundIssue = &Issue{
		id: SourceNotFoundId,
		mdMsg: `
# Source directory not found!

Styles are read from the ` + "`src`" + ` directory of the rc file.

## Things you can try:
- Check the ` + "`src`" + ` value of your rc file
- Run the command from the project root, or pass the project path as argument`,
	}

	sassNotFoundIssue = &Issue{
		id: SassNotFoundId,
		mdMsg: `
# Sass compiler not found!

Building the website compiles every page stylesheet with Dart Sass.

## Things you can try:
- Install Dart Sass:
~~~
$ npm install -g sass
~~~

- Or point at the binary:
~~~cue
sass: binary: "/usr/local/bin/sass"
~~~`,
		extLinks: []HttpLink{"https://sass-lang.com/install"},
	}

	sassCompileFailedIssue = &Issue{
		id: SassCompileFailedId,
		mdMsg: `
# A stylesheet failed to compile!

## Things you can try:
- Run ` + "`unistylus generate`" + ` and check the generated file named above
- Add missing import directories to ` + "`sass.load_paths`" + ``,
	}

	downloadFailedIssue = &Issue{
		id: DownloadFailedId,
		mdMsg: `
# Download failed!

When ` + "`reset.scss`" + ` or ` + "`core.scss`" + ` is missing from the source directory it is downloaded.

## Things you can try:
- Check your network connection
- Add the file to your source directory to skip the download
- Change ` + "`remote.reset`" + ` or ` + "`remote.core`" + ` in your rc file`,
	}

	consumerFileInvalidIssue = &Issue{
		id: ConsumerFileInvalidId,
		mdMsg: `
# The file src/unistylus.scss is not valid!

The file must only contain import lines of one collection:
~~~scss
@import '@unistylus/bootstrap/reset';
@import '@unistylus/bootstrap/core';
@import '@unistylus/bootstrap/skins/dark';
@import '@unistylus/bootstrap/components/button';
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

## Things you can try:
- Check the permissions of the output directory
- Choose another output directory with ` + "`out`" + ` or ` + "`--out`" + ``,
	}

	issues = map[Id]*Issue{
		configNotFoundIssue.Id():      configNotFoundIssue,
		configInvalidIssue.Id():       configInvalidIssue,
		sourceNotFoundIssue.Id():      sourceNotFoundIssue,
		sassNotFoundIssue.Id():        sassNotFoundIssue,
		sassCompileFailedIssue.Id():   sassCompileFailedIssue,
		downloadFailedIssue.Id():      downloadFailedIssue,
		consumerFileInvalidIssue.Id(): consumerFileInvalidIssue,
		permissionDeniedIssue.Id():    permissionDeniedIssue,
	}
)

// Values returns every catalog page ordered by id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
