// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/unistylus/unistylus/internal/issue"

	"github.com/charmbracelet/fang"
)

// errorHandler renders actionable errors with their suggestions and, in
// verbose mode, the catalog page of their issue. Other errors get fang's
// default rendering.
func (a *App) errorHandler(w io.Writer, styles fang.Styles, err error) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		fang.DefaultErrorHandler(w, styles, err)
		return
	}

	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), ae.Format(a.verbose))
	page := ae.Issue()
	if page == nil {
		return
	}
	if !a.verbose {
		fmt.Fprintln(w, SubtitleStyle.Render("\nRun again with --verbose for help on this error."))
		return
	}
	rendered, renderErr := page.Render(issue.DefaultStyle)
	if renderErr != nil {
		slog.Warn("rendering issue page", "issue", page.Id(), "error", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}
