// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"errors"
	"io/fs"

	"github.com/unistylus/unistylus/internal/issue"
)

// WrapError turns a filesystem error of op on path into an actionable
// error. Permission failures point at the permission-denied issue page.
func WrapError(err error, op, path string) error {
	ctx := issue.NewErrorContext().
		WithOperation(op).
		WithResource(path).
		Wrap(err)
	if errors.Is(err, fs.ErrPermission) {
		ctx.WithSuggestion("Check the permissions of " + path).
			WithIssue(issue.PermissionDeniedId)
	}
	return ctx.BuildError()
}
