// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/unistylus/unistylus/internal/issue"
)

func TestWrapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantIssue bool
	}{
		{"permission", fmt.Errorf("write dist/a.scss: %w", fs.ErrPermission), true},
		{"other", errors.New("disk full"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := WrapError(tt.err, "write output", "dist")
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("WrapError() = %T, want *issue.ActionableError", err)
			}
			if !errors.Is(err, tt.err) {
				t.Error("WrapError() lost the cause")
			}
			gotIssue := ae.Issue() != nil && ae.Issue().Id() == issue.PermissionDeniedId
			if gotIssue != tt.wantIssue {
				t.Errorf("permission issue attached = %v, want %v", gotIssue, tt.wantIssue)
			}
			if ae.HasSuggestions() != tt.wantIssue {
				t.Errorf("HasSuggestions() = %v, want %v", ae.HasSuggestions(), tt.wantIssue)
			}
		})
	}
}
