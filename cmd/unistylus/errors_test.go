// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/unistylus/unistylus/internal/issue"

	"github.com/charmbracelet/fang"
)

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	actionable := issue.NewErrorContext().
		WithOperation("download core.scss").
		WithResource("https://example.com/core.scss").
		WithSuggestion("Check your network connection").
		WithIssue(issue.DownloadFailedId).
		Wrap(errors.New("connection refused")).
		BuildError()

	tests := []struct {
		name    string
		verbose bool
		want    []string
		notWant []string
	}{
		{
			name:    "concise",
			want:    []string{"Error:", "failed to download core.scss", "Check your network connection", "--verbose"},
			notWant: []string{"Error chain:"},
		},
		{
			name:    "verbose",
			verbose: true,
			want:    []string{"Error chain:", "connection refused", "Download"},
			notWant: []string{"Run again with --verbose"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := NewApp(Dependencies{})
			app.verbose = tt.verbose
			var buf bytes.Buffer
			app.errorHandler(&buf, fang.Styles{}, actionable)

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output unexpectedly contains %q:\n%s", w, out)
				}
			}
		})
	}
}
