// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestValues_CoverEveryId(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(PermissionDeniedId) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), PermissionDeniedId)
	}
	for i, v := range values {
		if want := Id(i + 1); v.Id() != want {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, v.Id(), want)
		}
		if strings.TrimSpace(string(v.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", v.Id())
		}
	}
}

func TestGet_Unknown(t *testing.T) {
	t.Parallel()

	if got := Get(Id(999)); got != nil {
		t.Errorf("Get(999) = %v, want nil", got)
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	t.Parallel()

	issue := Get(ConfigNotFoundId)
	links := issue.DocLinks()
	if len(links) == 0 {
		t.Fatal("DocLinks() is empty")
	}
	links[0] = "modified"
	if issue.DocLinks()[0] == "modified" {
		t.Error("DocLinks() must return a copy")
	}
}

func TestIssue_Markdown(t *testing.T) {
	t.Parallel()

	md := Get(SassNotFoundId).Markdown()
	for _, want := range []string{"Sass compiler not found", "## See also", "<https://sass-lang.com/install>"} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() missing %q\ngot:\n%s", want, md)
		}
	}

	if strings.Contains(Get(ConsumerFileInvalidId).Markdown(), "See also") {
		t.Error("an issue without links must not render a See also section")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	out, err := Get(ConfigNotFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "unistylus init") {
		t.Errorf("Render() output missing command hint:\n%s", out)
	}
}

func TestActionableError_Issue(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("download core").
		WithIssue(DownloadFailedId).
		Wrap(errors.New("timeout")).
		Build()
	if got := err.Issue(); got == nil || got.Id() != DownloadFailedId {
		t.Errorf("Issue() = %v, want download issue", got)
	}

	if (&ActionableError{Operation: "x"}).Issue() != nil {
		t.Error("Issue() without id must be nil")
	}
}
