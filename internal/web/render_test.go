// SPDX-License-Identifier: MPL-2.0

package web

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHighlight(t *testing.T) {
	t.Parallel()

	got, err := Highlight(".nav > .item { color: #{$value}; }")
	if err != nil {
		t.Fatalf("Highlight() error = %v", err)
	}
	html := string(got)
	if !strings.Contains(html, `class="chroma"`) {
		t.Errorf("Highlight() output lacks chroma classes:\n%s", html)
	}
	if !strings.Contains(html, "&gt;") {
		t.Errorf("Highlight() left the combinator unescaped:\n%s", html)
	}
}

func TestWriteHighlightCSS(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteHighlightCSS(&buf); err != nil {
		t.Fatalf("WriteHighlightCSS() error = %v", err)
	}
	if !strings.Contains(buf.String(), ".chroma") {
		t.Errorf("stylesheet lacks .chroma rules:\n%s", buf.String())
	}
}

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	got, err := RenderMarkdown([]byte("# Badge\n\nUse `.badge` on inline labels.\n\n<script>alert(1)</script>\n"))
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	html := string(got)
	for _, want := range []string{"<h1>Badge</h1>", "<code>.badge</code>"} {
		if !strings.Contains(html, want) {
			t.Errorf("RenderMarkdown() missing %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<script") {
		t.Errorf("RenderMarkdown() kept a script tag:\n%s", html)
	}
}

func TestSelectors(t *testing.T) {
	t.Parallel()

	css := `.badge, .badge-default { display: inline-block; }
@media (min-width: 600px) {
  .badge-lg { font-size: 1.2rem; }
  .badge { padding: 0 4px; }
}
@import url("x.css");
`
	got, err := Selectors(css)
	if err != nil {
		t.Fatalf("Selectors() error = %v", err)
	}
	want := []string{".badge", ".badge-default", ".badge-lg"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Selectors() mismatch (-want +got):\n%s", diff)
	}
}
