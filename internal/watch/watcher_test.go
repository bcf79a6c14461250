// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/go-cmp/cmp"
)

const testDebounce = 50 * time.Millisecond

// startWatcher runs a watcher over root and returns the channel of change
// batches. The watcher stops with the test.
func startWatcher(t *testing.T, opts Options) <-chan []string {
	t.Helper()

	batches := make(chan []string, 16)
	opts.Debounce = testDebounce
	opts.OnChange = func(_ context.Context, changed []string) error {
		batches <- changed
		return nil
	}
	w, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-errCh; err != nil {
			t.Errorf("Run() error = %v", err)
		}
	})
	return batches
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()

	select {
	case b := <-batches:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a change batch")
		return nil
	}
}

func TestWatcher_Coalesces(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	batches := startWatcher(t, Options{Root: root, Patterns: []string{"**/*.scss"}})

	for _, name := range []string{"a.scss", "b.scss", "c.scss"} {
		writeFile(t, filepath.Join(root, name), ".x {}")
		time.Sleep(5 * time.Millisecond)
	}

	got := waitBatch(t, batches)
	for _, want := range []string{"a.scss", "b.scss", "c.scss"} {
		if !slices.Contains(got, want) {
			t.Errorf("batch %v misses %q", got, want)
		}
	}
	if !slices.IsSorted(got) {
		t.Errorf("batch %v is not sorted", got)
	}
}

func TestWatcher_FiltersPatterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	batches := startWatcher(t, Options{
		Root:     root,
		Patterns: []string{"**/*.scss"},
		Ignore:   []string{"skins/**"},
	})

	writeFile(t, filepath.Join(root, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(root, "badge.scss.swp"), "ignored")
	time.Sleep(4 * testDebounce)
	writeFile(t, filepath.Join(root, "badge.scss"), ".badge {}")

	if diff := cmp.Diff([]string{"badge.scss"}, waitBatch(t, batches)); diff != "" {
		t.Errorf("batch mismatch (-want +got):\n%s", diff)
	}
}

func TestWatcher_NewDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	batches := startWatcher(t, Options{Root: root, Patterns: []string{"**/*.scss"}})

	dir := filepath.Join(root, "components", "badge")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	// Give the watcher time to register the new directories.
	time.Sleep(4 * testDebounce)
	writeFile(t, filepath.Join(dir, "default.scss"), "[default] {}")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case b := <-batches:
			if slices.Contains(b, "components/badge/default.scss") {
				return
			}
		case <-deadline:
			t.Fatal("change in a new directory was not reported")
		}
	}
}

func TestWatcher_RunTwice(t *testing.T) {
	t.Parallel()

	w, err := New(Options{Root: t.TempDir()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := w.Run(ctx); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if err := w.Run(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() error = %v, want ErrAlreadyRunning", err)
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	t.Parallel()

	for _, opts := range []Options{
		{Root: t.TempDir(), Patterns: []string{"[unclosed"}},
		{Root: t.TempDir(), Ignore: []string{"{a,b"}},
	} {
		if _, err := New(opts); !errors.Is(err, doublestar.ErrBadPattern) {
			t.Errorf("New(%+v) error = %v, want ErrBadPattern", opts, err)
		}
	}
}

func TestNoisePatterns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel  string
		want bool
	}{
		{rel: ".git/HEAD", want: true},
		{rel: "node_modules/pkg/index.scss", want: true},
		{rel: "components/.badge.scss.swp", want: true},
		{rel: "content/heading.scss~", want: true},
		{rel: ".DS_Store", want: true},
		{rel: "components/badge/default.scss", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			t.Parallel()

			if got := matchAny(noise, tt.rel); got != tt.want {
				t.Errorf("matchAny(noise, %q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}
