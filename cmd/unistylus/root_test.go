// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"slices"
	"testing"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got, want := getVersionString(), "dev (built from source)"; got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestRootCommandAliases(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(NewApp(Dependencies{}))
	tests := []struct {
		alias string
		want  string
	}{
		{"i", "init"},
		{"g", "generate"},
		{"b", "build"},
		{"d", "clean"},
		{"del", "clean"},
		{"c", "copy"},
		{"rm", "remove"},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			t.Parallel()

			found, _, err := root.Find([]string{tt.alias})
			if err != nil {
				t.Fatalf("Find(%q): %v", tt.alias, err)
			}
			if found.Name() != tt.want {
				t.Errorf("Find(%q) = %q, want %q", tt.alias, found.Name(), tt.want)
			}
		})
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(NewApp(Dependencies{}))
	var names []string
	for _, f := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(f) != nil {
			names = append(names, f)
		}
	}
	if !slices.Equal(names, []string{"verbose", "config"}) {
		t.Errorf("persistent flags = %v", names)
	}
}
