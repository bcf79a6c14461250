// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/unistylus/unistylus/internal/variable"

	"github.com/google/go-cmp/cmp"
)

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "blank out", mutate: func(c *Config) { c.Out = "  " }, wantErr: ErrInvalidDirPath},
		{name: "blank web out", mutate: func(c *Config) { c.Web.Out = "" }, wantErr: ErrInvalidDirPath},
		{name: "nested group", mutate: func(c *Config) { c.Groups = []string{"a/b"} }, wantErr: ErrInvalidGroupName},
		{name: "dashed group", mutate: func(c *Config) { c.Groups = []string{"call-outs"} }, wantErr: ErrInvalidGroupName},
		{name: "dashed exclude", mutate: func(c *Config) { c.Exclude = []string{"call-outs"} }, wantErr: ErrInvalidGroupName},
		{name: "copy without target", mutate: func(c *Config) { c.Copies = []CopyEntry{{From: "x"}} }, wantErr: ErrInvalidCopyEntry},
		{
			name: "axis key with delimiter",
			mutate: func(c *Config) {
				c.Variables.Set("palettes", variable.Sequence("dark-blue"))
			},
			wantErr: variable.ErrInvalidTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			valid, errs := cfg.IsValid()
			if tt.wantErr == nil {
				if !valid {
					t.Fatalf("IsValid() = false, %v", errs)
				}
				return
			}
			if valid || len(errs) != 1 {
				t.Fatalf("IsValid() = %v, %v; want one error", valid, errs)
			}
			if !errors.Is(errs[0], ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", errs[0])
			}
			var cfgErr *InvalidConfigError
			if !errors.As(errs[0], &cfgErr) {
				t.Fatalf("error should be *InvalidConfigError, got %T", errs[0])
			}
			if !errors.Is(cfgErr.FieldErrors[0], tt.wantErr) {
				t.Errorf("field error = %v, want %v", cfgErr.FieldErrors[0], tt.wantErr)
			}
		})
	}
}

func TestConfig_IsValidFieldOrder(t *testing.T) {
	t.Parallel()

	for range 20 {
		cfg := DefaultConfig()
		cfg.Src, cfg.Out, cfg.Web.Out = "", " ", ""
		_, errs := cfg.IsValid()
		var cfgErr *InvalidConfigError
		if len(errs) != 1 || !errors.As(errs[0], &cfgErr) {
			t.Fatalf("IsValid() errors = %v, want one *InvalidConfigError", errs)
		}
		var fields []string
		for _, err := range cfgErr.FieldErrors {
			var dirErr *InvalidDirPathError
			if !errors.As(err, &dirErr) {
				t.Fatalf("field error %T, want *InvalidDirPathError", err)
			}
			fields = append(fields, dirErr.Field)
		}
		if diff := cmp.Diff([]string{"src", "out", "web.out"}, fields); diff != "" {
			t.Fatalf("field error order mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestConfig_Resolve(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.ProjectDir = "/p"
	if got := cfg.Resolve("a/b"); got != filepath.Join("/p", "a", "b") {
		t.Errorf("Resolve(relative) = %q", got)
	}
	if got := cfg.Resolve("/abs/dir/"); got != "/abs/dir" {
		t.Errorf("Resolve(absolute) = %q", got)
	}
	cfg.Web.Out = "/site"
	if got := cfg.WebOutDir(); got != "/site" {
		t.Errorf("WebOutDir() = %q", got)
	}
}

func TestConfig_ProcessedGroups(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Groups = []string{"skins", "utilities", "content"}
	got := cfg.ProcessedGroups()
	if len(got) != 2 || got[0] != "utilities" || got[1] != "content" {
		t.Errorf("ProcessedGroups() = %v", got)
	}
}
