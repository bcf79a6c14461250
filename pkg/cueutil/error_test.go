// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewValidationError(t *testing.T) {
	t.Parallel()

	if err := NewValidationError(nil, ".unistylusrc.cue"); err != nil {
		t.Errorf("NewValidationError(nil) = %v, want nil", err)
	}

	err := NewValidationError(errors.New("some error"), ".unistylusrc.cue")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("error %v does not wrap ErrValidation", err)
	}
	if got, want := err.Error(), ".unistylusrc.cue: some error"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{
		File: ".unistylusrc.json",
		Issues: []FieldIssue{
			{Path: "groups[2]", Message: `invalid value "a b"`},
			{Message: "unexpected end of input"},
		},
	}
	want := ".unistylusrc.json: validation failed:\n  groups[2]: invalid value \"a b\"\n  unexpected end of input"
	if diff := cmp.Diff(want, err.Error()); diff != "" {
		t.Errorf("Error() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path []string
		want string
	}{
		{"empty path", nil, ""},
		{"single element", []string{"src"}, "src"},
		{"nested path", []string{"remote", "core"}, "remote.core"},
		{"array index", []string{"groups", "0"}, "groups[0]"},
		{"numeric-looking map key", []string{"variables", "size_steps", "1x"}, "variables.size_steps.1x"},
		{"leading number", []string{"0", "name"}, "0.name"},
		{"nested arrays", []string{"items", "0", "values", "1"}, "items[0].values[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := formatPath(tt.path); got != tt.want {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, false},
		{"within limit", 11, false},
		{"exact limit", 100, false},
		{"over limit", 101, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckFileSize(make([]byte, tt.size), 100, ".unistylusrc.cue")
			if !tt.wantErr {
				if err != nil {
					t.Errorf("CheckFileSize() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrFileTooLarge) {
				t.Fatalf("CheckFileSize() = %v, want ErrFileTooLarge", err)
			}
			for _, s := range []string{".unistylusrc.cue", "101", "100"} {
				if !strings.Contains(err.Error(), s) {
					t.Errorf("error %q should contain %q", err, s)
				}
			}
		})
	}
}
