// SPDX-License-Identifier: MPL-2.0

package soul

import (
	"errors"
	"testing"

	"github.com/unistylus/unistylus/internal/part"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

func testManifest() part.Manifest {
	return part.Manifest{
		part.PathNode("reset"),
		part.PathNode("components/badge-all"),
		part.ListNode([]string{"components/badge", "components/badge-primary"}),
	}
}

func TestEncodeManifest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		m      part.Manifest
		format APIFormat
		want   string
	}{
		{
			name:   "json is compact",
			m:      testManifest(),
			format: APIFormatJSON,
			want:   `["reset","components/badge-all",["components/badge","components/badge-primary"]]`,
		},
		{
			name:   "empty json",
			format: APIFormatJSON,
			want:   `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := EncodeManifest(tt.m, tt.format)
			if err != nil {
				t.Fatalf("EncodeManifest() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("EncodeManifest() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeManifest_YAML(t *testing.T) {
	t.Parallel()

	data, err := EncodeManifest(testManifest(), APIFormatYAML)
	if err != nil {
		t.Fatalf("EncodeManifest() error = %v", err)
	}
	var got []any
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v\n%s", err, data)
	}
	want := []any{
		"reset",
		"components/badge-all",
		[]any{"components/badge", "components/badge-primary"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeManifest_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := EncodeManifest(testManifest(), "xml")
	if !errors.Is(err, ErrInvalidAPIFormat) {
		t.Errorf("EncodeManifest() error = %v, want ErrInvalidAPIFormat", err)
	}
	var formatErr *InvalidAPIFormatError
	if !errors.As(err, &formatErr) || formatErr.Value != "xml" {
		t.Errorf("error = %#v", err)
	}
}

func TestWriteManifest(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path, err := WriteManifest(fs, "/out", testManifest(), APIFormatYAML)
	if err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}
	if path != "/out/api.yaml" {
		t.Errorf("path = %q, want /out/api.yaml", path)
	}
	if ok, _ := afero.Exists(fs, path); !ok {
		t.Error("manifest file not written")
	}
}
