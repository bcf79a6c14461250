// SPDX-License-Identifier: MPL-2.0

package soul

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/unistylus/unistylus/internal/fsutil"
	"github.com/unistylus/unistylus/internal/part"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	// APIFormatJSON writes api.json.
	APIFormatJSON APIFormat = "json"
	// APIFormatYAML writes api.yaml.
	APIFormatYAML APIFormat = "yaml"
)

// ErrInvalidAPIFormat is the sentinel error wrapped by InvalidAPIFormatError.
var ErrInvalidAPIFormat = errors.New("invalid api format")

type (
	// APIFormat selects the encoding of the API manifest.
	APIFormat string

	// InvalidAPIFormatError is returned for an unknown APIFormat.
	InvalidAPIFormatError struct {
		Value APIFormat
	}
)

// String returns the string representation of the APIFormat.
func (f APIFormat) String() string { return string(f) }

// IsValid returns whether the APIFormat is one of the defined formats.
func (f APIFormat) IsValid() (bool, []error) {
	switch f {
	case APIFormatJSON, APIFormatYAML:
		return true, nil
	default:
		return false, []error{&InvalidAPIFormatError{Value: f}}
	}
}

// FileName returns the manifest file name for the format.
func (f APIFormat) FileName() string { return "api." + string(f) }

// Error implements the error interface for InvalidAPIFormatError.
func (e *InvalidAPIFormatError) Error() string {
	return fmt.Sprintf("invalid api format %q (valid: json, yaml)", e.Value)
}

// Unwrap returns ErrInvalidAPIFormat for errors.Is() compatibility.
func (e *InvalidAPIFormatError) Unwrap() error { return ErrInvalidAPIFormat }

// EncodeManifest encodes m in format. JSON is compact.
func EncodeManifest(m part.Manifest, format APIFormat) ([]byte, error) {
	if valid, errs := format.IsValid(); !valid {
		return nil, errs[0]
	}
	if m == nil {
		m = part.Manifest{}
	}
	if format == APIFormatYAML {
		return yaml.Marshal(m)
	}
	return json.Marshal(m)
}

// WriteManifest writes m to outDir in format and returns the file path.
func WriteManifest(fs afero.Fs, outDir string, m part.Manifest, format APIFormat) (string, error) {
	data, err := EncodeManifest(m, format)
	if err != nil {
		return "", err
	}
	path := filepath.Join(outDir, format.FileName())
	if err := fsutil.WriteFile(fs, path, data); err != nil {
		return "", err
	}
	return path, nil
}
