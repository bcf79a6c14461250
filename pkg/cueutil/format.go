// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for documents of an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format is the syntax of a user document.
type Format string

const (
	// FormatCUE is CUE source.
	FormatCUE Format = "cue"
	// FormatJSON is JSON, compiled as CUE so key order survives.
	FormatJSON Format = "json"
	// FormatTOML is TOML, decoded and encoded into CUE. Table order is lost.
	FormatTOML Format = "toml"
)

// FormatOf returns the Format of path from its extension.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		return FormatCUE, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
}
